package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		HQRental: HQRentalConfig{
			Region:      "america",
			TenantToken: "tenant",
			UserToken:   "user",
		},
		Booking: BookingConfig{
			EnhancementPolicy:  EnhancementPolicyDrop,
			CompensationPolicy: CompensationPolicyRecord,
		},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"Missing tenant token", func(c *Config) { c.HQRental.TenantToken = "" }, "HQ Rental API credentials not configured"},
		{"Missing user token", func(c *Config) { c.HQRental.UserToken = "" }, "HQ Rental API credentials not configured"},
		{"Missing region", func(c *Config) { c.HQRental.Region = "" }, "HQRENTAL_API_REGION is required"},
		{"Unknown enhancement policy", func(c *Config) { c.Booking.EnhancementPolicy = "ignore" }, "unknown enhancement policy"},
		{"Unknown compensation policy", func(c *Config) { c.Booking.CompensationPolicy = "retry" }, "unknown compensation policy"},
		{"Delete without path", func(c *Config) { c.Booking.CompensationPolicy = CompensationPolicyDelete }, "HQRENTAL_CUSTOMER_DELETE_PATH"},
		{"Delete with path", func(c *Config) {
			c.Booking.CompensationPolicy = CompensationPolicyDelete
			c.HQRental.CustomerDeletePath = "customers/{id}"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidate_Defaults(t *testing.T) {
	c := validConfig()

	require.NoError(t, c.Validate())
	assert.Equal(t, "1", c.HQRental.BrandID)
	assert.Equal(t, 30*time.Second, c.HQRental.Timeout)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("HQRENTAL_API_REGION", "europe")
	t.Setenv("HQRENTAL_TENANT_TOKEN", "tenant")
	t.Setenv("HQRENTAL_USER_TOKEN", "user")
	t.Setenv("HQRENTAL_TIMEOUT_SECONDS", "12")
	t.Setenv("ENHANCEMENT_POLICY", "REJECT")

	config, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "europe", config.HQRental.Region)
	assert.Equal(t, 12*time.Second, config.HQRental.Timeout)
	assert.Equal(t, EnhancementPolicyReject, config.Booking.EnhancementPolicy)
	assert.Equal(t, CompensationPolicyRecord, config.Booking.CompensationPolicy)
	assert.Equal(t, "USD", config.HQRental.Currency)
	assert.Equal(t, "1", config.HQRental.BrandID)
	assert.False(t, config.Database.Enabled())
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("Test@Example.com ")
	b := Fingerprint("test@example.com")

	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
	assert.NotContains(t, a, "example")
	assert.NotEqual(t, a, Fingerprint("other@example.com"))
	assert.Empty(t, Fingerprint("  "))
}

func TestRentalDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := ParseDate(s)
		require.NoError(t, err)
		return d
	}

	assert.Equal(t, 1, RentalDays(day("2025-12-01"), day("2025-12-01")))
	assert.Equal(t, 1, RentalDays(day("2025-12-01"), day("2025-12-02")))
	assert.Equal(t, 6, RentalDays(day("2025-12-01"), day("2025-12-07")))
	assert.Equal(t, 2, RentalDays(day("2025-12-01"), day("2025-12-02").Add(3*time.Hour)))
	assert.Equal(t, 1, RentalDays(day("2025-12-05"), day("2025-12-01")))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 25, ParseInt("25", 10))
	assert.Equal(t, 10, ParseInt("", 10))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		value string
		tag   string
		want  string
	}{
		{"10:00", "omitempty,clock", ""},
		{"10:00:00", "omitempty,clock", ""},
		{"", "omitempty,clock", ""},
		{"25:00", "omitempty,clock", "Must be a time like 10:00"},
		{"", "required", "This field is required"},
		{"nope", "email", "Invalid email format"},
		{"2025-13-01", "datetime=2006-01-02", "Must match format 2006-01-02"},
		{"abc", "numeric", "Invalid value"},
	}

	for _, tt := range tests {
		t.Run(tt.tag+" "+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateVar(tt.value, tt.tag))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
		Code  string `json:"code" validate:"required,len=2"`
	}

	errs := ValidateStruct(&form{Email: "nope", Code: "AB"})

	assert.Equal(t, map[string]string{
		"name":  "This field is required",
		"email": "Invalid email format",
	}, errs)

	assert.Equal(t, "code: Must be exactly 2 characters; name: This field is required",
		FormatValidationErrors(ValidateStruct(&form{Code: "ABC"})))
}

func TestResponseJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseBadRequest(rec, "Validation failed", map[string]string{"name": "This field is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Validation failed","errors":{"name":"This field is required"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	ResponseSuccess(rec, "success", map[string]int{"count": 1})

	assert.JSONEq(t, `{"success":true,"message":"success","data":{"count":1}}`, rec.Body.String())
}
