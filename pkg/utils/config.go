package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	HQRental HQRentalConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

// DatabaseConfig is optional: an empty Host keeps the reconciliation ledger in memory.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

type HQRentalConfig struct {
	Region             string
	TenantToken        string
	UserToken          string
	BrandID            string
	Currency           string
	Timeout            time.Duration
	CustomerDeletePath string
}

type BookingConfig struct {
	EnhancementPolicy  string
	CompensationPolicy string
}

const (
	EnhancementPolicyDrop   = "drop"
	EnhancementPolicyReject = "reject"

	CompensationPolicyRecord = "record"
	CompensationPolicyDelete = "delete"
)

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "rental-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("HQRENTAL_BRAND_ID", "1")
	viper.SetDefault("HQRENTAL_CURRENCY", "USD")
	viper.SetDefault("HQRENTAL_TIMEOUT_SECONDS", 30)
	viper.SetDefault("ENHANCEMENT_POLICY", EnhancementPolicyDrop)
	viper.SetDefault("COMPENSATION_POLICY", CompensationPolicyRecord)

	// .env is optional in deployed environments
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		HQRental: HQRentalConfig{
			Region:             viper.GetString("HQRENTAL_API_REGION"),
			TenantToken:        viper.GetString("HQRENTAL_TENANT_TOKEN"),
			UserToken:          viper.GetString("HQRENTAL_USER_TOKEN"),
			BrandID:            viper.GetString("HQRENTAL_BRAND_ID"),
			Currency:           viper.GetString("HQRENTAL_CURRENCY"),
			Timeout:            time.Duration(viper.GetInt("HQRENTAL_TIMEOUT_SECONDS")) * time.Second,
			CustomerDeletePath: viper.GetString("HQRENTAL_CUSTOMER_DELETE_PATH"),
		},
		Booking: BookingConfig{
			EnhancementPolicy:  strings.ToLower(viper.GetString("ENHANCEMENT_POLICY")),
			CompensationPolicy: strings.ToLower(viper.GetString("COMPENSATION_POLICY")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks the settings that must be right before any request is served.
// Region names are checked by hqrental.NewClient, which owns the region table.
func (c *Config) Validate() error {
	if c.HQRental.TenantToken == "" || c.HQRental.UserToken == "" {
		return fmt.Errorf("HQ Rental API credentials not configured")
	}
	if c.HQRental.Region == "" {
		return fmt.Errorf("HQRENTAL_API_REGION is required")
	}
	if c.HQRental.BrandID == "" {
		c.HQRental.BrandID = "1"
	}
	if c.HQRental.Timeout <= 0 {
		c.HQRental.Timeout = 30 * time.Second
	}

	switch c.Booking.EnhancementPolicy {
	case EnhancementPolicyDrop, EnhancementPolicyReject:
	default:
		return fmt.Errorf("unknown enhancement policy %q", c.Booking.EnhancementPolicy)
	}

	switch c.Booking.CompensationPolicy {
	case CompensationPolicyRecord:
	case CompensationPolicyDelete:
		if !strings.Contains(c.HQRental.CustomerDeletePath, "{id}") {
			return fmt.Errorf("HQRENTAL_CUSTOMER_DELETE_PATH with an {id} placeholder is required for delete compensation")
		}
	default:
		return fmt.Errorf("unknown compensation policy %q", c.Booking.CompensationPolicy)
	}

	return nil
}
