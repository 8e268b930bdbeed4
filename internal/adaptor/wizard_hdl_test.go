package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rental-booking/internal/data/catalog"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockWizardService struct {
	catalogFn  func(ctx context.Context) *usecase.Catalog
	estimateFn func(ctx context.Context, req *request.EstimateRequest) (*response.Estimate, error)
	stepFn     func(ctx context.Context, step int, form *request.ReservationForm) (*response.StepValidation, error)
}

func (m *mockWizardService) Catalog(ctx context.Context) *usecase.Catalog {
	return m.catalogFn(ctx)
}

func (m *mockWizardService) Estimate(ctx context.Context, req *request.EstimateRequest) (*response.Estimate, error) {
	return m.estimateFn(ctx, req)
}

func (m *mockWizardService) ValidateStep(ctx context.Context, step int, form *request.ReservationForm) (*response.StepValidation, error) {
	return m.stepFn(ctx, step, form)
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetCatalog(t *testing.T) {
	svc := &mockWizardService{
		catalogFn: func(ctx context.Context) *usecase.Catalog {
			return &usecase.Catalog{Vehicles: catalog.Vehicles[:1]}
		},
	}
	h := NewWizardHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.GetCatalog(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)

	var c usecase.Catalog
	require.NoError(t, json.Unmarshal(body.Data, &c))
	require.Len(t, c.Vehicles, 1)
	assert.Equal(t, "ECAR", c.Vehicles[0].Group)
}

func TestEstimateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"Success", `{"pickupDate":"2025-12-01","returnDate":"2025-12-03","vehicleGroup":"ECAR"}`, nil, http.StatusOK},
		{"Invalid body", `not json`, nil, http.StatusBadRequest},
		{"Validation failed", `{}`, errors.New("validation failed: pickupDate: This field is required"), http.StatusBadRequest},
		{"Invalid vehicle", `{}`, errors.New(`invalid vehicle group "ZZZZ"`), http.StatusBadRequest},
		{"Unexpected", `{}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockWizardService{
				estimateFn: func(ctx context.Context, req *request.EstimateRequest) (*response.Estimate, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &response.Estimate{Days: 2, Total: 90, Currency: "USD"}, nil
				},
			}
			h := NewWizardHandler(svc, zap.NewNop())

			rec := httptest.NewRecorder()
			h.Estimate(rec, httptest.NewRequest(http.MethodPost, "/api/reservations/estimate", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantStatus == http.StatusOK, body.Success)
		})
	}
}

func TestValidateStepHandler(t *testing.T) {
	newRouter := func(svc *mockWizardService) http.Handler {
		h := NewWizardHandler(svc, zap.NewNop())
		r := chi.NewRouter()
		r.Post("/api/reservations/steps/{step}", h.ValidateStep)
		return r
	}

	t.Run("Valid step", func(t *testing.T) {
		var gotStep int
		svc := &mockWizardService{
			stepFn: func(ctx context.Context, step int, form *request.ReservationForm) (*response.StepValidation, error) {
				gotStep = step
				return &response.StepValidation{Step: step, Valid: true, NextStep: step + 1}, nil
			},
		}

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reservations/steps/2", strings.NewReader(`{"vehicleGroup":"ECAR"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, gotStep)

		var result response.StepValidation
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
		assert.Equal(t, 3, result.NextStep)
	})

	t.Run("Invalid step data", func(t *testing.T) {
		svc := &mockWizardService{
			stepFn: func(ctx context.Context, step int, form *request.ReservationForm) (*response.StepValidation, error) {
				return &response.StepValidation{Step: step, Errors: map[string]string{"vehicleGroup": "This field is required"}}, nil
			},
		}

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reservations/steps/2", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, "This field is required", body.Errors["vehicleGroup"])
	})

	t.Run("Step out of range", func(t *testing.T) {
		svc := &mockWizardService{
			stepFn: func(ctx context.Context, step int, form *request.ReservationForm) (*response.StepValidation, error) {
				return nil, errors.New("invalid step 9, must be between 1 and 5")
			},
		}

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reservations/steps/9", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Step is not a number", func(t *testing.T) {
		svc := &mockWizardService{}

		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reservations/steps/review", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Step must be a number", decodeEnvelope(t, rec).Error)
	})
}
