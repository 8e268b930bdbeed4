package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WizardHandler struct {
	service usecase.WizardService
	log     *zap.Logger
}

func NewWizardHandler(service usecase.WizardService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{
		service: service,
		log:     log.With(zap.String("handler", "wizard")),
	}
}

// GetCatalog handles GET /api/catalog
func (h *WizardHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.Catalog(r.Context()))
}

// Estimate handles POST /api/reservations/estimate
func (h *WizardHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req request.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	estimate, err := h.service.Estimate(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "estimate")
		return
	}

	utils.ResponseSuccess(w, "success", estimate)
}

// ValidateStep handles POST /api/reservations/steps/{step}
func (h *WizardHandler) ValidateStep(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		utils.ResponseBadRequest(w, "Step must be a number", nil)
		return
	}

	var form request.ReservationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.ValidateStep(r.Context(), step, &form)
	if err != nil {
		h.handleServiceError(w, err, "validate step")
		return
	}

	if !result.Valid {
		utils.ResponseJSON(w, http.StatusBadRequest, false, "Validation failed", result, result.Errors)
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

func (h *WizardHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
