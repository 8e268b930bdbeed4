package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultOrphanLimit = 50
	maxOrphanLimit     = 500
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var form request.ReservationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, response.ReservationResult{
			Error: "Invalid request body",
			Step:  string(usecase.StepValidation),
		})
		return
	}

	confirmation, err := h.service.Submit(r.Context(), &form)
	if err != nil {
		var stepErr *usecase.StepError
		if !errors.As(err, &stepErr) {
			h.log.Error("Reservation submission failed unexpectedly", zap.Error(err))
			utils.WriteJSON(w, http.StatusInternalServerError, response.ReservationResult{
				Error: "Internal server error",
			})
			return
		}

		utils.WriteJSON(w, stepErr.Status, response.ReservationResult{
			Error:  stepErr.Message,
			Step:   string(stepErr.Step),
			Errors: stepErr.Fields,
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, response.ReservationResult{
		Success:     true,
		Reservation: confirmation.Reservation,
		Message:     "Reservation created successfully!",
	})
}

// ListOrphans handles GET /api/admin/orphans
func (h *ReservationHandler) ListOrphans(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), defaultOrphanLimit)
	if limit > maxOrphanLimit {
		limit = maxOrphanLimit
	}

	orphans, err := h.service.ListOrphans(r.Context(), limit)
	if err != nil {
		h.log.Error("List orphaned customers failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", response.OrphanList{
		Orphans: orphans,
		Count:   len(orphans),
	})
}
