package adaptor

import (
	"rental-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Reservation *ReservationHandler
	Wizard      *WizardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Reservation: NewReservationHandler(service.Reservation, log),
		Wizard:      NewWizardHandler(service.Wizard, log),
	}
}
