package usecase

import (
	"rental-booking/internal/data/repository"
	"rental-booking/internal/mapping"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Reservation ReservationService
	Wizard      WizardService
}

func NewService(repo *repository.Repository, api RentalAPI, config *utils.Config, log *zap.Logger) *Service {
	table := mapping.NewTable(config.Booking.EnhancementPolicy == utils.EnhancementPolicyReject, log)

	return &Service{
		Reservation: NewReservationService(api, table, repo.Orphan, NewReservationConfig(config), log),
		Wizard:      NewWizardService(table, config.HQRental.Currency, log),
	}
}
