package wire

import (
	"rental-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	// POST /api/reservations - Submit the wizard and confirm with HQ Rental
	r.Post("/api/reservations", reservationHandler.CreateReservation)

	// GET /api/admin/orphans - Customers left behind by failed confirmations
	r.Get("/api/admin/orphans", reservationHandler.ListOrphans)
}
