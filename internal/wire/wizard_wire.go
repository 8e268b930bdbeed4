package wire

import (
	"rental-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWizard(r chi.Router, wizardHandler *adaptor.WizardHandler) {
	// GET /api/catalog - Vehicles, locations and enhancements shown by the wizard
	r.Get("/api/catalog", wizardHandler.GetCatalog)

	// Flat paths, a Route on /api/reservations would shadow the submit endpoint
	r.Post("/api/reservations/estimate", wizardHandler.Estimate)
	r.Post("/api/reservations/steps/{step}", wizardHandler.ValidateStep)
}
