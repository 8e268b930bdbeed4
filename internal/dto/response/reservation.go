package response

import (
	"encoding/json"

	"rental-booking/internal/data/entity"
)

// ReservationResult is the body of POST /api/reservations.
type ReservationResult struct {
	Success     bool              `json:"success"`
	Reservation json.RawMessage   `json:"reservation,omitempty"`
	Message     string            `json:"message,omitempty"`
	Error       string            `json:"error,omitempty"`
	Step        string            `json:"step,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// Estimate is the advisory price shown by the wizard.
type Estimate struct {
	Days              int            `json:"days"`
	VehicleGroup      string         `json:"vehicle_group"`
	DailyRate         float64        `json:"daily_rate"`
	VehicleTotal      float64        `json:"vehicle_total"`
	Enhancements      []EstimateLine `json:"enhancements"`
	EnhancementsTotal float64        `json:"enhancements_total"`
	Total             float64        `json:"total"`
	Currency          string         `json:"currency"`
	Skipped           []string       `json:"skipped,omitempty"`
}

type EstimateLine struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Daily  bool    `json:"daily"`
	Amount float64 `json:"amount"`
}

// StepValidation is the result of validating one wizard step.
type StepValidation struct {
	Step     int               `json:"step"`
	Title    string            `json:"title"`
	Valid    bool              `json:"valid"`
	NextStep int               `json:"next_step,omitempty"`
	PrevStep int               `json:"prev_step,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

type OrphanList struct {
	Orphans []*entity.OrphanedCustomer `json:"orphans"`
	Count   int                        `json:"count"`
}
