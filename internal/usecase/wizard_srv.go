package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"rental-booking/internal/data/catalog"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/internal/mapping"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	WizardFirstStep = 1
	WizardLastStep  = 5
)

// WizardSteps are the booking wizard's pages in order.
var WizardSteps = map[int]string{
	1: "Dates & Location",
	2: "Select Vehicle",
	3: "Your Information",
	4: "Enhancements",
	5: "Review & Confirm",
}

// fieldRule is a validator tag list applied to one form field by a wizard step.
type fieldRule struct {
	field string
	tag   string
	value func(f *request.ReservationForm) string
}

// wizardRules are stricter than what a submission needs: they guide the customer
// through the wizard but are never applied to POST /api/reservations.
var wizardRules = map[int][]fieldRule{
	1: {
		{"pickupLocation", "required", func(f *request.ReservationForm) string { return f.PickupLocation }},
		{"pickupDate", "required,datetime=2006-01-02", func(f *request.ReservationForm) string { return f.PickupDate }},
		{"pickupTime", "omitempty,clock", func(f *request.ReservationForm) string { return f.PickupTime }},
		{"returnDate", "required,datetime=2006-01-02", func(f *request.ReservationForm) string { return f.ReturnDate }},
		{"returnTime", "omitempty,clock", func(f *request.ReservationForm) string { return f.ReturnTime }},
	},
	2: {
		{"vehicleGroup", "required", func(f *request.ReservationForm) string { return f.VehicleGroup }},
	},
	3: {
		{"firstName", "required,max=100", func(f *request.ReservationForm) string { return f.FirstName }},
		{"lastName", "required,max=100", func(f *request.ReservationForm) string { return f.LastName }},
		{"email", "required,email", func(f *request.ReservationForm) string { return f.Email }},
		{"phone", "required,max=30", func(f *request.ReservationForm) string { return f.Phone }},
		{"country", "required,max=100", func(f *request.ReservationForm) string { return f.Country }},
		{"driversLicense", "required,max=50", func(f *request.ReservationForm) string { return f.DriversLicense }},
		{"birthdate", "required,datetime=2006-01-02", func(f *request.ReservationForm) string { return f.Birthdate }},
		{"licenseExpiration", "required,datetime=2006-01-02", func(f *request.ReservationForm) string { return f.LicenseExpiration }},
	},
	4: {
		{"specialRequests", "max=1000", func(f *request.ReservationForm) string { return f.SpecialRequests }},
	},
}

type Catalog struct {
	Vehicles     []catalog.Vehicle     `json:"vehicles"`
	Locations    []catalog.Location    `json:"locations"`
	Enhancements []catalog.Enhancement `json:"enhancements"`
}

type WizardService interface {
	Catalog(ctx context.Context) *Catalog
	Estimate(ctx context.Context, req *request.EstimateRequest) (*response.Estimate, error)
	ValidateStep(ctx context.Context, step int, form *request.ReservationForm) (*response.StepValidation, error)
}

type wizardService struct {
	mapping  *mapping.Table
	currency string
	log      *zap.Logger
}

func NewWizardService(table *mapping.Table, currency string, log *zap.Logger) WizardService {
	return &wizardService{
		mapping:  table,
		currency: currency,
		log:      log.With(zap.String("service", "wizard")),
	}
}

func (s *wizardService) Catalog(ctx context.Context) *Catalog {
	return &Catalog{
		Vehicles:     catalog.Vehicles,
		Locations:    catalog.Locations,
		Enhancements: catalog.Enhancements,
	}
}

// Estimate prices a rental from the website rates: daily rate times started days,
// plus each enhancement once or per day. HQ Rental's price at confirmation is authoritative.
func (s *wizardService) Estimate(ctx context.Context, req *request.EstimateRequest) (*response.Estimate, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vehicle, ok := catalog.FindVehicle(req.VehicleGroup)
	if !ok {
		return nil, fmt.Errorf("invalid vehicle group %q", req.VehicleGroup)
	}

	pickup, dropoff, err := parseDateRange(req.PickupDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}

	days := utils.RentalDays(pickup, dropoff)
	estimate := &response.Estimate{
		Days:         days,
		VehicleGroup: vehicle.Group,
		DailyRate:    vehicle.Pricing.Daily,
		VehicleTotal: vehicle.Pricing.Daily * float64(days),
		Enhancements: make([]response.EstimateLine, 0, len(req.SelectedEnhancements)),
		Currency:     s.currency,
	}

	for _, id := range req.SelectedEnhancements {
		extra, ok := catalog.FindEnhancement(id)
		if !ok {
			estimate.Skipped = append(estimate.Skipped, id)
			continue
		}

		amount := extra.Price
		if extra.PriceType == catalog.PriceDaily {
			amount = extra.Price * float64(days)
		}
		estimate.Enhancements = append(estimate.Enhancements, response.EstimateLine{
			ID:     extra.ID,
			Name:   extra.Name,
			Price:  extra.Price,
			Daily:  extra.PriceType == catalog.PriceDaily,
			Amount: amount,
		})
		estimate.EnhancementsTotal += amount
	}

	estimate.Total = roundCents(estimate.VehicleTotal + estimate.EnhancementsTotal)
	return estimate, nil
}

// ValidateStep checks only the fields the given step owns. The review step checks everything.
func (s *wizardService) ValidateStep(ctx context.Context, step int, form *request.ReservationForm) (*response.StepValidation, error) {
	title, ok := WizardSteps[step]
	if !ok {
		return nil, fmt.Errorf("invalid step %d, must be between %d and %d", step, WizardFirstStep, WizardLastStep)
	}

	errs := map[string]string{}
	if step == WizardLastStep {
		for i := WizardFirstStep; i < WizardLastStep; i++ {
			for field, msg := range s.stepErrors(i, form) {
				errs[field] = msg
			}
		}
	} else {
		errs = s.stepErrors(step, form)
	}

	result := &response.StepValidation{
		Step:  step,
		Title: title,
		Valid: len(errs) == 0,
	}
	if !result.Valid {
		result.Errors = errs
	}
	if result.Valid && step < WizardLastStep {
		result.NextStep = step + 1
	}
	if step > WizardFirstStep {
		result.PrevStep = step - 1
	}

	s.log.Debug("Wizard step validated",
		zap.Int("step", step),
		zap.Bool("valid", result.Valid),
		zap.Int("error_count", len(errs)),
	)

	return result, nil
}

func (s *wizardService) stepErrors(step int, form *request.ReservationForm) map[string]string {
	errs := map[string]string{}
	for _, rule := range wizardRules[step] {
		if msg := utils.ValidateVar(rule.value(form), rule.tag); msg != "" {
			errs[rule.field] = msg
		}
	}

	switch step {
	case 1:
		if _, ok := errs["pickupLocation"]; !ok && !(catalog.HasLocation(form.PickupLocation) && s.mapping.HasLocation(form.PickupLocation)) {
			errs["pickupLocation"] = "Unknown location"
		}
		_, badPickup := errs["pickupDate"]
		_, badReturn := errs["returnDate"]
		if !badPickup && !badReturn {
			if _, _, err := parseDateRange(form.PickupDate, form.ReturnDate); err != nil {
				errs["returnDate"] = "Return date must not be before pickup date"
			}
		}

	case 2:
		if _, ok := errs["vehicleGroup"]; !ok {
			if _, found := catalog.FindVehicle(form.VehicleGroup); !found || !s.mapping.HasVehicleGroup(form.VehicleGroup) {
				errs["vehicleGroup"] = "Unknown vehicle group"
			}
		}

	case 4:
		for _, id := range form.SelectedEnhancements {
			if _, ok := catalog.FindEnhancement(id); !ok {
				errs["selectedEnhancements"] = fmt.Sprintf("Unknown enhancement %q", id)
				break
			}
		}
	}

	return errs
}

func parseDateRange(pickupDate, returnDate string) (pickup, dropoff time.Time, err error) {
	if pickup, err = utils.ParseDate(pickupDate); err != nil {
		return pickup, dropoff, fmt.Errorf("invalid pickup date %q", pickupDate)
	}
	if dropoff, err = utils.ParseDate(returnDate); err != nil {
		return pickup, dropoff, fmt.Errorf("invalid return date %q", returnDate)
	}
	if dropoff.Before(pickup) {
		return pickup, dropoff, fmt.Errorf("invalid date range: return date %s is before pickup date %s", returnDate, pickupDate)
	}
	return pickup, dropoff, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
