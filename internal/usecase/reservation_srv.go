package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/mapping"
	"rental-booking/pkg/hqrental"
	"rental-booking/pkg/utils"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const compensationTimeout = 15 * time.Second

// RentalAPI is the part of the HQ Rental client the reservation workflow calls.
type RentalAPI interface {
	CheckDates(ctx context.Context, req hqrental.DatesRequest) hqrental.Result[hqrental.DatesData]
	PriceCharges(ctx context.Context, req hqrental.ChargesRequest) hqrental.Result[json.RawMessage]
	CreateCustomer(ctx context.Context, fields hqrental.CustomerFields) hqrental.Result[hqrental.CustomerData]
	ConfirmReservation(ctx context.Context, req hqrental.ConfirmRequest) hqrental.Result[json.RawMessage]
	DeleteCustomer(ctx context.Context, endpoint string) hqrental.Result[json.RawMessage]
}

type ReservationService interface {
	Submit(ctx context.Context, form *request.ReservationForm) (*Confirmation, error)
	ListOrphans(ctx context.Context, limit int) ([]*entity.OrphanedCustomer, error)
}

// ReservationConfig holds the settings the workflow needs, taken from utils.Config at startup.
type ReservationConfig struct {
	BrandID            string
	Currency           string
	CompensationPolicy string
	CustomerDeletePath string
}

func NewReservationConfig(config *utils.Config) ReservationConfig {
	return ReservationConfig{
		BrandID:            config.HQRental.BrandID,
		Currency:           config.HQRental.Currency,
		CompensationPolicy: config.Booking.CompensationPolicy,
		CustomerDeletePath: config.HQRental.CustomerDeletePath,
	}
}

// Confirmation is a reservation confirmed by HQ Rental. Reservation is the CRM object as received.
type Confirmation struct {
	SubmissionID       uuid.UUID
	ReservationID      string
	ConfirmationNumber string
	Reservation        json.RawMessage
}

type reservationService struct {
	api     RentalAPI
	mapping *mapping.Table
	orphans repository.OrphanRepository
	config  ReservationConfig
	log     *zap.Logger
}

func NewReservationService(api RentalAPI, table *mapping.Table, orphans repository.OrphanRepository, config ReservationConfig, log *zap.Logger) ReservationService {
	return &reservationService{
		api:     api,
		mapping: table,
		orphans: orphans,
		config:  config,
		log:     log.With(zap.String("service", "reservation")),
	}
}

// submission carries ids between steps. Nothing in it outlives the request.
type submission struct {
	id   uuid.UUID
	form *request.ReservationForm
	log  *zap.Logger

	locationID     string
	vehicleClassID string
	chargeIDs      []int
	customerID     string
	reservation    json.RawMessage
	summary        hqrental.ReservationSummary
}

func (s *submission) trip(brandID string) hqrental.Trip {
	return hqrental.Trip{
		BrandID:        brandID,
		PickUpDate:     s.form.PickupDate,
		PickUpTime:     s.form.PickupTime,
		ReturnDate:     s.form.ReturnDate,
		ReturnTime:     s.form.ReturnTime,
		PickUpLocation: s.locationID,
		// One-way rentals are not offered, the car goes back where it was picked up
		ReturnLocation: s.locationID,
	}
}

func (r *reservationService) Submit(ctx context.Context, form *request.ReservationForm) (*Confirmation, error) {
	sub := &submission{
		id:   uuid.New(),
		form: form,
	}
	sub.log = r.log.With(
		zap.String("submission_id", sub.id.String()),
		zap.String("request_id", chimw.GetReqID(ctx)),
		utils.EmailField(form.Email),
	)

	sub.log.Info("Reservation submission started",
		zap.String("vehicle_group", form.VehicleGroup),
		zap.String("pickup_location", form.PickupLocation),
		zap.String("pickup_date", form.PickupDate),
		zap.String("return_date", form.ReturnDate),
	)

	steps := []sagaStep[*submission]{
		{name: StepValidation, run: r.validate},
		{name: StepMapping, run: r.resolveIDs},
		{name: StepDatesValidation, run: r.checkAvailability},
		{name: StepPriceCalculation, run: r.priceCharges, advisory: true},
		{name: StepCustomerCreation, run: r.createCustomer, compensate: r.compensateCustomer},
		{name: StepLicenseUpload, run: r.uploadLicense},
		{name: StepReservationConfirmation, run: r.confirm},
	}

	if err := runSaga(ctx, sub.log, sub, steps); err != nil {
		var stepErr *StepError
		if errors.As(err, &stepErr) && stepErr.Status >= http.StatusInternalServerError {
			sub.log.Error("Reservation submission failed",
				zap.String("step", string(stepErr.Step)),
				zap.Int("status", stepErr.Status),
				zap.Error(err),
			)
		} else {
			sub.log.Warn("Reservation submission rejected", zap.Error(err))
		}
		return nil, err
	}

	sub.log.Info("Reservation confirmed",
		zap.String("reservation_id", sub.summary.ID.String()),
		zap.String("confirmation_number", sub.summary.ConfirmationNumber),
		zap.String("customer_id", sub.customerID),
	)

	return &Confirmation{
		SubmissionID:       sub.id,
		ReservationID:      sub.summary.ID.String(),
		ConfirmationNumber: sub.summary.ConfirmationNumber,
		Reservation:        sub.reservation,
	}, nil
}

// Step 1: required fields are checked before any remote call.
func (r *reservationService) validate(ctx context.Context, s *submission) error {
	errs := utils.ValidateStruct(s.form)
	if len(errs) == 0 {
		return nil
	}

	message := "Invalid reservation data"
	for _, msg := range errs {
		if msg == "This field is required" {
			message = "Missing required fields"
			break
		}
	}

	return &StepError{
		Step:    StepValidation,
		Status:  http.StatusBadRequest,
		Message: message,
		Fields:  errs,
	}
}

// Step 2: website identifiers to HQ Rental ids.
func (r *reservationService) resolveIDs(ctx context.Context, s *submission) error {
	var err error

	if s.locationID, err = r.mapping.LocationID(s.form.PickupLocation); err != nil {
		return stepFailed(StepMapping, http.StatusBadRequest, err, "%v", err)
	}
	if s.vehicleClassID, err = r.mapping.VehicleClassID(s.form.VehicleGroup); err != nil {
		return stepFailed(StepMapping, http.StatusBadRequest, err, "%v", err)
	}
	if s.chargeIDs, err = r.mapping.EnhancementIDs(s.form.SelectedEnhancements); err != nil {
		return stepFailed(StepMapping, http.StatusBadRequest, err, "%v", err)
	}

	s.log.Debug("Identifiers resolved",
		zap.String("location_id", s.locationID),
		zap.String("vehicle_class_id", s.vehicleClassID),
		zap.Ints("additional_charges", s.chargeIDs),
	)
	return nil
}

// Step 3: the CRM validates the dates and lists the classes bookable for them.
// A successful response that does not list the chosen class is still a rejection.
func (r *reservationService) checkAvailability(ctx context.Context, s *submission) error {
	result := r.api.CheckDates(ctx, hqrental.DatesRequest{Trip: s.trip(r.config.BrandID)})
	if err := result.Err(); err != nil {
		return stepFailed(StepDatesValidation, http.StatusBadRequest, err,
			"Step 3 (dates validation): %s", result.Error)
	}

	if !result.Data.Offers(s.vehicleClassID) {
		s.log.Info("Vehicle class not available",
			zap.String("vehicle_class_id", s.vehicleClassID),
			zap.Int("applicable_classes", len(result.Data.ApplicableClasses)),
		)
		return stepFailed(StepVehicleAvailability, http.StatusBadRequest, nil,
			"Step 3 (dates validation): the selected vehicle is not available for these dates, please choose another vehicle or different dates")
	}

	return nil
}

// Step 4: advisory, the confirmed reservation carries the authoritative price.
func (r *reservationService) priceCharges(ctx context.Context, s *submission) error {
	result := r.api.PriceCharges(ctx, hqrental.ChargesRequest{
		Trip:              s.trip(r.config.BrandID),
		VehicleClassID:    s.vehicleClassID,
		AdditionalCharges: s.chargeIDs,
	})
	if err := result.Err(); err != nil {
		return err
	}

	s.log.Debug("Additional charges priced", zap.ByteString("pricing", result.Data))
	return nil
}

// Step 5: the customer record the reservation is attached to.
func (r *reservationService) createCustomer(ctx context.Context, s *submission) error {
	result := r.api.CreateCustomer(ctx, customerFields(s.form))
	if err := result.Err(); err != nil {
		return stepFailed(StepCustomerCreation, http.StatusBadRequest, err,
			"Step 5 (customer creation): %s. This is usually caused by an e-mail address that is already registered or invalid customer data",
			result.Error)
	}

	s.customerID = result.Data.Customer.ID.String()
	if s.customerID == "" {
		return stepFailed(StepCustomerCreation, http.StatusInternalServerError, nil,
			"Step 5 (customer creation): the customer was created but HQ Rental returned no customer id")
	}

	s.log.Info("Customer created", zap.String("customer_id", s.customerID))
	return nil
}

// Step 6: driver's license upload is not offered yet.
// TODO: decide with operations whether HQ Rental needs the license scan before go-live.
func (r *reservationService) uploadLicense(ctx context.Context, s *submission) error {
	s.log.Debug("Driver license upload not implemented, skipping")
	return nil
}

// Step 7: turns the quote into a reservation.
func (r *reservationService) confirm(ctx context.Context, s *submission) error {
	result := r.api.ConfirmReservation(ctx, hqrental.ConfirmRequest{
		Trip:                  s.trip(r.config.BrandID),
		VehicleClassID:        s.vehicleClassID,
		CustomerID:            s.customerID,
		AdditionalCharges:     s.chargeIDs,
		Currency:              r.config.Currency,
		SkipConfirmationEmail: false,
		WalkInCustomer:        false,
	})
	if err := result.Err(); err != nil {
		status := result.StatusCode
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusInternalServerError
		}
		return stepFailed(StepReservationConfirmation, status, err,
			"Step 7 (reservation confirmation): %s", result.Error)
	}

	s.reservation = result.Data
	if len(s.reservation) > 0 {
		if err := json.Unmarshal(s.reservation, &s.summary); err != nil {
			s.log.Warn("Confirmed reservation has an unexpected shape", zap.Error(err))
		}
	}
	return nil
}

// compensateCustomer handles the customer left behind when a later step fails.
// The customer is always recorded for reconciliation; with the delete policy it is
// also removed from HQ Rental.
func (r *reservationService) compensateCustomer(ctx context.Context, s *submission, cause *StepError) {
	if s.customerID == "" {
		return
	}

	// The caller may already be gone, compensation still has to run
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	action := entity.OrphanActionRecorded
	if r.config.CompensationPolicy == utils.CompensationPolicyDelete {
		endpoint := strings.ReplaceAll(r.config.CustomerDeletePath, "{id}", url.PathEscape(s.customerID))
		result := r.api.DeleteCustomer(ctx, endpoint)
		if err := result.Err(); err != nil {
			action = entity.OrphanActionDeleteFailed
			s.log.Error("Compensating customer delete failed",
				zap.String("customer_id", s.customerID),
				zap.Error(err),
			)
		} else {
			action = entity.OrphanActionDeleted
		}
	}

	s.log.Warn("Orphaned customer after failed reservation",
		zap.String("customer_id", s.customerID),
		zap.String("failed_step", string(cause.Step)),
		zap.String("action", string(action)),
		zap.String("reason", cause.Message),
	)

	orphan := &entity.OrphanedCustomer{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		SubmissionID: s.id,
		CustomerID:   s.customerID,
		EmailHash:    utils.Fingerprint(s.form.Email),
		FailedStep:   string(cause.Step),
		Reason:       cause.Message,
		Action:       action,
	}
	if err := r.orphans.Record(ctx, orphan); err != nil {
		s.log.Error("Failed to record orphaned customer", zap.Error(err))
	}
}

func (r *reservationService) ListOrphans(ctx context.Context, limit int) ([]*entity.OrphanedCustomer, error) {
	orphans, err := r.orphans.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return orphans, nil
}

// customerFields lays the form out over HQ Rental's generic contact fields.
// Fields the wizard does not collect are sent empty.
func customerFields(form *request.ReservationForm) hqrental.CustomerFields {
	return hqrental.CustomerFields{
		mapping.CustomerFirstName:         form.FirstName,
		mapping.CustomerLastName:          form.LastName,
		mapping.CustomerEmail:             form.Email,
		mapping.CustomerPhone:             form.Phone,
		mapping.CustomerBirthdate:         form.Birthdate,
		mapping.CustomerLicenseNumber:     form.DriversLicense,
		mapping.CustomerLicenseExpiration: form.LicenseExpiration,
		mapping.CustomerStreet:            form.Street,
		mapping.CustomerAddressLine2:      "",
		mapping.CustomerCity:              form.City,
		mapping.CustomerState:             form.State,
		mapping.CustomerZip:               form.Zip,
		mapping.CustomerCountry:           form.Country,
		mapping.CustomerNationality:       "",
		mapping.CustomerPassport:          "",
		mapping.CustomerWebsite:           "",
	}
}
