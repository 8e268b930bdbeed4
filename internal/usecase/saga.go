package usecase

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Step names a stage of a reservation submission. The value is returned to the
// wizard in the "step" field of error responses.
type Step string

const (
	StepValidation              Step = "validation"
	StepMapping                 Step = "mapping"
	StepDatesValidation         Step = "dates_validation"
	StepVehicleAvailability     Step = "vehicle_availability"
	StepPriceCalculation        Step = "price_calculation"
	StepCustomerCreation        Step = "customer_creation"
	StepLicenseUpload           Step = "license_upload"
	StepReservationConfirmation Step = "reservation_confirmation"
)

// StepError is a failed submission step with the HTTP status the caller should see.
type StepError struct {
	Step    Step
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *StepError) Error() string {
	return e.Message
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepFailed(step Step, status int, err error, format string, args ...any) *StepError {
	return &StepError{
		Step:    step,
		Status:  status,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// sagaStep is one stage of the submission. compensate, when set, undoes the
// stage's remote side effect after a later stage fails.
type sagaStep[S any] struct {
	name       Step
	advisory   bool
	run        func(ctx context.Context, state S) error
	compensate func(ctx context.Context, state S, cause *StepError)
}

// runSaga executes steps in order. Advisory failures are logged and skipped. On the first
// required failure the compensations of completed steps run in reverse order and the
// failure is returned as a *StepError.
func runSaga[S any](ctx context.Context, log *zap.Logger, state S, steps []sagaStep[S]) error {
	completed := make([]sagaStep[S], 0, len(steps))

	for _, step := range steps {
		err := step.run(ctx, state)
		if err == nil {
			completed = append(completed, step)
			continue
		}

		if step.advisory {
			log.Warn("Advisory step failed, continuing",
				zap.String("step", string(step.name)),
				zap.Error(err),
			)
			continue
		}

		stepErr, ok := err.(*StepError)
		if !ok {
			stepErr = stepFailed(step.name, http.StatusInternalServerError, err, "%s failed: %v", step.name, err)
		}

		for i := len(completed) - 1; i >= 0; i-- {
			if completed[i].compensate != nil {
				completed[i].compensate(ctx, state, stepErr)
			}
		}

		return stepErr
	}

	return nil
}
