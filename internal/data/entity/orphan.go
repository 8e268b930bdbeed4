package entity

import "github.com/google/uuid"

type OrphanAction string

const (
	// OrphanActionRecorded means the customer was left in the CRM for manual cleanup
	OrphanActionRecorded OrphanAction = "recorded"
	// OrphanActionDeleted means the compensating delete succeeded
	OrphanActionDeleted OrphanAction = "deleted"
	// OrphanActionDeleteFailed means the compensating delete was attempted and failed
	OrphanActionDeleteFailed OrphanAction = "delete_failed"
)

// OrphanedCustomer is a CRM customer created by a submission whose reservation was never confirmed.
type OrphanedCustomer struct {
	BaseSimple
	SubmissionID uuid.UUID    `json:"submission_id"`
	CustomerID   string       `json:"customer_id"`
	EmailHash    string       `json:"email_hash"`
	FailedStep   string       `json:"failed_step"`
	Reason       string       `json:"reason"`
	Action       OrphanAction `json:"action"`
}
