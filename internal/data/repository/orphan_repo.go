package repository

import (
	"context"
	"fmt"
	"sync"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"go.uber.org/zap"
)

type OrphanRepository interface {
	Record(ctx context.Context, orphan *entity.OrphanedCustomer) error
	List(ctx context.Context, limit int) ([]*entity.OrphanedCustomer, error)
}

const orphanSchema = `
	CREATE TABLE IF NOT EXISTS orphaned_customers (
		id            UUID PRIMARY KEY,
		submission_id UUID NOT NULL,
		customer_id   TEXT NOT NULL,
		email_hash    TEXT NOT NULL DEFAULT '',
		failed_step   TEXT NOT NULL,
		reason        TEXT NOT NULL DEFAULT '',
		action        TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)
`

type orphanRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrphanRepository(db database.PgxIface, log *zap.Logger) OrphanRepository {
	return &orphanRepository{
		db:  db,
		log: log.With(zap.String("repository", "orphan")),
	}
}

// EnsureOrphanSchema creates the ledger table when it does not exist yet.
func EnsureOrphanSchema(ctx context.Context, db database.PgxIface) error {
	if _, err := db.Exec(ctx, orphanSchema); err != nil {
		return fmt.Errorf("create orphaned_customers table: %w", err)
	}
	return nil
}

func (r *orphanRepository) Record(ctx context.Context, orphan *entity.OrphanedCustomer) error {
	query := `
		INSERT INTO orphaned_customers (id, submission_id, customer_id, email_hash,
		                                failed_step, reason, action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		orphan.ID,
		orphan.SubmissionID,
		orphan.CustomerID,
		orphan.EmailHash,
		orphan.FailedStep,
		orphan.Reason,
		orphan.Action,
		orphan.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to record orphaned customer",
			zap.Error(err),
			zap.String("customer_id", orphan.CustomerID),
			zap.String("submission_id", orphan.SubmissionID.String()),
		)
		return fmt.Errorf("record orphaned customer %s: %w", orphan.CustomerID, err)
	}

	return nil
}

func (r *orphanRepository) List(ctx context.Context, limit int) ([]*entity.OrphanedCustomer, error) {
	query := `
		SELECT id, submission_id, customer_id, email_hash,
		       failed_step, reason, action, created_at
		FROM orphaned_customers
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list orphaned customers", zap.Error(err))
		return nil, fmt.Errorf("list orphaned customers: %w", err)
	}
	defer rows.Close()

	var orphans []*entity.OrphanedCustomer
	for rows.Next() {
		var o entity.OrphanedCustomer
		if err := rows.Scan(
			&o.ID,
			&o.SubmissionID,
			&o.CustomerID,
			&o.EmailHash,
			&o.FailedStep,
			&o.Reason,
			&o.Action,
			&o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan orphaned customer: %w", err)
		}
		orphans = append(orphans, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orphaned customers: %w", err)
	}

	return orphans, nil
}

// memoryOrphanRepository keeps orphans for the life of the process and logs each one.
// Used when no database is configured.
type memoryOrphanRepository struct {
	mu      sync.Mutex
	orphans []*entity.OrphanedCustomer
	log     *zap.Logger
}

func NewMemoryOrphanRepository(log *zap.Logger) OrphanRepository {
	return &memoryOrphanRepository{
		log: log.With(zap.String("repository", "orphan")),
	}
}

func (r *memoryOrphanRepository) Record(ctx context.Context, orphan *entity.OrphanedCustomer) error {
	r.mu.Lock()
	r.orphans = append(r.orphans, orphan)
	r.mu.Unlock()

	r.log.Warn("Orphaned customer recorded in memory only, reconcile manually",
		zap.String("customer_id", orphan.CustomerID),
		zap.String("submission_id", orphan.SubmissionID.String()),
		zap.String("failed_step", orphan.FailedStep),
		zap.String("action", string(orphan.Action)),
	)
	return nil
}

func (r *memoryOrphanRepository) List(ctx context.Context, limit int) ([]*entity.OrphanedCustomer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.OrphanedCustomer, 0, limit)
	for i := len(r.orphans) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.orphans[i])
	}
	return out, nil
}
