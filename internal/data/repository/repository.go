package repository

import (
	"rental-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Orphan OrphanRepository
}

// NewRepository wires the Postgres-backed repositories. A nil db selects the in-memory ledger.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	if db == nil {
		return &Repository{
			Orphan: NewMemoryOrphanRepository(log),
		}
	}

	return &Repository{
		Orphan: NewOrphanRepository(db, log),
	}
}
