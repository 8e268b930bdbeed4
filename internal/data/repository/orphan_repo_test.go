package repository

import (
	"context"
	"testing"
	"time"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrphan(customerID string, at time.Time) *entity.OrphanedCustomer {
	return &entity.OrphanedCustomer{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: at},
		SubmissionID: uuid.New(),
		CustomerID:   customerID,
		FailedStep:   "reservation_confirmation",
		Action:       entity.OrphanActionRecorded,
	}
}

func TestMemoryOrphanRepository(t *testing.T) {
	repo := NewMemoryOrphanRepository(zap.NewNop())
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Record(ctx, newOrphan("1", now)))
	require.NoError(t, repo.Record(ctx, newOrphan("2", now.Add(time.Second))))
	require.NoError(t, repo.Record(ctx, newOrphan("3", now.Add(2*time.Second))))

	t.Run("Newest first", func(t *testing.T) {
		orphans, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, orphans, 3)
		assert.Equal(t, "3", orphans[0].CustomerID)
		assert.Equal(t, "1", orphans[2].CustomerID)
	})

	t.Run("Respects limit", func(t *testing.T) {
		orphans, err := repo.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, orphans, 2)
		assert.Equal(t, "2", orphans[1].CustomerID)
	})
}

func TestNewRepository_WithoutDatabase(t *testing.T) {
	repos := NewRepository(nil, zap.NewNop())
	_, ok := repos.Orphan.(*memoryOrphanRepository)
	assert.True(t, ok)
}
