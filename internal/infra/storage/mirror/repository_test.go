package mirror

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	r, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRepository_AppendAndList(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, r.Append(ctx, domain.BookingRecord{ID: "1", ScheduledAt: "2025-05-16T10:00:00-03:00"}))
	require.NoError(t, r.Append(ctx, domain.BookingRecord{ID: "2", ScheduledAt: "19/05/2025 14:00"}))

	records, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.BookingRecord{
		{ID: "1", ScheduledAt: "2025-05-16T10:00:00-03:00"},
		{ID: "2", ScheduledAt: "19/05/2025 14:00"},
	}, records)
}

func TestRepository_AppendSameIDReplaces(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, r.Append(ctx, domain.BookingRecord{ID: "7", ScheduledAt: "2025-05-16T10:00:00-03:00"}))
	require.NoError(t, r.Append(ctx, domain.BookingRecord{ID: "7", ScheduledAt: "2025-05-19T14:00:00-03:00"}))

	records, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-05-19T14:00:00-03:00", records[0].ScheduledAt)
}

func TestRepository_EmptyList(t *testing.T) {
	r := newTestRepository(t)

	records, err := r.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trainings.db")

	r, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r.Append(context.Background(), domain.BookingRecord{ID: "1", ScheduledAt: "2025-05-16T10:00:00-03:00"}))
	require.NoError(t, r.Ping(context.Background()))
	require.NoError(t, r.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRepository_ClosedStoreFails(t *testing.T) {
	r, err := Open(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	_, err = r.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrExecQuery)
}
