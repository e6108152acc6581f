package repository

import (
	"context"
	"testing"

	"cleanitalia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBookingRepoCRUD(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	b := models.Booking{
		Name:               "Giulia Rossi",
		Email:              "giulia@example.com",
		Status:             models.StatusPending,
		StripeStatus:       models.StripeNone,
		AdditionalServices: models.StringList{"windows", "ironing"},
		Supplies:           models.StringList{"detergent"},
	}
	require.NoError(t, repo.Create(ctx, &b))
	assert.Equal(t, int64(1), b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"windows", "ironing"}, got.AdditionalServices)

	got.Status = models.StatusConfirmed
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, again.Status)

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &b), ErrNotFound)
}

func TestMemoryBookingRepoGetByStatus(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	for _, status := range []string{models.StatusPending, models.StatusConfirmed, models.StatusPending} {
		b := models.Booking{Name: "x", Status: status}
		require.NoError(t, repo.Create(ctx, &b))
	}

	pending, err := repo.GetByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestMemoryBookingRepoReplaceAll(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	old := models.Booking{Name: "old"}
	require.NoError(t, repo.Create(ctx, &old))

	require.NoError(t, repo.ReplaceAll(ctx, []models.Booking{
		{ID: 10, Name: "imported a"},
		{ID: 11, Name: "imported b"},
	}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_, err = repo.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Ids keep advancing past the imported set.
	next := models.Booking{Name: "new"}
	require.NoError(t, repo.Create(ctx, &next))
	assert.Equal(t, int64(12), next.ID)
}

func TestMemoryCityRepoEnabledFilter(t *testing.T) {
	repo := NewMemoryCityRepo()
	ctx := context.Background()

	all, err := repo.GetAll(ctx, false)
	require.NoError(t, err)
	enabled, err := repo.GetAll(ctx, true)
	require.NoError(t, err)
	assert.Greater(t, len(all), len(enabled), "the seed set carries a disabled city")
	for _, c := range enabled {
		assert.True(t, c.Enabled)
	}
}

func TestMemoryServiceRepoEnabledFilter(t *testing.T) {
	repo := NewMemoryServiceRepo()
	ctx := context.Background()

	enabled, err := repo.GetAll(ctx, true)
	require.NoError(t, err)
	for _, s := range enabled {
		assert.True(t, s.Enabled)
	}
}

func TestMemoryBlockedSlotRepoFilter(t *testing.T) {
	repo := NewMemoryBlockedSlotRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.BlockedSlot{CityID: 1, Date: "2026-09-07", Time: "11:00"}))
	require.NoError(t, repo.Create(ctx, &models.BlockedSlot{CityID: 1, Date: "2026-09-08"}))
	require.NoError(t, repo.Create(ctx, &models.BlockedSlot{CityID: 2, Date: "2026-09-07"}))

	slots, err := repo.GetForCityDate(ctx, 1, "2026-09-07")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "11:00", slots[0].Time)
}

func TestMemoryWorkerRepoCRUD(t *testing.T) {
	repo := NewMemoryWorkerRepo()
	ctx := context.Background()

	w := models.Worker{Name: "Marco", Specialties: models.StringList{"deep"}, Active: true, ClientRef: "ref-1"}
	require.NoError(t, repo.Create(ctx, &w))
	assert.Equal(t, int64(1), w.ID)

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "ref-1", got.ClientRef)

	require.NoError(t, repo.Delete(ctx, w.ID))
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
