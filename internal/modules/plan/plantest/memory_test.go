package plantest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlust/internal/modules/plan"
)

func TestMemoryIdentityAndConflict(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(plan.Plan{Slug: "tokyo-tour-3-days", Destination: "Tokyo", Days: 3, IsPublished: true})

	got, err := m.FindByIdentity(ctx, "TOKYO", 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tokyo", got.Destination)

	err = m.Create(ctx, &plan.Plan{Slug: "tokyo-tour-3-days"})
	assert.True(t, errors.Is(err, plan.ErrConflict))
	assert.Zero(t, m.Creates)
}

func TestMemoryIncrementMissing(t *testing.T) {
	m := NewMemory()
	got, err := m.IncrementShares(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}
