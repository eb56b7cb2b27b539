package plan

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises behaviour every Repository implementation must share.
// The repository must be empty when called.
func runRepositoryContract(t *testing.T, repo Repository) {
	ctx := context.Background()

	mk := func(dest string, days int) *Plan {
		p := validPlan()
		p.Destination = dest
		p.Days = days
		p.Slug = IdentitySlug(dest, days)
		p.Travelers = 2
		p.IsPublished = true
		p.Budget = map[string]string{"Food": "80-150 USD per day"}
		p.Normalize()
		return p
	}

	tokyo := mk("Tokyo", 3)
	require.NoError(t, repo.Create(ctx, tokyo))
	assert.NotEmpty(t, tokyo.ID)
	assert.False(t, tokyo.CreatedAt.IsZero())

	t.Run("identity is case insensitive and exact", func(t *testing.T) {
		got, err := repo.FindByIdentity(ctx, "tokyo", 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tokyo.ID, got.ID)
		assert.Equal(t, "Food", firstKey(got.Budget))

		got, err = repo.FindByIdentity(ctx, "Tokyo", 4)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.FindByIdentity(ctx, "Tok", 3)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.FindByIdentity(ctx, "T.kyo", 3)
		require.NoError(t, err)
		assert.Nil(t, got, "destination is matched literally")
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		dup := mk("tokyo", 3)
		err := repo.Create(ctx, dup)
		assert.True(t, errors.Is(err, ErrConflict), "got %v", err)
	})

	time.Sleep(5 * time.Millisecond)
	paris := mk("Paris", 10)
	paris.IsFeatured = true
	require.NoError(t, repo.Create(ctx, paris))

	time.Sleep(5 * time.Millisecond)
	hidden := mk("Paris Outskirts", 2)
	hidden.IsPublished = false
	require.NoError(t, repo.Create(ctx, hidden))

	t.Run("get by slug is published only", func(t *testing.T) {
		got, err := repo.GetBySlug(ctx, "PARIS-tour-10-days")
		require.NoError(t, err)
		assert.Equal(t, paris.ID, got.ID)

		_, err = repo.GetBySlug(ctx, hidden.Slug)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("search", func(t *testing.T) {
		got, err := repo.Search(ctx, SearchFilter{Destination: "par"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, paris.ID, got[0].ID)

		got, err = repo.Search(ctx, SearchFilter{Days: 3})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, tokyo.ID, got[0].ID)

		got, err = repo.Search(ctx, SearchFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, paris.ID, got[0].ID, "newest first")

		got, err = repo.Search(ctx, SearchFilter{Destination: "%"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("recent includes unpublished newest first", func(t *testing.T) {
		got, err := repo.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, hidden.ID, got[0].ID)
		assert.Equal(t, paris.ID, got[1].ID)
	})

	t.Run("featured", func(t *testing.T) {
		got, err := repo.ListFeatured(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, paris.ID, got[0].ID)
	})

	t.Run("counters are atomic", func(t *testing.T) {
		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.IncrementViews(ctx, tokyo.Slug)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repo.IncrementShares(ctx, tokyo.Slug)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, n, got.Views)
		assert.Equal(t, 1, got.Shares)

		missing, err := repo.IncrementViews(ctx, "nowhere-tour-1-days")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("popular sorts by views", func(t *testing.T) {
		got, err := repo.ListPopular(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, tokyo.ID, got[0].ID)
	})
}

func firstKey(m map[string]string) string {
	for k := range m {
		return k
	}
	return ""
}
