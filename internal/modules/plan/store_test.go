package plan

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"wanderlust/internal/infra"
	"wanderlust/migrations"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\d`, escapeLike(`c:\d`))
}

func TestStoreContract(t *testing.T) {
	runRepositoryContract(t, setupTestStore(t))
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("WANDERLUST_TEST_DSN")
	if dsn == "" {
		t.Skip("WANDERLUST_TEST_DSN not set; skipping postgres store tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := infra.Migrate(ctx, db, migrations.FS); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE plans"); err != nil {
		t.Fatalf("truncate plans: %v", err)
	}
	return NewStore(db)
}
