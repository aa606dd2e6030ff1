//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
	"github.com/commercekit/go-order-api/internal/domains/orders/ports"
	"github.com/commercekit/go-order-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("orderapi_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func placedOrder(t *testing.T, customerID string, lines ...domain.Line) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(customerID, lines)
	require.NoError(t, err)
	return order
}

func line(t *testing.T, productID string, price float64, quantity int) domain.Line {
	t.Helper()
	l, err := domain.NewLine(productID, price, quantity)
	require.NoError(t, err)
	return l
}

func TestPostgresRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, placedOrder(t, "c1",
		line(t, "p1", 9.99, 4), line(t, "p2", 25.50, 1)))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "c1", fetched.CustomerID)
	require.Len(t, fetched.Lines, 2)
	assert.Equal(t, 9.99, fetched.Lines[0].UnitPrice)
	assert.InDelta(t, 4*9.99+25.50, fetched.Total(), 1e-9)
}

func TestPostgresRepository_ListByProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, placedOrder(t, "c1", line(t, "p1", 9.99, 1)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, placedOrder(t, "c2",
		line(t, "p1", 9.99, 2), line(t, "p2", 25.50, 1)))
	require.NoError(t, err)

	withP2, err := repo.ListByProduct(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, withP2, 1)
	assert.Equal(t, "c2", withP2[0].CustomerID)

	withP1, err := repo.ListByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, withP1, 2)
}

func TestPostgresRepository_GetByID_Unknown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	_, err := repo.GetByID(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresIdempotencyStore_SaveReplayAndConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewIdempotencyStore(db, time.Hour)
	ctx := context.Background()

	saved, err := store.Save(ctx, ports.IdempotencyRecord{
		Key: "k1", RequestHash: "h1", OrderID: "order-1", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	replay, err := store.Save(ctx, ports.IdempotencyRecord{
		Key: "k1", RequestHash: "h1", OrderID: "order-1", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "order-1", replay.OrderID)

	existing, err := store.Save(ctx, ports.IdempotencyRecord{
		Key: "k1", RequestHash: "h2", OrderID: "order-2", CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.NotNil(t, existing)
	assert.Equal(t, "order-1", existing.OrderID)
}

func TestPostgresIdempotencyStore_ExpiredKeyIsReplaced(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewIdempotencyStore(db, time.Hour)
	ctx := context.Background()

	_, err := store.Save(ctx, ports.IdempotencyRecord{
		Key: "k1", RequestHash: "h1", OrderID: "order-1",
		CreatedAt: time.Now().Add(-2 * time.Hour),
	})
	require.NoError(t, err)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{
		Key: "k1", RequestHash: "h2", OrderID: "order-2", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "order-2", saved.OrderID)

	record, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "order-2", record.OrderID)
}

func TestPostgresIdempotencyStore_PurgeExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewIdempotencyStore(db, time.Hour)
	ctx := context.Background()

	_, err := store.Save(ctx, ports.IdempotencyRecord{
		Key: "stale", RequestHash: "h1", OrderID: "order-1",
		CreatedAt: time.Now().Add(-2 * time.Hour),
	})
	require.NoError(t, err)

	record, err := store.Get(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, record)

	require.NoError(t, store.PurgeExpired(ctx))
	var count int64
	require.NoError(t, db.Table("order_idempotency_keys").Count(&count).Error)
	assert.Zero(t, count)
}
