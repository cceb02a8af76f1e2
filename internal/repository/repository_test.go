package repository

import (
	"context"
	"testing"
	"time"

	"checkout-kart/internal/database"
	"checkout-kart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the checkout schema
// migrated and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(connStr, zerolog.Nop()))

	pool, err := database.Connect(ctx, connStr, database.DefaultPoolSettings(), zerolog.Nop())
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedBuyer inserts a buyer and its cart lines.
func seedBuyer(t *testing.T, repo CartRepository, buyer *model.Buyer) {
	ctx := context.Background()

	require.NoError(t, repo.SaveBuyer(ctx, buyer))
	for _, item := range buyer.Cart {
		require.NoError(t, repo.AddCartItem(ctx, buyer.ID, item))
	}
}

func testBuyer() *model.Buyer {
	return &model.Buyer{
		ID:   "B001",
		Name: "Asha",
		ShippingData: model.ShippingData{
			Address: "12 MG Road",
			City:    "Bengaluru",
			State:   "KA",
			Country: "India",
			PinCode: "560001",
			PhoneNo: "9876543210",
		},
		Cart: []model.CartItem{
			{ProductID: "P001", Name: "Kettle", Quantity: 2, Price: &model.Price{Cost: 10}},
			{ProductID: "P002", Name: "Mug", Quantity: 1, Price: &model.Price{Cost: 5}},
		},
	}
}
