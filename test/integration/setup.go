package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"checkout-kart/internal/database"
	"checkout-kart/internal/model"
	"checkout-kart/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the migrations
// and opens a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()

	// Create schema
	if err := database.Migrate(connStr, logger); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	pool, err := database.Connect(ctx, connStr, database.DefaultPoolSettings(), logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// TestBuyers returns the buyers seeded by SeedBuyers.
// B001 has a priced two-line cart, B002 an empty cart and B003 an unpriced item.
func TestBuyers() []*model.Buyer {
	shipping := model.ShippingData{
		Address: "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Country: "India",
		PinCode: "560001",
		PhoneNo: "9876543210",
	}

	return []*model.Buyer{
		{
			ID:           "B001",
			Name:         "Asha",
			ShippingData: shipping,
			Cart: []model.CartItem{
				{ProductID: "P001", Name: "Kettle", Quantity: 2, Price: &model.Price{Cost: 10}},
				{ProductID: "P002", Name: "Mug", Quantity: 1, Price: &model.Price{Cost: 5}},
			},
		},
		{
			ID:           "B002",
			Name:         "Ravi",
			ShippingData: shipping,
		},
		{
			ID:           "B003",
			Name:         "Meera",
			ShippingData: shipping,
			Cart: []model.CartItem{
				{ProductID: "P003", Name: "Teapot", Quantity: 3},
			},
		},
	}
}

// SeedBuyers inserts the test buyers and their carts into the database.
func SeedBuyers(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewCartRepository(pool, zerolog.Nop())

	for _, buyer := range TestBuyers() {
		if err := repo.SaveBuyer(ctx, buyer); err != nil {
			t.Fatalf("failed to seed buyer %s: %v", buyer.ID, err)
		}
		for _, item := range buyer.Cart {
			if err := repo.AddCartItem(ctx, buyer.ID, item); err != nil {
				t.Fatalf("failed to seed cart item %s/%s: %v", buyer.ID, item.ProductID, err)
			}
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "cart_items", "buyers"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
