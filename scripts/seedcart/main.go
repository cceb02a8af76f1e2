package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"checkout-kart/internal/config"
	"checkout-kart/internal/database"
	"checkout-kart/internal/model"
	"checkout-kart/internal/repository"
)

// Seeds a buyer and their cart from a JSON file shaped like model.Buyer:
//
//	go run ./scripts/seedcart -file buyer.json
//
// Without -file a sample buyer B001 with two priced items is written.
func main() {
	file := flag.String("file", "", "path to a buyer JSON document")
	flag.Parse()

	if err := run(*file); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	buyer := sampleBuyer()
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		buyer = &model.Buyer{}
		if err := json.Unmarshal(data, buyer); err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}
	}
	if buyer.ID == "" {
		return fmt.Errorf("buyer id is required")
	}

	ctx := context.Background()

	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	repo := repository.NewCartRepository(pool, logger)
	if err := repo.SaveBuyer(ctx, buyer); err != nil {
		return err
	}
	for _, item := range buyer.Cart {
		if err := repo.AddCartItem(ctx, buyer.ID, item); err != nil {
			return err
		}
	}

	fmt.Printf("Seeded buyer %s with %d cart items\n", buyer.ID, len(buyer.Cart))
	return nil
}

func sampleBuyer() *model.Buyer {
	return &model.Buyer{
		ID:   "B001",
		Name: "Asha",
		ShippingData: model.ShippingData{
			Address: "12 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
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
