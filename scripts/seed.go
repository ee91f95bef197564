package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/adityakhanna/shopwise/internal/adapters/database"
	"github.com/adityakhanna/shopwise/internal/adapters/search"
	"github.com/adityakhanna/shopwise/internal/domain/entities"
	"github.com/adityakhanna/shopwise/internal/infrastructure/clients/postgres"
	"github.com/adityakhanna/shopwise/internal/infrastructure/clients/typesense"
	"github.com/adityakhanna/shopwise/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if err := ensureSchema(ctx, pgClient); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				reviews,
				products
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	catalogRepo := database.NewCatalogAdapter(pgClient)

	var reviewIndex *search.TypesenseReviewAdapter
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Typesense unavailable, skipping review indexing: %v", err)
	} else {
		if err := tsClient.InitSchema(ctx); err != nil {
			log.Printf("Warning: failed to initialize Typesense schema: %v", err)
		} else {
			reviewIndex = search.NewTypesenseReviewAdapter(tsClient)
		}
	}

	products := demoCatalog()

	created := 0
	for _, product := range products {
		if err := catalogRepo.Create(ctx, product); err != nil {
			log.Printf("Warning: failed to create %s: %v", product.Name, err)
			continue
		}
		created++

		if reviewIndex != nil && len(product.Reviews) > 0 {
			if err := reviewIndex.Index(ctx, product); err != nil {
				log.Printf("Warning: failed to index reviews for %s: %v", product.Name, err)
			}
		}
	}

	log.Printf("Seeded %d products", created)
}

func ensureSchema(ctx context.Context, client *postgres.Client) error {
	_, err := client.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			brand      TEXT NOT NULL,
			category   TEXT NOT NULL,
			price      NUMERIC NOT NULL,
			specs      JSONB NOT NULL DEFAULT '{}',
			tags       TEXT[] NOT NULL DEFAULT '{}',
			is_active  BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS reviews (
			id         TEXT PRIMARY KEY,
			product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			rating     NUMERIC NOT NULL,
			text       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
		CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand);
		CREATE INDEX IF NOT EXISTS idx_reviews_product_id ON reviews(product_id);
	`)
	return err
}

func product(name, brand, category string, price float64, specs map[string]string, reviews ...entities.Review) *entities.Product {
	now := time.Now()
	return &entities.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Brand:     brand,
		Category:  category,
		Price:     price,
		Specs:     specs,
		Reviews:   reviews,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func review(rating float64, text string) entities.Review {
	return entities.Review{Rating: rating, Text: text}
}

func demoCatalog() []*entities.Product {
	return []*entities.Product{
		product("Galaxy S24", "Samsung", "Smartphones", 74999,
			map[string]string{"RAM": "8GB", "Storage": "256GB", "Display": "6.2 inch", "Camera": "50MP", "Battery": "4000mAh"},
			review(4.6, "Stunning display and the camera handles low light beautifully."),
			review(4.2, "Battery easily lasts a full day of heavy use."),
			review(4.8, "Fast, fluid, and the build quality feels premium.")),
		product("iPhone 15", "Apple", "Smartphones", 79900,
			map[string]string{"RAM": "6GB", "Storage": "128GB", "Display": "6.1 inch", "Camera": "48MP", "Battery": "3349mAh"},
			review(4.8, "The camera is the best I have used on any phone."),
			review(4.5, "Seamless with my other Apple devices, worth the price."),
			review(4.0, "Great phone but I wish the base storage were bigger.")),
		product("OnePlus 12", "OnePlus", "Smartphones", 64999,
			map[string]string{"RAM": "12GB", "Storage": "256GB", "Display": "6.82 inch", "Camera": "50MP", "Battery": "5400mAh"},
			review(4.5, "Charging speed is unreal, full battery in under half an hour."),
			review(4.3, "Flagship performance at a much friendlier price.")),
		product("Redmi Note 13 Pro", "Xiaomi", "Smartphones", 25999,
			map[string]string{"RAM": "8GB", "Storage": "128GB", "Display": "6.67 inch", "Camera": "200MP", "Battery": "5100mAh"},
			review(4.2, "Incredible value, the screen rivals phones twice the price."),
			review(3.8, "Good overall but the software has too many preinstalled apps.")),
		product("Pixel 8", "Google", "Smartphones", 59999,
			map[string]string{"RAM": "8GB", "Storage": "128GB", "Display": "6.2 inch", "Camera": "50MP", "Battery": "4575mAh"},
			review(4.6, "Cleanest Android experience and the photos are superb."),
			review(4.4, "Call screening alone is worth it, battery is dependable.")),

		product("MacBook Air M2", "Apple", "Laptops", 99900,
			map[string]string{"RAM": "8GB", "Storage": "256GB", "Display": "13.6 inch", "Processor": "Apple M2"},
			review(4.9, "Silent, cool, and the battery genuinely lasts all day."),
			review(4.7, "Perfect travel laptop, the screen is gorgeous.")),
		product("ThinkPad X1 Carbon", "Lenovo", "Laptops", 145000,
			map[string]string{"RAM": "16GB", "Storage": "512GB", "Display": "14 inch", "Processor": "Intel Core i7"},
			review(4.7, "The keyboard is unmatched for long writing sessions."),
			review(4.5, "Light, sturdy, and handles heavy workloads without complaint.")),
		product("Dell Inspiron 15", "Dell", "Laptops", 54999,
			map[string]string{"RAM": "16GB", "Storage": "512GB", "Display": "15.6 inch", "Processor": "Intel Core i5"},
			review(4.1, "Solid performer for office work and casual gaming."),
			review(3.9, "Good specs for the price though the screen could be brighter.")),
		product("HP Pavilion 14", "HP", "Laptops", 62999,
			map[string]string{"RAM": "16GB", "Storage": "512GB", "Display": "14 inch", "Processor": "AMD Ryzen 5"},
			review(4.3, "Compact, quick, and the battery gets me through meetings.")),
		product("ASUS ROG Strix G15", "ASUS", "Laptops", 112000,
			map[string]string{"RAM": "16GB", "Storage": "1TB", "Display": "15.6 inch", "Processor": "AMD Ryzen 7"},
			review(4.6, "Runs every game I throw at it on high settings."),
			review(4.2, "Fans get loud under load but the performance is worth it.")),

		product("Sony WH-1000XM5", "Sony", "Headphones", 29990,
			map[string]string{"Battery": "30 hours", "Type": "Over-ear"},
			review(4.8, "Noise cancellation is magic on flights."),
			review(4.7, "Comfortable for entire workdays, sound is rich and balanced.")),
		product("AirPods Pro 2", "Apple", "Headphones", 24900,
			map[string]string{"Battery": "6 hours", "Type": "In-ear"},
			review(4.6, "Transparency mode is eerily natural."),
			review(4.4, "Great fit and the case charging is convenient.")),
		product("JBL Tune 770NC", "JBL", "Headphones", 7999,
			map[string]string{"Battery": "70 hours", "Type": "Over-ear"},
			review(4.1, "Unbeatable battery life for the price."),
			review(3.7, "Decent sound, noise cancelling is basic but works.")),

		product("iPad Air", "Apple", "Tablets", 59900,
			map[string]string{"RAM": "8GB", "Storage": "128GB", "Display": "10.9 inch"},
			review(4.7, "Perfect middle ground between the base iPad and the Pro."),
			review(4.5, "Great for sketching and note taking with the Pencil.")),
		product("Galaxy Tab S9", "Samsung", "Tablets", 72999,
			map[string]string{"RAM": "8GB", "Storage": "128GB", "Display": "11 inch"},
			review(4.5, "The AMOLED screen makes movies look fantastic."),
			review(4.3, "DeX mode turns it into a passable laptop replacement.")),

		product("Galaxy Watch 6", "Samsung", "Smartwatches", 29999,
			map[string]string{"Battery": "40 hours", "Display": "1.5 inch"},
			review(4.4, "Sleep tracking is detailed and the screen is bright."),
			review(4.0, "Battery is fine for a day and a half of use.")),
		product("Apple Watch Series 9", "Apple", "Smartwatches", 41900,
			map[string]string{"Battery": "18 hours", "Display": "1.9 inch"},
			review(4.6, "The double tap gesture is surprisingly handy."),
			review(4.5, "Fitness tracking keeps me honest, integration is seamless.")),

		product("Sonos Era 100", "Sonos", "Speakers", 24999,
			map[string]string{"Type": "Smart speaker"},
			review(4.5, "Room-filling sound from such a small footprint."),
			review(4.3, "Setup took two minutes and multi-room works flawlessly.")),
		product("JBL Flip 6", "JBL", "Speakers", 9999,
			map[string]string{"Battery": "12 hours", "Type": "Portable"},
			review(4.4, "Survived a pool party, sounds great outdoors."),
			review(4.2, "Punchy bass for the size, battery lasts the weekend.")),

		product("Canon EOS R50", "Canon", "Cameras", 65999,
			map[string]string{"Sensor": "24.2MP APS-C", "Video": "4K 30fps"},
			review(4.5, "Autofocus nails moving subjects almost every time."),
			review(4.3, "Light enough to carry everywhere, colors are lovely.")),
		product("Sony Alpha ZV-E10", "Sony", "Cameras", 59490,
			map[string]string{"Sensor": "24.2MP APS-C", "Video": "4K 30fps"},
			review(4.4, "Made for vlogging, the flip screen and mic are excellent.")),

		product("PlayStation 5", "Sony", "Gaming Consoles", 54990,
			map[string]string{"Storage": "825GB", "Resolution": "4K 120fps"},
			review(4.8, "Load times are basically gone, the controller is a revelation."),
			review(4.7, "Exclusive titles alone justify the purchase.")),
		product("Xbox Series S", "Microsoft", "Gaming Consoles", 34990,
			map[string]string{"Storage": "512GB", "Resolution": "1440p 120fps"},
			review(4.3, "Game Pass makes this the best value in gaming."),
			review(4.0, "Compact and quiet, storage fills up fast though.")),
	}
}
