package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/adityakhanna/shopwise/internal/adapters/database"
	"github.com/adityakhanna/shopwise/internal/adapters/search"
	"github.com/adityakhanna/shopwise/internal/infrastructure/clients/postgres"
	"github.com/adityakhanna/shopwise/internal/infrastructure/clients/typesense"
	"github.com/adityakhanna/shopwise/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	catalogRepo := database.NewCatalogAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting reviews collection before reindexing")
		if _, err := tsClient.Client().Collection(typesense.ReviewsCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	reviewIndex := search.NewTypesenseReviewAdapter(tsClient)

	products, err := catalogRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	indexed := 0
	reviews := 0
	for _, product := range products {
		if len(product.Reviews) == 0 {
			continue
		}
		if err := reviewIndex.Index(ctx, product); err != nil {
			log.Printf("Warning: failed to index reviews for %s: %v", product.Name, err)
			continue
		}
		indexed++
		reviews += len(product.Reviews)
	}

	log.Printf("Indexed %d reviews across %d products", reviews, indexed)
	return nil
}
