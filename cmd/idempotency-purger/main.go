package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	orderpostgres "github.com/commercekit/go-order-api/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/commercekit/go-order-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.MaybeConnect(ctx, strings.TrimSpace(os.Getenv("POSTGRES_DSN")), logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge idempotency keys")
	}

	store := orderpostgres.NewIdempotencyStore(db, keyTTLFromEnv())
	if err := store.PurgeExpired(ctx); err != nil {
		log.Fatalf("failed to purge idempotency keys: %v", err)
	}
	log.Printf("idempotency key purge completed")
}

func keyTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("IDEMPOTENCY_TTL_HOURS"))
	if raw == "" {
		return orderpostgres.DefaultKeyTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return orderpostgres.DefaultKeyTTL
	}
	return time.Duration(hours) * time.Hour
}
