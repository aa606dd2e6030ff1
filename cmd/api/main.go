package main

import (
	"context"
	"log"

	"github.com/commercekit/go-order-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("order API exited: %v", err)
	}
}
