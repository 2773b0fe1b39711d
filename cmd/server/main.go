// Command server runs the ConceptDost HTTP API.
//
// Configuration is read from the environment (see internal/config); a .env
// file in the working directory is loaded if present.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/conceptdost/conceptdost-backend/internal/app"
)

func main() {
	// Local development convenience; in production the environment is set
	// by the deployment, and a missing .env is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
