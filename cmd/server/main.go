/*
main.go - Application entry point

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Open the SQLite rate store; seed it from the embedded published BC
     table when empty
  3. Load the rate table and build the calculator
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080, or PORT from the environment)
  -db      SQLite rate database path (default: rates.db; ":memory:" works)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for active
  requests, close the store, exit.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/coibc/interest-engine/api"
	"github.com/coibc/interest-engine/interest"
	"github.com/coibc/interest-engine/rates"
	"github.com/coibc/interest-engine/store/sqlite"
)

func main() {
	_ = godotenv.Load()

	defaultPort := 8080
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		defaultPort = p
	}

	port := flag.Int("port", defaultPort, "HTTP server port")
	dbPath := flag.String("db", envOr("RATES_DB", "rates.db"), "SQLite rate database path")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open rate store")
	}
	defer store.Close()

	ctx := context.Background()
	if err := seedIfEmpty(ctx, store); err != nil {
		log.Fatal().Err(err).Msg("failed to seed rate store")
	}

	table, err := store.LoadTable(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load rate table")
	}
	log.Info().Strs("jurisdictions", table.Jurisdictions()).Msg("rate table loaded")

	calc := interest.NewCalculator(table, log)
	handler := api.NewHandler(calc, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", *port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// seedIfEmpty installs the embedded published BC table into a fresh store.
func seedIfEmpty(ctx context.Context, store *sqlite.Store) error {
	empty, err := store.IsEmpty(ctx)
	if err != nil || !empty {
		return err
	}
	table, err := rates.Default()
	if err != nil {
		return err
	}
	return store.SaveTable(ctx, table)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
