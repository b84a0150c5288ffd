package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/payplan/backend/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errAPIURLMissing = errors.New("environment variable API_URL must be set")

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe starts the API server and blocks until ctx is cancelled
// or the process receives SIGINT or SIGTERM.
func runServe(ctx context.Context) error {
	setupLogging(os.Stdout)

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		return errAPIURLMissing
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		return fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	disconnect, err := connect()
	if err != nil {
		return err
	}
	defer disconnect()

	r, teardown, err := router.Config(baseURL)
	if err != nil {
		return err
	}
	defer teardown()
	router.AttachRoutes(r.Group("/"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("address", server.Addr).Str("url", baseURL.String()).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shut down: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}
