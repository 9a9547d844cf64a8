package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/artomat/artomat/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local gallery of generated images",
		Long: `Starts a read-only web gallery over the output directory.

The gallery lists every generated image together with its art style,
concept prompt, and gist link, read from the metadata sidecars.`,
		Example: `  # Serve the default images directory on port 8888
  artomat serve

  # Serve another directory on a custom port
  artomat serve --output-dir renders --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = os.Getenv("OUTPUT_DIR")
			}
			if outputDir == "" {
				outputDir = "images"
			}

			handler, err := handlers.New(outputDir)
			if err != nil {
				return err
			}

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/entries", handler.HandleEntries)
			mux.HandleFunc("/api/entries/", handler.HandleEntryDetail)
			mux.HandleFunc("/images/", handler.HandleImage)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Gallery available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory of generated images and metadata")

	return cmd
}
