package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ponto/analysis"
	"ponto/config"
	"ponto/storage"
	"ponto/web"
)

const serveLandingPath = "/api/summary"

var (
	servePort          int
	serveDBPath        string
	serveReloadOnStart bool
	serveNoOpen        bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local JSON API over the analysed snapshot",
	Long: `Start a local HTTP server exposing the summary, records, ranking, details and
export views of the cached snapshot.

POST /api/reload refetches the configured source and replaces the cache.`,
	Example: `
  # Start on the configured port with the cached snapshot
  ponto serve

  # Reload the source on start and listen on a custom port
  ponto serve --reload-on-start --port 9090 --db ./ponto.db --no-open
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		store, err := storage.OpenSQLite(serveDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		server := web.NewServer(web.Options{
			Tolerances:     cfg.Tolerances(),
			DefaultPeriod:  cfg.Analysis.DefaultPeriod,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         logger,
			Reload: func(ctx context.Context) (analysis.Snapshot, error) {
				return refreshSnapshot(ctx, cfg, store, logger)
			},
		})
		if err := primeServer(cmd.Context(), cfg, store, server, logger); err != nil {
			return err
		}

		httpServer := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           withLandingRedirect(server),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", port)
		fmt.Printf("Listening on %s\n", listenURL)
		if !serveNoOpen {
			if openErr := openURLInBrowser(listenURL + serveLandingPath); openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", openErr)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local web server (default: server.port)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", defaultDBPath, "Path to local SQLite database")
	serveCmd.Flags().BoolVar(&serveReloadOnStart, "reload-on-start", false, "Load the configured source before serving")
	serveCmd.Flags().BoolVar(&serveNoOpen, "no-open", false, "Do not open browser automatically")
}

// primeServer hands the initial snapshot to the server. A missing cache is not
// fatal; the API answers 503 until a reload succeeds.
func primeServer(ctx context.Context, cfg *config.Config, store *storage.SQLiteStore, server *web.Server, logger *slog.Logger) error {
	var (
		snapshot analysis.Snapshot
		err      error
	)
	if serveReloadOnStart {
		snapshot, err = refreshSnapshot(ctx, cfg, store, logger)
	} else {
		snapshot, err = store.LatestSnapshot()
	}
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
		logger.Warn("no cached snapshot; POST /api/reload or run ponto import")
		return nil
	case err != nil:
		return err
	}

	result := server.SetSnapshot(snapshot)
	logger.Info("snapshot ready",
		slog.String("snapshot", snapshot.ID.String()),
		slog.Int("records", len(result.Records)),
		slog.Int("skipped", len(result.Skipped)),
	)
	return nil
}

func withLandingRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			http.Redirect(w, r, serveLandingPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
