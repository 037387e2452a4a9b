package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/sales-analytics/internal/config"
	"github.com/sells-group/sales-analytics/internal/sink"
	"github.com/sells-group/sales-analytics/internal/store"
)

var servePort int

// errorEnvelope is the structured failure returned by the trigger
// endpoint. A caller receives either this or a full report, never a
// partial document.
type errorEnvelope struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// successEnvelope frames a complete report for the trigger endpoint.
type successEnvelope struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the on-demand analytics server",
	Long: `Serves the pipeline over HTTP: POST /analytics/run executes the full
pipeline synchronously and returns the report, GET /analytics/report
returns the report of the most recent successful run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "serve: open store")
		}
		defer st.Close()

		pub, err := sink.New(cfg.Sink)
		if err != nil {
			return eris.Wrap(err, "serve: init sink")
		}

		router := newRouter(cfg, st, pub)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the HTTP surface. The trigger endpoint is rate
// limited since every call recomputes the full dataset.
func newRouter(cfg *config.Config, st store.Store, pub sink.Publisher) chi.Router {
	limiter := rate.NewLimiter(rate.Limit(cfg.Server.RatePerSec), cfg.Server.RateBurst)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/analytics/run", func(w http.ResponseWriter, req *http.Request) {
		if !limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, errorEnvelope{
				Status:    "error",
				Message:   "rate limit exceeded",
				Timestamp: time.Now().UTC(),
			})
			return
		}

		outcome, err := executeRun(req.Context(), cfg, "", st, pub)
		if err != nil {
			zap.L().Error("serve: pipeline run failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorEnvelope{
				Status:    "error",
				Message:   err.Error(),
				Timestamp: time.Now().UTC(),
			})
			return
		}

		writeJSON(w, http.StatusOK, successEnvelope{
			Status:    "success",
			Timestamp: time.Now().UTC(),
			Data:      outcome.Report,
		})
	})

	r.Get("/analytics/report", func(w http.ResponseWriter, req *http.Request) {
		report, err := st.LatestReport(req.Context())
		if err != nil {
			zap.L().Error("serve: latest report lookup failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorEnvelope{
				Status:    "error",
				Message:   "report lookup failed",
				Timestamp: time.Now().UTC(),
			})
			return
		}
		if report == nil {
			writeJSON(w, http.StatusNotFound, errorEnvelope{
				Status:    "error",
				Message:   "no report available yet",
				Timestamp: time.Now().UTC(),
			})
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
