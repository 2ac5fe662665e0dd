package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/salish-sea/orcastat/internal/arrival"
	"github.com/salish-sea/orcastat/internal/density"
	"github.com/salish-sea/orcastat/internal/encounter"
	"github.com/salish-sea/orcastat/internal/model"
	"github.com/salish-sea/orcastat/internal/pod"
	"github.com/salish-sea/orcastat/internal/sightings"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a read-only HTTP API over the sighting statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		api, err := newSightingAPI()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// sightingAPI holds the event history loaded once at startup. Events are
// immutable, so handlers share them freely; the bootstrap estimator owns a
// random source and is serialized behind a mutex.
type sightingAPI struct {
	events  []model.Sighting
	archive []model.Sighting

	mu        sync.Mutex
	estimator *encounter.Estimator
}

func newSightingAPI() (*sightingAPI, error) {
	events, err := sightings.LoadFile(cfg.Data.Path)
	if err != nil {
		return nil, err
	}

	archive := events
	if cfg.Data.Archive() != cfg.Data.Path {
		archive, err = sightings.LoadFile(cfg.Data.Archive())
		if err != nil {
			return nil, err
		}
	}

	return &sightingAPI{
		events:    events,
		archive:   archive,
		estimator: encounter.NewEstimator(cfg.Encounter),
	}, nil
}

func (a *sightingAPI) router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	r.Use(requestLogger)
	r.Use(rateLimiter(rate.Limit(cfg.Server.RateLimit)))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/peak", a.handlePeak)
		r.Get("/probability", a.handleProbability)
		r.Get("/pods", a.handlePods)
		r.Get("/wait", a.handleWait)
	})

	return r
}

// requestLogger tags every request with an ID and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("request handled",
			zap.String("request_id", id),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// rateLimiter rejects requests beyond the configured sustained rate.
func rateLimiter(limit rate.Limit) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, int(limit)+1)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *sightingAPI) handlePeak(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}

	peak, err := density.PeakLocation(sightings.FilterMonth(a.events, month), cfg.Density.Scale)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no sightings recorded in %s", month))
		return
	}

	location, err := geojson.Marshal(peak.Location.Geom())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode location")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":    month.String(),
		"location": json.RawMessage(location),
		"count":    peak.Count,
	})
}

func (a *sightingAPI) handleProbability(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	events := sightings.FilterMonth(a.events, month)

	candidate, given, ok := pointParam(w, r)
	if !ok {
		return
	}
	if !given {
		peak, err := density.PeakLocation(events, cfg.Density.Scale)
		if err != nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no sightings recorded in %s", month))
			return
		}
		candidate = peak.Location
	}

	a.mu.Lock()
	p := a.estimator.Probability(candidate, events)
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"month":       month.String(),
		"latitude":    candidate.Latitude,
		"longitude":   candidate.Longitude,
		"probability": p,
	})
}

func (a *sightingAPI) handlePods(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	candidate, given, ok := pointParam(w, r)
	if !ok {
		return
	}
	if !given {
		writeError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}

	dist, mode, err := pod.Classify(sightings.FilterMonth(a.events, month), candidate, cfg.Pods.Labels, cfg.Encounter.DailyRange)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "classify pods")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":        month.String(),
		"mode":         mode,
		"distribution": dist,
	})
}

func (a *sightingAPI) handleWait(w http.ResponseWriter, r *http.Request) {
	m, err := arrival.Fit(a.archive)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "not enough distinct sighting times to fit a model")
		return
	}

	resp := map[string]any{"mean_hours": m.MeanHours}

	if raw := r.URL.Query().Get("hours"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "hours must be a number")
			return
		}
		p, err := m.SurvivalProbability(hours)
		if err != nil {
			writeError(w, http.StatusBadRequest, "hours must be non-negative")
			return
		}
		resp["hours"] = hours
		resp["survival_probability"] = p
	}

	writeJSON(w, http.StatusOK, resp)
}

// monthParam parses the required month query parameter.
func monthParam(w http.ResponseWriter, r *http.Request) (time.Month, bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "month is required")
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be a number")
		return 0, false
	}
	month, err := parseMonth(n)
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return 0, false
	}
	return month, true
}

// pointParam parses optional lat/lon query parameters. given reports whether
// both were supplied.
func pointParam(w http.ResponseWriter, r *http.Request) (p model.GeoPoint, given, ok bool) {
	rawLat := r.URL.Query().Get("lat")
	rawLon := r.URL.Query().Get("lon")
	if rawLat == "" && rawLon == "" {
		return model.GeoPoint{}, false, true
	}
	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lon, errLon := strconv.ParseFloat(rawLon, 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, "lat and lon must be numbers")
		return model.GeoPoint{}, false, false
	}
	return model.GeoPoint{Latitude: lat, Longitude: lon}, true, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
