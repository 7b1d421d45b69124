// Package web implements the HTTP front end for the job board.
//
// Routes:
//
//	GET /health         → liveness plus store reachability
//	GET /               → landing page: totals and specialty tiles
//	GET /jobs           → filtered listing (HTML)
//	GET /api/jobs       → filtered listing with stats (JSON)
//	GET /api/stats      → stats for the filtered listing (JSON)
//	GET /api/locations  → distinct stored locations (JSON)
//	GET /api/jobs.csv   → filtered listing as CSV
//
// Listing routes accept level, category, specialty and location (all
// repeatable), search and min_score query parameters.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ldexchange/jobboard/internal/model"
	"ldexchange/jobboard/internal/store"
	"ldexchange/jobboard/internal/view"
)

// Version is reported by /health.
const Version = "1.0.0"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler holds shared dependencies.
type Handler struct {
	svc   *view.Service
	store Pinger
	pages *pages
}

// NewHandler returns a configured Handler. st may be nil when no store is
// configured; listing routes then answer 503.
func NewHandler(svc *view.Service, st Pinger) *Handler {
	return &Handler{svc: svc, store: st, pages: mustParsePages()}
}

// RegisterRoutes mounts all routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", getOnly(h.health))
	mux.HandleFunc("/", getOnly(h.home))
	mux.HandleFunc("/jobs", getOnly(h.jobsPage))
	mux.HandleFunc("/api/jobs", getOnly(h.jobsAPI))
	mux.HandleFunc("/api/stats", getOnly(h.statsAPI))
	mux.HandleFunc("/api/locations", getOnly(h.locationsAPI))
	mux.HandleFunc("/api/jobs.csv", getOnly(h.jobsCSV))
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	storeStatus := "ok"
	if h.store == nil {
		storeStatus = "unavailable"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			log.Printf("[web] health ping failed: %v", err)
			storeStatus = "unreachable"
		}
	}
	jsonOK(w, map[string]string{
		"status":  "ok",
		"service": "jobboard-web",
		"version": Version,
		"store":   storeStatus,
	})
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	landing, err := h.svc.Landing(r.Context())
	if err != nil {
		htmlError(w, err)
		return
	}
	h.pages.render(w, "home.html", homeData{Landing: landing, Tiles: tiles(landing)})
}

func (h *Handler) jobsPage(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilters(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := h.svc.View(r.Context(), f)
	if err != nil {
		htmlError(w, err)
		return
	}
	locs, err := h.svc.Locations(r.Context())
	if err != nil {
		htmlError(w, err)
		return
	}
	h.pages.render(w, "jobs.html", jobsData{
		View:       v,
		Locations:  locs,
		Levels:     model.Levels,
		Categories: model.Categories,
		CSVURL:     template.URL("/api/jobs.csv?" + r.URL.Query().Encode()),
	})
}

func (h *Handler) jobsAPI(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilters(r.URL.Query())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := h.svc.View(r.Context(), f)
	if err != nil {
		serviceError(w, "jobs", err)
		return
	}
	jsonOK(w, v)
}

func (h *Handler) statsAPI(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilters(r.URL.Query())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := h.svc.View(r.Context(), f)
	if err != nil {
		serviceError(w, "stats", err)
		return
	}
	jsonOK(w, v.Stats)
}

func (h *Handler) locationsAPI(w http.ResponseWriter, r *http.Request) {
	locs, err := h.svc.Locations(r.Context())
	if err != nil {
		serviceError(w, "locations", err)
		return
	}
	jsonOK(w, map[string][]string{"locations": locs})
}

func (h *Handler) jobsCSV(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilters(r.URL.Query())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := h.svc.View(r.Context(), f)
	if err != nil {
		serviceError(w, "export", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ld_jobs.csv"`)
	if err := view.WriteCSV(w, v.Jobs); err != nil {
		log.Printf("[web] csv export error: %v", err)
	}
}

// ─── Query parsing ────────────────────────────────────────────────────────────

// ParseFilters maps query parameters onto view filters. Unknown levels or
// categories and out-of-range scores are rejected.
func ParseFilters(q url.Values) (view.Filters, error) {
	var f view.Filters
	for _, s := range nonEmpty(q["level"]) {
		l, err := model.ParseLevel(s)
		if err != nil {
			return f, err
		}
		f.Levels = append(f.Levels, l)
	}
	for _, s := range nonEmpty(q["category"]) {
		c, err := model.ParseCategory(s)
		if err != nil {
			return f, err
		}
		f.Categories = append(f.Categories, c)
	}
	f.Specialties = nonEmpty(q["specialty"])
	f.Locations = nonEmpty(q["location"])
	f.Search = strings.TrimSpace(q.Get("search"))
	if s := strings.TrimSpace(q.Get("min_score")); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > 100 {
			return f, fmt.Errorf("min_score must be an integer between 0 and 100, got %q", s)
		}
		f.MinScore = v
	}
	return f, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// serviceError maps view errors: a missing store is 503, never an empty list.
func serviceError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrUnavailable) {
		jsonError(w, "job store unavailable", http.StatusServiceUnavailable)
		return
	}
	log.Printf("[web] %s error: %v", op, err)
	jsonError(w, "database error", http.StatusInternalServerError)
}

func htmlError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrUnavailable) {
		http.Error(w, "Job store unavailable. Set DATABASE_URL or SQLITE_PATH.", http.StatusServiceUnavailable)
		return
	}
	log.Printf("[web] page error: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
