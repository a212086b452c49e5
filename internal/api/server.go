// Package api serves the read side of the tracker as JSON over HTTP.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/service"
)

type Server struct {
	DB  *sql.DB
	Loc *time.Location
	// Now is used for rolling windows and default dates; nil means time.Now.
	Now func() time.Time
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, middleware.RequestID, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "time": s.now().Format(time.RFC3339)})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/users/{id}", s.handleGetUser)
		r.Get("/weight/daily-calorie", s.handleDailyCalorie)
		r.Get("/weight/body-info", s.handleBodyInfo)
		r.Get("/weight/records", s.handleWeightRecords)
		r.Get("/meals/records", s.handleMealRecords)
		r.Get("/water/records", s.handleWaterRecords)
		r.Get("/foods/search", s.handleSearchFoods)
		r.Get("/foods", s.handleFoodsByCategory)
	})
	return r
}

func (s *Server) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if s.Loc == nil {
		return now()
	}
	return now().In(s.Loc)
}

func (s *Server) today() string {
	return energy.DateOf(s.now())
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := service.GetUser(s.DB, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDailyCalorie(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r.URL.Query().Get("user_id"), "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	date := r.URL.Query().Get("date")
	if strings.TrimSpace(date) == "" {
		date = s.today()
	}
	summary, err := service.DailyCalorie(r.Context(), s.DB, userID, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleBodyInfo(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r.URL.Query().Get("user_id"), "user_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	date := r.URL.Query().Get("date")
	if strings.TrimSpace(date) == "" {
		date = s.today()
	}
	info, err := service.BodyInfo(r.Context(), s.DB, userID, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleWeightRecords(w http.ResponseWriter, r *http.Request) {
	q, err := s.recordsQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	days, err := service.ListWeightRecords(s.DB, q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleMealRecords(w http.ResponseWriter, r *http.Request) {
	q, err := s.recordsQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := service.ListMealRecords(s.DB, q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records.Today != nil {
		writeJSON(w, http.StatusOK, records.Today)
		return
	}
	writeJSON(w, http.StatusOK, records.Days)
}

func (s *Server) handleWaterRecords(w http.ResponseWriter, r *http.Request) {
	q, err := s.recordsQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	groups, err := service.ListWaterRecords(s.DB, q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleSearchFoods(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, r, invalidParam("limit", raw))
			return
		}
		limit = v
	}
	items, err := service.SearchFoods(s.DB, r.URL.Query().Get("keyword"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleFoodsByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := service.ListFoodsByCategory(s.DB, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// recordsQuery reads user_id, mode, date, start and end. today mode without
// a date means the server's current date.
func (s *Server) recordsQuery(r *http.Request) (service.RecordsQuery, error) {
	v := r.URL.Query()
	userID, err := parseID(v.Get("user_id"), "user_id")
	if err != nil {
		return service.RecordsQuery{}, err
	}
	q := service.RecordsQuery{
		UserID: userID,
		Mode:   v.Get("mode"),
		Date:   v.Get("date"),
		Start:  v.Get("start"),
		End:    v.Get("end"),
		Now:    s.now(),
	}
	if strings.EqualFold(strings.TrimSpace(q.Mode), string(energy.ModeToday)) && strings.TrimSpace(q.Date) == "" {
		q.Date = s.today()
	}
	return q, nil
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidParam(name, raw)
	}
	return id, nil
}

func invalidParam(name, raw string) error {
	return fmt.Errorf("%w: invalid %s %q", energy.ErrInvalidInput, name, raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, energy.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, energy.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		log.Printf("req_id=%s %s %s: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
