package server

import (
	"net/http"
	"time"

	"github.com/bobmcallan/plano/internal/common"
)

// forecastWindow parses from/to query parameters ("YYYY-MM"), defaulting to
// a six-month window starting at the current month.
func forecastWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 5, 0)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}
	return start, end, nil
}

// handleForecast handles GET /api/forecast: the reconciled monthly view.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	start, end, err := forecastWindow(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid window: use from=YYYY-MM&to=YYYY-MM")
		return
	}

	view, err := s.app.Forecast.MonthlyView(r.Context(), common.ResolveUserID(r.Context()), start, end)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// handleForecastProjections handles GET /api/forecast/projections: the raw
// projection expansion without budget reconciliation.
func (s *Server) handleForecastProjections(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	start, end, err := forecastWindow(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid window: use from=YYYY-MM&to=YYYY-MM")
		return
	}

	result, err := s.app.Forecast.GenerateProjections(r.Context(), common.ResolveUserID(r.Context()), start, end)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
