package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
)

// monthParams parses the year and month query parameters, defaulting to the
// current calendar month.
func monthParams(r *http.Request) (int, int, error) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("invalid year")
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, errors.New("invalid month")
		}
		month = parsed
	}
	return year, month, nil
}

// belowMinimumResponse is the 422 payload for budgets under the floor.
type belowMinimumResponse struct {
	Error          string                `json:"error"`
	Code           string                `json:"code"`
	RequestedCents int64                 `json:"requested_cents"`
	SuggestedCents int64                 `json:"suggested_cents"`
	Minimum        *models.MinimumBudget `json:"minimum"`
	Explanation    string                `json:"explanation,omitempty"`
}

func writeBudgetError(w http.ResponseWriter, err error) {
	var belowMin *interfaces.BelowMinimumError
	if errors.As(err, &belowMin) {
		WriteJSON(w, http.StatusUnprocessableEntity, belowMinimumResponse{
			Error:          belowMin.Error(),
			Code:           "below_minimum",
			RequestedCents: belowMin.RequestedCents,
			SuggestedCents: belowMin.SuggestedCents,
			Minimum:        belowMin.Minimum,
			Explanation:    belowMin.Minimum.Explanation(),
		})
		return
	}
	WriteError(w, http.StatusInternalServerError, err.Error())
}

// handleBudgets handles GET and POST /api/budgets.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		year, month, err := monthParams(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		budgets, err := s.app.Budget.MonthBudgets(r.Context(), common.ResolveUserID(r.Context()), year, month)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, budgets)

	case http.MethodPost:
		var budget models.Budget
		if !DecodeJSON(w, r, &budget) {
			return
		}
		budget.UserID = common.ResolveUserID(r.Context())
		created, err := s.app.Budget.Create(r.Context(), &budget)
		if err != nil {
			writeBudgetError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeBudgets handles /api/budgets/{id}.
func (s *Server) routeBudgets(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/budgets/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Budget id is required")
		return
	}
	userID := common.ResolveUserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		budget, err := s.app.Storage.BudgetStore().Get(r.Context(), userID, id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Budget not found")
			return
		}
		WriteJSON(w, http.StatusOK, budget)

	case http.MethodPut:
		var budget models.Budget
		if !DecodeJSON(w, r, &budget) {
			return
		}
		budget.ID = id
		budget.UserID = userID
		updated, err := s.app.Budget.Update(r.Context(), &budget)
		if err != nil {
			writeBudgetError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Budget.Delete(r.Context(), userID, id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleBudgetMinimum handles GET /api/budgets/minimum.
func (s *Server) handleBudgetMinimum(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	categoryID := r.URL.Query().Get("category_id")
	if categoryID == "" {
		WriteError(w, http.StatusBadRequest, "category_id is required")
		return
	}
	year, month, err := monthParams(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	minimum, err := s.app.Budget.MinimumBudget(r.Context(), common.ResolveUserID(r.Context()), categoryID, year, month)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"minimum_cents": minimum.MinimumCents,
		"sources":       minimum.Sources,
		"explanation":   minimum.Explanation(),
	})
}
