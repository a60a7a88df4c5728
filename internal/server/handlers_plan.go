package server

import (
	"net/http"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/models"
)

// --- Goals ---

// handleGoals handles GET and POST /api/goals.
func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		goals, err := s.app.Plan.ListGoals(r.Context(), common.ResolveUserID(r.Context()))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, goals)

	case http.MethodPost:
		var goal models.Goal
		if !DecodeJSON(w, r, &goal) {
			return
		}
		goal.ID = ""
		goal.UserID = common.ResolveUserID(r.Context())
		created, err := s.app.Plan.SaveGoal(r.Context(), &goal)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeGoals handles /api/goals/{id}.
func (s *Server) routeGoals(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/goals/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Goal id is required")
		return
	}
	userID := common.ResolveUserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		goal, err := s.app.Plan.GetGoal(r.Context(), userID, id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Goal not found")
			return
		}
		WriteJSON(w, http.StatusOK, goal)

	case http.MethodPut:
		var goal models.Goal
		if !DecodeJSON(w, r, &goal) {
			return
		}
		goal.ID = id
		goal.UserID = userID
		updated, err := s.app.Plan.SaveGoal(r.Context(), &goal)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Plan.DeleteGoal(r.Context(), userID, id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// --- Debts ---

// handleDebts handles GET and POST /api/debts.
func (s *Server) handleDebts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		debts, err := s.app.Plan.ListDebts(r.Context(), common.ResolveUserID(r.Context()))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, debts)

	case http.MethodPost:
		var debt models.Debt
		if !DecodeJSON(w, r, &debt) {
			return
		}
		debt.ID = ""
		debt.UserID = common.ResolveUserID(r.Context())
		created, err := s.app.Plan.SaveDebt(r.Context(), &debt)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeDebts handles /api/debts/{id}.
func (s *Server) routeDebts(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/debts/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Debt id is required")
		return
	}
	userID := common.ResolveUserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		debt, err := s.app.Plan.GetDebt(r.Context(), userID, id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Debt not found")
			return
		}
		WriteJSON(w, http.StatusOK, debt)

	case http.MethodPut:
		var debt models.Debt
		if !DecodeJSON(w, r, &debt) {
			return
		}
		debt.ID = id
		debt.UserID = userID
		updated, err := s.app.Plan.SaveDebt(r.Context(), &debt)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Plan.DeleteDebt(r.Context(), userID, id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// --- Investments ---

// handleInvestments handles GET and POST /api/investments.
func (s *Server) handleInvestments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		investments, err := s.app.Plan.ListInvestments(r.Context(), common.ResolveUserID(r.Context()))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, investments)

	case http.MethodPost:
		var inv models.Investment
		if !DecodeJSON(w, r, &inv) {
			return
		}
		inv.ID = ""
		inv.UserID = common.ResolveUserID(r.Context())
		created, err := s.app.Plan.SaveInvestment(r.Context(), &inv)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeInvestments handles /api/investments/{id}.
func (s *Server) routeInvestments(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/investments/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Investment id is required")
		return
	}
	userID := common.ResolveUserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		inv, err := s.app.Plan.GetInvestment(r.Context(), userID, id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Investment not found")
			return
		}
		WriteJSON(w, http.StatusOK, inv)

	case http.MethodPut:
		var inv models.Investment
		if !DecodeJSON(w, r, &inv) {
			return
		}
		inv.ID = id
		inv.UserID = userID
		updated, err := s.app.Plan.SaveInvestment(r.Context(), &inv)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Plan.DeleteInvestment(r.Context(), userID, id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// --- Plan entries ---

// handlePlanEntries handles GET and POST /api/plan/entries.
func (s *Server) handlePlanEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		from, to, err := forecastWindow(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid window: use from=YYYY-MM&to=YYYY-MM")
			return
		}
		entries, err := s.app.Plan.ListEntries(r.Context(), common.ResolveUserID(r.Context()), from, to)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, entries)

	case http.MethodPost:
		var entry models.PlanEntry
		if !DecodeJSON(w, r, &entry) {
			return
		}
		entry.ID = ""
		entry.UserID = common.ResolveUserID(r.Context())
		created, err := s.app.Plan.SaveEntry(r.Context(), &entry)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routePlanEntries handles /api/plan/entries/{id}.
func (s *Server) routePlanEntries(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/plan/entries/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Plan entry id is required")
		return
	}
	userID := common.ResolveUserID(r.Context())

	switch r.Method {
	case http.MethodPut:
		var entry models.PlanEntry
		if !DecodeJSON(w, r, &entry) {
			return
		}
		entry.ID = id
		entry.UserID = userID
		updated, err := s.app.Plan.SaveEntry(r.Context(), &entry)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Plan.DeleteEntry(r.Context(), userID, id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}
