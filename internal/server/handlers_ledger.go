package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
)

// --- Accounts ---

// handleAccounts handles GET and POST /api/accounts.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		accounts, err := s.app.Ledger.ListAccounts(r.Context(), common.ResolveUserID(r.Context()))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, accounts)

	case http.MethodPost:
		var account models.Account
		if !DecodeJSON(w, r, &account) {
			return
		}
		account.ID = ""
		account.UserID = common.ResolveUserID(r.Context())
		created, err := s.app.Ledger.SaveAccount(r.Context(), &account)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeAccounts handles /api/accounts/{id}.
func (s *Server) routeAccounts(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/accounts/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Account id is required")
		return
	}
	userID := common.ResolveUserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		account, err := s.app.Ledger.GetAccount(r.Context(), userID, id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Account not found")
			return
		}
		WriteJSON(w, http.StatusOK, account)

	case http.MethodPut:
		var account models.Account
		if !DecodeJSON(w, r, &account) {
			return
		}
		account.ID = id
		account.UserID = userID
		updated, err := s.app.Ledger.SaveAccount(r.Context(), &account)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Ledger.DeleteAccount(r.Context(), userID, id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// --- Transactions ---

// transactionQuery parses transaction listing filters.
func transactionQuery(r *http.Request) interfaces.TransactionQuery {
	q := r.URL.Query()
	opts := interfaces.TransactionQuery{
		AccountID:  q.Get("account_id"),
		CategoryID: q.Get("category_id"),
	}
	if v := q.Get("from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			opts.From = parsed
		}
	}
	if v := q.Get("to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			opts.To = parsed
		}
	}
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			opts.Limit = parsed
		}
	}
	return opts
}

// handleTransactions handles GET and POST /api/transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		txs, err := s.app.Ledger.ListTransactions(r.Context(), common.ResolveUserID(r.Context()), transactionQuery(r))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, txs)

	case http.MethodPost:
		var tx models.Transaction
		if !DecodeJSON(w, r, &tx) {
			return
		}
		tx.ID = ""
		tx.UserID = common.ResolveUserID(r.Context())
		created, err := s.app.Ledger.SaveTransaction(r.Context(), &tx)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeTransactions handles /api/transactions/{id}.
func (s *Server) routeTransactions(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/transactions/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Transaction id is required")
		return
	}
	userID := common.ResolveUserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		tx, err := s.app.Ledger.GetTransaction(r.Context(), userID, id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		WriteJSON(w, http.StatusOK, tx)

	case http.MethodPut:
		var tx models.Transaction
		if !DecodeJSON(w, r, &tx) {
			return
		}
		tx.ID = id
		tx.UserID = userID
		updated, err := s.app.Ledger.SaveTransaction(r.Context(), &tx)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Ledger.DeleteTransaction(r.Context(), userID, id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// --- Categories ---

// handleCategories handles GET and POST /api/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := s.app.Ledger.ListCategories(r.Context(), common.ResolveUserID(r.Context()))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var category models.Category
		if !DecodeJSON(w, r, &category) {
			return
		}
		category.ID = ""
		category.UserID = common.ResolveUserID(r.Context())
		created, err := s.app.Ledger.SaveCategory(r.Context(), &category)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeCategories handles /api/categories/{id}.
func (s *Server) routeCategories(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/categories/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Category id is required")
		return
	}
	userID := common.ResolveUserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		category, err := s.app.Ledger.GetCategory(r.Context(), userID, id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Category not found")
			return
		}
		WriteJSON(w, http.StatusOK, category)

	case http.MethodPut:
		var category models.Category
		if !DecodeJSON(w, r, &category) {
			return
		}
		category.ID = id
		category.UserID = userID
		updated, err := s.app.Ledger.SaveCategory(r.Context(), &category)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.Ledger.DeleteCategory(r.Context(), userID, id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
