package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/domain"
)

// ─── Account Handlers ───────────────────────────────────────────────────────

type openAccountRequest struct {
	OwnerName      string       `json:"owner_name"`
	InitialBalance domain.Money `json:"initial_balance"`
}

// POST /api/accounts
func (s *Server) handleOpenAccount(w http.ResponseWriter, r *http.Request) {
	var req openAccountRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Accounts.Open(r.Context(), req.OwnerName, req.InitialBalance)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GET /api/accounts
func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Accounts.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// GET /api/accounts/{id}
func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Accounts.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DELETE /api/accounts/{id}
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.svc.Accounts.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type amountRequest struct {
	Amount      domain.Money `json:"amount"`
	Description string       `json:"description"`
}

// POST /api/accounts/{id}/credit
func (s *Server) handleCredit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Accounts.Credit(r.Context(), id, req.Amount, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /api/accounts/{id}/debit
func (s *Server) handleDebit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Accounts.Debit(r.Context(), id, req.Amount, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type transferRequest struct {
	FromAccountID uuid.UUID    `json:"from_account_id"`
	ToAccountID   uuid.UUID    `json:"to_account_id"`
	Amount        domain.Money `json:"amount"`
}

// POST /api/accounts/transfer
func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	result, err := s.svc.Accounts.Transfer(r.Context(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
