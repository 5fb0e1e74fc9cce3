package api

import (
	"net/http"

	"github.com/google/uuid"
)

// ─── Payment Handlers ───────────────────────────────────────────────────────

type createPaymentRequest struct {
	ListingID uuid.UUID `json:"listing_id"`
	Currency  string    `json:"currency"`
}

// POST /api/payments
func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Payments.Create(r.Context(), req.ListingID, req.Currency)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GET /api/payments/{id}
func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Payments.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /api/payments/{id}/confirm
func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Payments.Confirm(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /api/payments/{id}/cancel
func (s *Server) handleCancelPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Payments.Cancel(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
