package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/app"
	"github.com/drivebay/drivebay/internal/domain"
)

// ─── Listing Handlers ───────────────────────────────────────────────────────

type createListingRequest struct {
	CarID       uuid.UUID    `json:"car_id"`
	AskingPrice domain.Money `json:"asking_price"`
	Description string       `json:"description"`
}

// POST /api/listings
func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Marketplace.Create(r.Context(), req.CarID, req.AskingPrice, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GET /api/listings
func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Marketplace.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// GET /api/listings/{id}
func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Marketplace.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type updateListingRequest struct {
	AskingPrice domain.Money `json:"asking_price"`
	Description string       `json:"description"`
}

// PUT /api/listings/{id}
func (s *Server) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req updateListingRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Marketplace.Update(r.Context(), id, req.AskingPrice, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /api/listings/{id}/sold
func (s *Server) handleListingSold(w http.ResponseWriter, r *http.Request) {
	s.handleListingTransition(w, r, s.svc.Marketplace.MarkAsSold)
}

// POST /api/listings/{id}/archive
func (s *Server) handleListingArchive(w http.ResponseWriter, r *http.Request) {
	s.handleListingTransition(w, r, s.svc.Marketplace.Archive)
}

// POST /api/listings/{id}/activate
func (s *Server) handleListingActivate(w http.ResponseWriter, r *http.Request) {
	s.handleListingTransition(w, r, s.svc.Marketplace.Activate)
}

func (s *Server) handleListingTransition(
	w http.ResponseWriter,
	r *http.Request,
	transition func(ctx context.Context, id uuid.UUID) (app.ListingView, error),
) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := transition(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GET /api/listings/{id}/payments
func (s *Server) handleListListingPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	views, err := s.svc.Payments.ListByListing(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}
