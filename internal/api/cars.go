package api

import (
	"net/http"

	"github.com/drivebay/drivebay/internal/domain"
)

// ─── Car Handlers ───────────────────────────────────────────────────────────

type carRequest struct {
	Model string       `json:"model"`
	Year  int          `json:"year"`
	Price domain.Money `json:"price"`
}

// POST /api/cars
func (s *Server) handleCreateCar(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Cars.Create(r.Context(), req.Model, req.Year, req.Price)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GET /api/cars
func (s *Server) handleListCars(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Cars.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// GET /api/cars/{id}
func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Cars.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// PUT /api/cars/{id}
func (s *Server) handleUpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var req carRequest
	if err := decodeBody(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	view, err := s.svc.Cars.Update(r.Context(), id, req.Model, req.Year, req.Price)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DELETE /api/cars/{id}
func (s *Server) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.svc.Cars.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
