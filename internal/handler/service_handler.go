package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/internal/repository"
	"github.com/programari/backend/pkg/contract"
)

// ServiceReader is the part of the storage port the service endpoints use.
type ServiceReader interface {
	ListServices(ctx context.Context) ([]model.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*model.Service, error)
}

// ServiceHandler serves the service catalogue.
type ServiceHandler struct {
	store ServiceReader
}

func NewServiceHandler(store ServiceReader) *ServiceHandler {
	return &ServiceHandler{store: store}
}

// List handles GET /api/services.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	ep := contract.API.Services.List
	services, err := h.store.ListServices(r.Context())
	if err != nil {
		writeInternalError(w, r, ep, err)
		return
	}
	if services == nil {
		services = []model.Service{}
	}
	writeJSON(w, ep.SuccessStatus(), services)
}

// Get handles GET /api/services/{slug}.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	ep := contract.API.Services.Get
	svc, err := h.store.GetServiceBySlug(r.Context(), r.PathValue("slug"))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		writeInternalError(w, r, ep, err)
		return
	}
	writeJSON(w, ep.SuccessStatus(), svc)
}
