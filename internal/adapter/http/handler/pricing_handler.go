package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaskita/kasledger/internal/adapter/http/dto"
	"github.com/kaskita/kasledger/internal/domain"
)

// PricingService defines the behavior needed by PricingHandler.
type PricingService interface {
	GetProduct(ctx context.Context, code string) (*domain.PricingItem, error)
	ListProducts(ctx context.Context) ([]*domain.PricingItem, error)
}

// PricingHandler serves the read-only PPOB price catalog.
type PricingHandler struct {
	pricingUC PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingUC PricingService) *PricingHandler {
	return &PricingHandler{pricingUC: pricingUC}
}

// Get fetches one catalog product by code.
func (h *PricingHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing product code", "")
		return
	}

	item, err := h.pricingUC.GetProduct(r.Context(), code)
	if err != nil {
		writeDomainError(w, "failed to get product", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PricingItemFromDomain(item))
}

// List lists the full catalog.
func (h *PricingHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.pricingUC.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PricingItemsFromDomain(items))
}
