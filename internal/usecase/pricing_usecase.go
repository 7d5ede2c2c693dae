package usecase

import (
	"context"

	"github.com/kaskita/kasledger/internal/domain"
)

// PricingUseCase exposes the read-only PPOB price catalog.
type PricingUseCase struct {
	catalog PricingCatalog
}

// NewPricingUseCase creates a new PricingUseCase.
func NewPricingUseCase(catalog PricingCatalog) *PricingUseCase {
	return &PricingUseCase{catalog: catalog}
}

// GetProduct fetches one catalog item by code.
func (uc *PricingUseCase) GetProduct(ctx context.Context, code string) (*domain.PricingItem, error) {
	if code == "" {
		return nil, domain.ErrProductNotFound
	}
	return uc.catalog.Get(ctx, code)
}

// ListProducts lists the full catalog.
func (uc *PricingUseCase) ListProducts(ctx context.Context) ([]*domain.PricingItem, error) {
	return uc.catalog.List(ctx)
}
