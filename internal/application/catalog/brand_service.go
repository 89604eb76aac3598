package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/catalog"
	"github.com/ordena/backend/internal/domain/shared"
)

// BrandService handles brand operations
type BrandService struct {
	brandRepo catalog.BrandRepository
}

// NewBrandService creates a new BrandService
func NewBrandService(brandRepo catalog.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// Create creates a new brand
func (s *BrandService) Create(ctx context.Context, req BrandRequest) (*BrandResponse, error) {
	if existing, err := s.brandRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A brand with this name already exists")
	}

	brand, err := catalog.NewBrand(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// GetByID retrieves a brand by ID
func (s *BrandService) GetByID(ctx context.Context, id uuid.UUID) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}

// List retrieves brands with pagination
func (s *BrandService) List(ctx context.Context, filter shared.Filter) ([]BrandResponse, int64, error) {
	brands, err := s.brandRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.brandRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BrandResponse, len(brands))
	for i := range brands {
		responses[i] = ToBrandResponse(&brands[i])
	}
	return responses, total, nil
}

// Update updates a brand
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req BrandRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := brand.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// Delete removes a brand. Products keep a dangling brand reference cleared by
// the repository implementation.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.brandRepo.Delete(ctx, id)
}
