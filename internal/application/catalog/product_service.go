package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/catalog"
	"github.com/ordena/backend/internal/domain/shared"
)

// ProductService handles product catalog operations. Products are never
// deleted: retiring a product deactivates it, and creating a product under a
// retired code revives the old row so its movement history stays attached.
type ProductService struct {
	productRepo    catalog.ProductRepository
	brandRepo      catalog.BrandRepository
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	brandRepo catalog.BrandRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product. If the internal code belongs to a deactivated
// product, that product is revived and updated instead of creating a second
// row under the same code.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.InternalCode))

	exists, err := s.productRepo.ExistsActiveByInternalCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An active product already holds this internal code")
	}

	if err := s.validateRefs(ctx, req.BrandID, req.CategoryID); err != nil {
		return nil, err
	}

	retired, err := s.productRepo.FindInactiveByInternalCode(ctx, code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if retired != nil {
		return s.revive(ctx, retired, req)
	}

	product, err := catalog.NewProduct(code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.applyAttributes(product, req); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) revive(ctx context.Context, product *catalog.Product, req CreateProductRequest) (*ProductResponse, error) {
	if err := product.Reactivate(); err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.applyAttributes(product, req); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	s.logger.Info("revived retired product",
		zap.String("product_id", product.ID.String()),
		zap.String("internal_code", product.InternalCode),
	)

	response := ToProductResponse(product)
	response.Revived = true
	return &response, nil
}

func (s *ProductService) applyAttributes(product *catalog.Product, req CreateProductRequest) error {
	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return err
		}
	}
	product.SetBrand(req.BrandID)
	product.SetCategory(req.CategoryID)
	if req.WarehouseID != nil {
		if err := product.AssignWarehouse(*req.WarehouseID); err != nil {
			return err
		}
	}
	if req.BranchID != nil {
		if err := product.AssignBranch(*req.BranchID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProductService) validateRefs(ctx context.Context, brandID, categoryID *uuid.UUID) error {
	if brandID != nil {
		if _, err := s.brandRepo.FindByID(ctx, *brandID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_BRAND", "Brand not found")
			}
			return err
		}
	}
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return err
		}
	}
	return nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByInternalCode retrieves the active product holding the code
func (s *ProductService) GetByInternalCode(ctx context.Context, internalCode string) (*ProductResponse, error) {
	product, err := s.productRepo.FindActiveByInternalCode(ctx, strings.ToUpper(strings.TrimSpace(internalCode)))
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	var (
		products []catalog.Product
		err      error
	)
	if filter.ActiveOnly {
		products, err = s.productRepo.FindActive(ctx, domainFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update updates a product's mutable attributes
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.validateRefs(ctx, req.BrandID, req.CategoryID); err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	product.SetBrand(req.BrandID)
	product.SetCategory(req.CategoryID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate retires a product. The row and its movement history remain.
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Reactivate brings a retired product back, failing if its code was retaken
func (s *ProductService) Reactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	taken, err := s.productRepo.ExistsActiveByInternalCode(ctx, product.InternalCode)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An active product already holds this internal code")
	}

	if err := product.Reactivate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish product events",
				zap.String("product_id", product.ID.String()),
				zap.Error(err),
			)
		}
	}
	product.ClearDomainEvents()
}
