package location

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/location"
	"github.com/ordena/backend/internal/domain/shared"
)

// WarehouseService handles warehouse operations
type WarehouseService struct {
	warehouseRepo location.WarehouseRepository
	logger        *zap.Logger
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo location.WarehouseRepository, logger *zap.Logger) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		logger:        logger,
	}
}

// Create registers a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := location.NewWarehouse(req.Name, req.Address, req.TaxID)
	if err != nil {
		return nil, err
	}

	existing, err := s.warehouseRepo.FindByTaxID(ctx, warehouse.TaxID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this tax ID already exists")
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	s.logger.Info("warehouse created",
		zap.String("warehouse_id", warehouse.ID.String()),
		zap.String("name", warehouse.Name),
	)

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, warehouseID uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List retrieves warehouses with pagination
func (s *WarehouseService) List(ctx context.Context, filter SiteListFilter) ([]WarehouseResponse, int64, error) {
	domainFilter := buildSiteFilter(filter)

	warehouses, err := s.warehouseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.warehouseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToWarehouseResponses(warehouses), total, nil
}

// Update updates a warehouse's details
func (s *WarehouseService) Update(ctx context.Context, warehouseID uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	if err := warehouse.Update(req.Name, req.Address); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// BranchService handles branch operations
type BranchService struct {
	branchRepo    location.BranchRepository
	warehouseRepo location.WarehouseRepository
	logger        *zap.Logger
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo location.BranchRepository, warehouseRepo location.WarehouseRepository, logger *zap.Logger) *BranchService {
	return &BranchService{
		branchRepo:    branchRepo,
		warehouseRepo: warehouseRepo,
		logger:        logger,
	}
}

// Create registers a new branch supplied by an existing warehouse
func (s *BranchService) Create(ctx context.Context, req CreateBranchRequest) (*BranchResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	branch, err := location.NewBranch(req.Name, req.Address, req.Description, req.TaxID, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	existing, err := s.branchRepo.FindByTaxID(ctx, branch.TaxID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Branch with this tax ID already exists")
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	s.logger.Info("branch created",
		zap.String("branch_id", branch.ID.String()),
		zap.String("warehouse_id", branch.WarehouseID.String()),
	)

	response := ToBranchResponse(branch)
	return &response, nil
}

// GetByID retrieves a branch by ID
func (s *BranchService) GetByID(ctx context.Context, branchID uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// List retrieves branches with pagination; WarehouseID narrows to one
// warehouse's branches.
func (s *BranchService) List(ctx context.Context, filter SiteListFilter) ([]BranchResponse, int64, error) {
	domainFilter := buildSiteFilter(filter)
	if filter.WarehouseID != "" {
		domainFilter.Filters["warehouse_id"] = filter.WarehouseID
	}

	branches, err := s.branchRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.branchRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBranchResponses(branches), total, nil
}

// Update updates a branch's details
func (s *BranchService) Update(ctx context.Context, branchID uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if err := branch.Update(req.Name, req.Address, req.Description); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// ReassignWarehouse moves a branch to a different supplying warehouse
func (s *BranchService) ReassignWarehouse(ctx context.Context, branchID, warehouseID uuid.UUID) (*BranchResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if err := branch.ReassignWarehouse(warehouseID); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

func buildSiteFilter(filter SiteListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	} else {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
