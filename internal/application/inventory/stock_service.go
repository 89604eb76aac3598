package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/shared"
)

// StockService handles stock queries and record configuration.
// Quantity changes are out of its reach; those belong to StockReconciler.
type StockService struct {
	recordRepo   inventory.StockRecordRepository
	movementRepo inventory.StockMovementRepository
}

// NewStockService creates a new StockService
func NewStockService(recordRepo inventory.StockRecordRepository, movementRepo inventory.StockMovementRepository) *StockService {
	return &StockService{
		recordRepo:   recordRepo,
		movementRepo: movementRepo,
	}
}

// GetRecord returns one stock record by product and location
func (s *StockService) GetRecord(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (*StockRecordResponse, error) {
	record, err := s.recordRepo.FindByProductAndLocation(ctx, productID, location)
	if err != nil {
		return nil, err
	}
	response := ToStockRecordResponse(record)
	return &response, nil
}

// GetOrCreateRecord returns the record for product-location, creating a
// zero-quantity one if none exists yet
func (s *StockService) GetOrCreateRecord(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (*StockRecordResponse, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	record, err := s.recordRepo.GetOrCreate(ctx, productID, location)
	if err != nil {
		return nil, err
	}
	response := ToStockRecordResponse(record)
	return &response, nil
}

// List returns stock records matching the filter
func (s *StockService) List(ctx context.Context, filter StockListFilter) ([]StockRecordResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	var (
		records []inventory.StockRecord
		err     error
	)
	switch {
	case filter.BelowMinimum != nil && *filter.BelowMinimum:
		records, err = s.recordRepo.FindBelowMinimum(ctx, domainFilter)
	case filter.ProductID != nil:
		records, err = s.recordRepo.FindByProduct(ctx, *filter.ProductID, domainFilter)
	case filter.LocationID != nil && filter.LocationKind != "":
		location := inventory.LocationRef{Kind: inventory.LocationKind(filter.LocationKind), ID: *filter.LocationID}
		records, err = s.recordRepo.FindByLocation(ctx, location, domainFilter)
	default:
		records, err = s.recordRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.recordRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockRecordResponse, len(records))
	for i := range records {
		responses[i] = ToStockRecordResponse(&records[i])
	}
	return responses, total, nil
}

// SetThresholds updates the alert thresholds on a record
func (s *StockService) SetThresholds(ctx context.Context, req SetThresholdsRequest) (*StockRecordResponse, error) {
	record, err := s.recordRepo.FindByProductAndLocation(ctx, req.ProductID, req.Location.ToLocationRef())
	if err != nil {
		return nil, err
	}

	if err := record.SetThresholds(req.MinQuantity, req.MaxQuantity); err != nil {
		return nil, err
	}
	if err := s.recordRepo.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}

	response := ToStockRecordResponse(record)
	return &response, nil
}

// AssignSupplier sets the preferred restock supplier on a record
func (s *StockService) AssignSupplier(ctx context.Context, productID uuid.UUID, location inventory.LocationRef, supplierID uuid.UUID) (*StockRecordResponse, error) {
	record, err := s.recordRepo.FindByProductAndLocation(ctx, productID, location)
	if err != nil {
		return nil, err
	}

	if err := record.AssignSupplier(supplierID); err != nil {
		return nil, err
	}
	if err := s.recordRepo.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}

	response := ToStockRecordResponse(record)
	return &response, nil
}

// MovementHistory returns the movement ledger for one record, oldest first
func (s *StockService) MovementHistory(ctx context.Context, productID uuid.UUID, location inventory.LocationRef, filter MovementListFilter) ([]MovementResponse, error) {
	record, err := s.recordRepo.FindByProductAndLocation(ctx, productID, location)
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.FindByStockRecord(ctx, record.ID, toMovementFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}

// MovementHistoryByProduct returns movements for a product across locations
func (s *StockService) MovementHistoryByProduct(ctx context.Context, productID uuid.UUID, filter MovementListFilter) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindByProduct(ctx, productID, toMovementFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}

// CheckAvailability reports whether the record can fulfill the quantity
func (s *StockService) CheckAvailability(ctx context.Context, productID uuid.UUID, location inventory.LocationRef, quantity decimal.Decimal) (bool, decimal.Decimal, error) {
	record, err := s.recordRepo.FindByProductAndLocation(ctx, productID, location)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, decimal.Zero, nil
		}
		return false, decimal.Zero, err
	}
	return record.CanFulfill(quantity), record.Quantity, nil
}

// TotalQuantityByProduct sums on-hand stock for a product across locations
func (s *StockService) TotalQuantityByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	return s.recordRepo.SumQuantityByProduct(ctx, productID)
}

func toDomainFilter(filter StockListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	return f
}

func toMovementFilter(filter MovementListFilter) inventory.MovementFilter {
	f := inventory.MovementFilter{Filter: shared.DefaultFilter()}
	f.OrderBy = "occurred_at"
	f.OrderDir = "asc"
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.SourceType != "" {
		source := inventory.MovementSource(filter.SourceType)
		f.SourceType = &source
	}
	f.UserID = filter.UserID
	f.From = filter.From
	f.To = filter.To
	return f
}
