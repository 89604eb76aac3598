package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/partner"
	"github.com/ordena/backend/internal/domain/shared"
)

// SupplierService handles supplier operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.TaxID)
	if err != nil {
		return nil, err
	}

	existing, err := s.supplierRepo.FindByTaxID(ctx, supplier.TaxID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this tax ID already exists")
	}

	if req.ContactName != "" || req.Email != "" || req.Phone != "" || req.Address != "" {
		if err := supplier.Update(supplier.Name, req.ContactName, req.Email, req.Phone, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("tax_id", supplier.TaxID),
	)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with pagination
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
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

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplierResponses(suppliers), total, nil
}

// Update updates a supplier's contact details
func (s *SupplierService) Update(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if err := supplier.Update(req.Name, req.ContactName, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// DeliveryPersonService handles delivery personnel operations
type DeliveryPersonService struct {
	deliveryRepo partner.DeliveryPersonRepository
	logger       *zap.Logger
}

// NewDeliveryPersonService creates a new DeliveryPersonService
func NewDeliveryPersonService(deliveryRepo partner.DeliveryPersonRepository, logger *zap.Logger) *DeliveryPersonService {
	return &DeliveryPersonService{
		deliveryRepo: deliveryRepo,
		logger:       logger,
	}
}

// Create registers new delivery personnel
func (s *DeliveryPersonService) Create(ctx context.Context, req CreateDeliveryPersonRequest) (*DeliveryPersonResponse, error) {
	person, err := partner.NewDeliveryPerson(req.Name, req.Description, req.VehiclePlate)
	if err != nil {
		return nil, err
	}

	existing, err := s.deliveryRepo.FindByVehiclePlate(ctx, person.VehiclePlate)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Delivery person with this vehicle plate already exists")
	}

	if err := s.deliveryRepo.Save(ctx, person); err != nil {
		return nil, err
	}

	s.logger.Info("delivery person created",
		zap.String("delivery_person_id", person.ID.String()),
		zap.String("vehicle_plate", person.VehiclePlate),
	)

	response := ToDeliveryPersonResponse(person)
	return &response, nil
}

// GetByID retrieves delivery personnel by ID
func (s *DeliveryPersonService) GetByID(ctx context.Context, personID uuid.UUID) (*DeliveryPersonResponse, error) {
	person, err := s.deliveryRepo.FindByID(ctx, personID)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryPersonResponse(person)
	return &response, nil
}

// List retrieves delivery personnel with pagination
func (s *DeliveryPersonService) List(ctx context.Context, filter SupplierListFilter) ([]DeliveryPersonResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	domainFilter.Search = filter.Search

	people, err := s.deliveryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.deliveryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDeliveryPersonResponses(people), total, nil
}

// Update updates delivery personnel details
func (s *DeliveryPersonService) Update(ctx context.Context, personID uuid.UUID, req UpdateDeliveryPersonRequest) (*DeliveryPersonResponse, error) {
	person, err := s.deliveryRepo.FindByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	if err := person.Update(req.Name, req.Description); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, person); err != nil {
		return nil, err
	}

	response := ToDeliveryPersonResponse(person)
	return &response, nil
}

// Delete removes delivery personnel
func (s *DeliveryPersonService) Delete(ctx context.Context, personID uuid.UUID) error {
	return s.deliveryRepo.Delete(ctx, personID)
}
