package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/partner"
)

// CreateSupplierRequest is the request to register a supplier
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	TaxID       string `json:"tax_id" binding:"required,max=20"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email,max=100"`
	Phone       string `json:"phone" binding:"max=30"`
	Address     string `json:"address" binding:"max=255"`
}

// UpdateSupplierRequest is the request to update a supplier
type UpdateSupplierRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email,max=100"`
	Phone       string `json:"phone" binding:"max=30"`
	Address     string `json:"address" binding:"max=255"`
}

// SupplierResponse is the API representation of a supplier
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TaxID       string    `json:"tax_id"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierListFilter holds supplier list parameters
type SupplierListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// ToSupplierResponse converts a supplier entity to a response
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		TaxID:       s.TaxID,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}

// CreateDeliveryPersonRequest is the request to register delivery personnel
type CreateDeliveryPersonRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description"`
	VehiclePlate string `json:"vehicle_plate" binding:"required,max=10"`
}

// UpdateDeliveryPersonRequest is the request to update delivery personnel
type UpdateDeliveryPersonRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// DeliveryPersonResponse is the API representation of delivery personnel
type DeliveryPersonResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	VehiclePlate string    `json:"vehicle_plate"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToDeliveryPersonResponse converts a delivery person entity to a response
func ToDeliveryPersonResponse(d *partner.DeliveryPerson) DeliveryPersonResponse {
	return DeliveryPersonResponse{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		VehiclePlate: d.VehiclePlate,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDeliveryPersonResponses converts a slice of delivery persons
func ToDeliveryPersonResponses(people []partner.DeliveryPerson) []DeliveryPersonResponse {
	responses := make([]DeliveryPersonResponse, len(people))
	for i := range people {
		responses[i] = ToDeliveryPersonResponse(&people[i])
	}
	return responses
}
