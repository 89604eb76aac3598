package location

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/location"
)

// CreateWarehouseRequest is the request to register a warehouse
type CreateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"required,max=255"`
	TaxID   string `json:"tax_id" binding:"required,max=20"`
}

// UpdateWarehouseRequest is the request to update a warehouse
type UpdateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"required,max=255"`
}

// WarehouseResponse is the API representation of a warehouse
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	TaxID     string    `json:"tax_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBranchRequest is the request to register a branch
type CreateBranchRequest struct {
	Name        string    `json:"name" binding:"required,max=100"`
	Address     string    `json:"address" binding:"required,max=255"`
	Description string    `json:"description"`
	TaxID       string    `json:"tax_id" binding:"required,max=20"`
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
}

// UpdateBranchRequest is the request to update a branch
type UpdateBranchRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Address     string `json:"address" binding:"required,max=255"`
	Description string `json:"description"`
}

// BranchResponse is the API representation of a branch
type BranchResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	TaxID       string    `json:"tax_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SiteListFilter holds warehouse/branch list parameters
type SiteListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search      string `form:"search"`
	WarehouseID string `form:"warehouse_id" binding:"omitempty,uuid"`
}

// ToWarehouseResponse converts a warehouse entity to a response
func ToWarehouseResponse(w *location.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		TaxID:     w.TaxID,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToWarehouseResponses converts a slice of warehouses
func ToWarehouseResponses(warehouses []location.Warehouse) []WarehouseResponse {
	responses := make([]WarehouseResponse, len(warehouses))
	for i := range warehouses {
		responses[i] = ToWarehouseResponse(&warehouses[i])
	}
	return responses
}

// ToBranchResponse converts a branch entity to a response
func ToBranchResponse(b *location.Branch) BranchResponse {
	return BranchResponse{
		ID:          b.ID,
		Name:        b.Name,
		Address:     b.Address,
		Description: b.Description,
		TaxID:       b.TaxID,
		WarehouseID: b.WarehouseID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBranchResponses converts a slice of branches
func ToBranchResponses(branches []location.Branch) []BranchResponse {
	responses := make([]BranchResponse, len(branches))
	for i := range branches {
		responses[i] = ToBranchResponse(&branches[i])
	}
	return responses
}
