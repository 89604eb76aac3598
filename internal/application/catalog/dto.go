package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/catalog"
)

// CreateProductRequest creates or revives a product
type CreateProductRequest struct {
	InternalCode string     `json:"internal_code" binding:"required,max=50"`
	Name         string     `json:"name" binding:"required,max=150"`
	Description  string     `json:"description"`
	BrandID      *uuid.UUID `json:"brand_id"`
	CategoryID   *uuid.UUID `json:"category_id"`
	WarehouseID  *uuid.UUID `json:"warehouse_id"`
	BranchID     *uuid.UUID `json:"branch_id"`
}

// UpdateProductRequest updates mutable product attributes
type UpdateProductRequest struct {
	Name        string     `json:"name" binding:"required,max=150"`
	Description string     `json:"description"`
	BrandID     *uuid.UUID `json:"brand_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID  `json:"id"`
	InternalCode string     `json:"internal_code"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Active       bool       `json:"active"`
	BrandID      *uuid.UUID `json:"brand_id,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	WarehouseID  *uuid.UUID `json:"warehouse_id,omitempty"`
	BranchID     *uuid.UUID `json:"branch_id,omitempty"`
	Revived      bool       `json:"revived,omitempty"` // True when creation reactivated a retired product
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// ProductListFilter represents filter options for product listings
type ProductListFilter struct {
	Search      string `form:"search"`
	ActiveOnly  bool   `form:"active_only"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BrandRequest creates or updates a brand
type BrandRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRequest creates or updates a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           product.ID,
		InternalCode: product.InternalCode,
		Name:         product.Name,
		Description:  product.Description,
		Active:       product.Active,
		BrandID:      product.BrandID,
		CategoryID:   product.CategoryID,
		WarehouseID:  product.WarehouseID,
		BranchID:     product.BranchID,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
		Version:      product.Version,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ToBrandResponse converts a domain brand to its response form
func ToBrandResponse(brand *catalog.Brand) BrandResponse {
	return BrandResponse{
		ID:          brand.ID,
		Name:        brand.Name,
		Description: brand.Description,
		CreatedAt:   brand.CreatedAt,
		UpdatedAt:   brand.UpdatedAt,
	}
}

// ToCategoryResponse converts a domain category to its response form
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
