package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/ordena/backend/internal/application/catalog"
	"github.com/ordena/backend/internal/domain/shared"
	"github.com/ordena/backend/internal/interfaces/http/dto"
)

// BrandHandler handles brand lookup endpoints
type BrandHandler struct {
	BaseHandler
	brandService *catalogapp.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService *catalogapp.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// CategoryHandler handles category lookup endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// lookupFilter converts the common list request into a repository filter
func lookupFilter(c *gin.Context) (shared.Filter, int, int, error) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.Filter{}, 0, 0, err
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Search = req.Search
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	return filter, req.Page, req.PageSize, nil
}

// Create registers a new brand
func (h *BrandHandler) Create(c *gin.Context) {
	var req catalogapp.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, brand)
}

// GetByID returns a brand by ID
func (h *BrandHandler) GetByID(c *gin.Context) {
	brandID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	brand, err := h.brandService.GetByID(c.Request.Context(), brandID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, brand)
}

// List returns brands with pagination
func (h *BrandHandler) List(c *gin.Context) {
	filter, page, pageSize, err := lookupFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brands, total, err := h.brandService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, brands, total, page, pageSize)
}

// Update changes a brand's attributes
func (h *BrandHandler) Update(c *gin.Context) {
	brandID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	var req catalogapp.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	brand, err := h.brandService.Update(c.Request.Context(), brandID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, brand)
}

// Delete removes a brand
func (h *BrandHandler) Delete(c *gin.Context) {
	brandID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid brand ID format")
		return
	}

	if err := h.brandService.Delete(c.Request.Context(), brandID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Create registers a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// GetByID returns a category by ID
func (h *CategoryHandler) GetByID(c *gin.Context) {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// List returns categories with pagination
func (h *CategoryHandler) List(c *gin.Context) {
	filter, page, pageSize, err := lookupFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categories, total, err := h.categoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, categories, total, page, pageSize)
}

// Update changes a category's attributes
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req catalogapp.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete removes a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), categoryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
