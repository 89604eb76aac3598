package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/ordena/backend/internal/application/catalog"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
//
//	@Summary		Register a new product
//	@Description	Creates a product; re-registering the internal code of an inactive product revives it
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapp.CreateProductRequest	true	"Product creation request"
//	@Success		201		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/catalog/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID godoc
//
//	@Summary		Get product by ID
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/catalog/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetByInternalCode godoc
//
//	@Summary		Get product by internal code
//	@Tags			products
//	@Produce		json
//	@Param			code	path		string	true	"Internal code"
//	@Success		200		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/catalog/products/code/{code} [get]
func (h *ProductHandler) GetByInternalCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Internal code is required")
		return
	}

	product, err := h.productService.GetByInternalCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List godoc
//
//	@Summary		List products
//	@Tags			products
//	@Produce		json
//	@Param			search		query		string	false	"Search term (name, internal code)"
//	@Param			active_only	query		bool	false	"Only active products"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Success		200			{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/catalog/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Update godoc
//
//	@Summary		Update product attributes
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Product ID"	format(uuid)
//	@Param			request	body		catalogapp.UpdateProductRequest	true	"Product update request"
//	@Success		200		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/catalog/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Deactivate godoc
//
//	@Summary		Deactivate a product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Failure		422	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/catalog/products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.Deactivate(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Reactivate godoc
//
//	@Summary		Reactivate a product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Failure		422	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/catalog/products/{id}/reactivate [post]
func (h *ProductHandler) Reactivate(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.Reactivate(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}
