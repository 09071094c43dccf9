package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/dto"
	"github.com/rentmoment/rental-api/internal/service"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetAll serves the storefront listing with its filters and sorting.
func (h *ProductHandler) GetAll(c *gin.Context) {
	ctx := requestContext(c, "ListProducts")

	var filter dto.ProductFilter
	req, ok := listingRequest(c, ctx, &filter, dto.ProductSortable)
	if !ok {
		return
	}

	res, err := h.productService.List(ctx, req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	logger.DebugWithContext(ctx, "Products fetched").
		Int("page", res.CurrentPage).
		Int64("total", res.TotalCount).
		Int("filters", len(req.Filters)).
		Log()

	c.JSON(http.StatusOK, constants.BuildListResponse("products", res))
}

func (h *ProductHandler) Featured(c *gin.Context) {
	ctx := requestContext(c, "FeaturedProducts")

	products, err := h.productService.Featured(ctx)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(products))
}

// Get accepts a numeric id or a slug.
func (h *ProductHandler) Get(c *gin.Context) {
	ctx := requestContext(c, "GetProduct")

	product, err := h.productService.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(product))
}

func (h *ProductHandler) Create(c *gin.Context) {
	ctx := requestContext(c, "CreateProduct")

	var req dto.CreateProductRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	product, err := h.productService.Create(ctx, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataMessageResponse("Product created successfully", product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	ctx := requestContext(c, "UpdateProduct")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	var req dto.UpdateProductRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	product, err := h.productService.Update(ctx, id, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataMessageResponse("Product updated successfully", product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	ctx := requestContext(c, "DeleteProduct")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	if err := h.productService.Delete(ctx, id); err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Product deleted successfully"))
}
