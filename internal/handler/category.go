package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/dto"
	"github.com/rentmoment/rental-api/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) GetAll(c *gin.Context) {
	ctx := requestContext(c, "ListCategories")

	var filter dto.CategoryFilter
	req, ok := listingRequest(c, ctx, &filter, dto.CategorySortable)
	if !ok {
		return
	}

	res, err := h.categoryService.List(ctx, req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse("categories", res))
}

// Get accepts a numeric id or a slug.
func (h *CategoryHandler) Get(c *gin.Context) {
	ctx := requestContext(c, "GetCategory")

	category, err := h.categoryService.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(category))
}

func (h *CategoryHandler) Create(c *gin.Context) {
	ctx := requestContext(c, "CreateCategory")

	var req dto.CreateCategoryRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	category, err := h.categoryService.Create(ctx, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataMessageResponse("Category created successfully", category))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	ctx := requestContext(c, "UpdateCategory")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	var req dto.UpdateCategoryRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	category, err := h.categoryService.Update(ctx, id, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataMessageResponse("Category updated successfully", category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx := requestContext(c, "DeleteCategory")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	if err := h.categoryService.Delete(ctx, id); err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Category deleted successfully"))
}
