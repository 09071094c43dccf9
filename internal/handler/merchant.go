package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/dto"
	"github.com/rentmoment/rental-api/internal/service"
)

type MerchantHandler struct {
	merchantService *service.MerchantService
}

func NewMerchantHandler(merchantService *service.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

func (h *MerchantHandler) GetAll(c *gin.Context) {
	ctx := requestContext(c, "ListMerchants")

	var filter dto.MerchantFilter
	req, ok := listingRequest(c, ctx, &filter, dto.MerchantSortable)
	if !ok {
		return
	}

	res, err := h.merchantService.List(ctx, req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse("merchants", res))
}

func (h *MerchantHandler) GetByID(c *gin.Context) {
	ctx := requestContext(c, "GetMerchant")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	merchant, err := h.merchantService.GetByID(ctx, id)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(merchant))
}

func (h *MerchantHandler) Create(c *gin.Context) {
	ctx := requestContext(c, "CreateMerchant")

	var req dto.CreateMerchantRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	merchant, err := h.merchantService.Create(ctx, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataMessageResponse("Merchant created successfully", merchant))
}

func (h *MerchantHandler) Update(c *gin.Context) {
	ctx := requestContext(c, "UpdateMerchant")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	var req dto.UpdateMerchantRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	merchant, err := h.merchantService.Update(ctx, id, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataMessageResponse("Merchant updated successfully", merchant))
}

func (h *MerchantHandler) Delete(c *gin.Context) {
	ctx := requestContext(c, "DeleteMerchant")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	if err := h.merchantService.Delete(ctx, id); err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Merchant deleted successfully"))
}
