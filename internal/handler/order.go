package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/dto"
	"github.com/rentmoment/rental-api/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *gin.Context) {
	ctx := requestContext(c, "CreateOrder")
	userID, _ := currentUser(c)

	var req dto.CreateOrderRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	order, err := h.orderService.Create(ctx, userID, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataMessageResponse("Order created successfully", order))
}

// MyOrders lists the caller's orders. The owner term always comes from the
// token; a user parameter in the query string is overwritten.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	ctx := requestContext(c, "MyOrders")
	userID, _ := currentUser(c)

	scopedQuery(c, "user", strconv.FormatUint(uint64(userID), 10))

	var filter dto.MyOrderFilter
	req, ok := listingRequest(c, ctx, &filter, dto.OrderSortable)
	if !ok {
		return
	}

	res, err := h.orderService.List(ctx, req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse("orders", res))
}

func (h *OrderHandler) GetAll(c *gin.Context) {
	ctx := requestContext(c, "ListOrders")

	var filter dto.OrderFilter
	req, ok := listingRequest(c, ctx, &filter, dto.OrderSortable)
	if !ok {
		return
	}

	res, err := h.orderService.List(ctx, req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse("orders", res))
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	ctx := requestContext(c, "GetOrder")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	userID, role := currentUser(c)
	order, err := h.orderService.GetForUser(ctx, id, userID, role == constants.RoleAdmin)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(order))
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	ctx := requestContext(c, "UpdateOrderStatus")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(ctx, id, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataMessageResponse("Order updated successfully", order))
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	ctx := requestContext(c, "CancelOrder")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	userID, _ := currentUser(c)
	order, err := h.orderService.Cancel(ctx, id, userID)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataMessageResponse("Order cancelled successfully", order))
}
