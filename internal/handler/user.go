package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/dto"
	"github.com/rentmoment/rental-api/internal/service"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{userService: service}
}

func (h *UserHandler) GetAll(c *gin.Context) {
	ctx := requestContext(c, "ListUsers")

	var filter dto.UserFilter
	req, ok := listingRequest(c, ctx, &filter, dto.UserSortable)
	if !ok {
		return
	}

	res, err := h.userService.List(ctx, req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	logger.InfoWithContext(ctx, "Users fetched successfully").
		Int("page", res.CurrentPage).
		Int64("total", res.TotalCount).
		Int("returned_count", len(res.Items)).
		Log()

	c.JSON(http.StatusOK, constants.BuildListResponse("users", res))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := requestContext(c, "GetUser")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	user, err := h.userService.GetByID(ctx, id)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := requestContext(c, "UpdateUser")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	var req dto.AdminUpdateUserRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	user, err := h.userService.AdminUpdate(ctx, id, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataMessageResponse("User updated successfully", user))
}

// Delete removes a user. Admins cannot delete themselves.
func (h *UserHandler) Delete(c *gin.Context) {
	ctx := requestContext(c, "DeleteUser")

	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	callerID, _ := currentUser(c)
	if err := h.userService.DeleteUser(ctx, id, callerID); err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("User removed"))
}
