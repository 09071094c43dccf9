package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/dto"
	"github.com/rentmoment/rental-api/internal/service"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Register creates an account and returns its first token pair
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := requestContext(c, "Register")

	var req dto.RegisterRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	response, err := h.userService.Register(ctx, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	logger.LogAuth(response.User.Email, "register", true)
	c.JSON(http.StatusCreated, constants.BuildDataMessageResponse("User registered successfully", response))
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := requestContext(c, "Login")

	var req dto.LoginRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	logger.InfoWithContext(ctx, "User login attempt").
		String("email", req.Email).
		Log()

	response, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.LogAuth(req.Email, "login", false)
		respondError(c, ctx, err)
		return
	}

	logger.LogAuth(req.Email, "login", true)
	c.JSON(http.StatusOK, constants.BuildDataMessageResponse("Login successful", response))
}

// RefreshToken handles JWT token refresh using refresh token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := requestContext(c, "RefreshToken")

	var req dto.RefreshTokenRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	logger.InfoWithContext(ctx, "Token refresh attempt").
		Int("token_length", len(req.RefreshToken)).
		Log()

	response, err := h.userService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(response))
}

// Logout revokes every token of the caller
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := requestContext(c, "Logout")
	userID, _ := currentUser(c)

	if err := h.userService.Logout(ctx, userID); err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logout successful"))
}

func (h *AuthHandler) Me(c *gin.Context) {
	ctx := requestContext(c, "Me")
	userID, _ := currentUser(c)

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(user))
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	ctx := requestContext(c, "UpdateProfile")
	userID, _ := currentUser(c)

	var req dto.UpdateProfileRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataMessageResponse("Profile updated successfully", user))
}

// UpdatePassword changes the caller's password. Existing tokens stop working.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	ctx := requestContext(c, "UpdatePassword")
	userID, _ := currentUser(c)

	var req dto.UpdatePasswordRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	if err := h.userService.UpdatePassword(ctx, userID, &req); err != nil {
		respondError(c, ctx, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password updated successfully"))
}
