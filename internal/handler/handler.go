package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/internal/constants"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	ctxutil "github.com/rentmoment/rental-api/pkg/context"
	"github.com/rentmoment/rental-api/pkg/listing"
	"github.com/rentmoment/rental-api/pkg/logger"
	"github.com/rentmoment/rental-api/pkg/validation"
)

// requestContext builds the logging context for a handler from the values
// the middleware stored on the gin context.
func requestContext(c *gin.Context, function string) context.Context {
	userID, role := currentUser(c)
	return ctxutil.NewContextWithRequest(c.Request.Context(), ctxutil.RequestInfo{
		RequestID: c.GetString(constants.GinKeyRequestID),
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		UserID:    userID,
		UserRole:  role,
	}, "handler", function)
}

// currentUser returns the authenticated caller, or zero values on public routes.
func currentUser(c *gin.Context) (uint, string) {
	return c.GetUint(constants.GinKeyUserID), c.GetString(constants.GinKeyUserRole)
}

func parseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

// bindJSON decodes and validates the body into req. On failure it has
// already written the 400 response.
func bindJSON(c *gin.Context, ctx context.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		messages := validation.Messages(err)
		logger.WarnWithContext(ctx, "Invalid request body").
			Any("errors", messages).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgValidationFailed, messages))
		return false
	}
	return true
}

// respondError writes err with the status of its domain code. Wrapped
// causes are included as details only outside release mode.
func respondError(c *gin.Context, ctx context.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	message := apperrors.GetErrorMessage(err)
	if !apperrors.IsDomainError(err) {
		message = constants.MsgInternalError
	}

	var details any
	if status >= http.StatusInternalServerError {
		logger.ErrorWithContext(ctx, "Request failed").
			StatusCode(status).
			Err(err).
			Log()
		if gin.Mode() != gin.ReleaseMode {
			details = err.Error()
		}
	} else {
		logger.InfoWithContext(ctx, "Request rejected").
			StatusCode(status).
			Err(err).
			Log()
	}

	c.JSON(status, constants.BuildErrorResponse(message, details))
}

// listingRequest parses the query string against filter and sortable.
// Malformed optional terms are logged and ignored; a bad required term
// writes a 400 and returns false.
func listingRequest(c *gin.Context, ctx context.Context, filter any, sortable map[string]string) (listing.Request, bool) {
	req, warnings, err := constants.ParseListingRequest(c, filter, sortable)
	for _, w := range warnings {
		logger.WarnWithContext(ctx, "Ignoring listing parameter").
			String("field", w.Field).
			String("value", w.Value).
			String("reason", w.Reason).
			Log()
	}
	if err != nil {
		respondError(c, ctx, apperrors.FromListing(err))
		return listing.Request{}, false
	}
	return req, true
}

// scopedQuery overrides key in a copy of the request query.
func scopedQuery(c *gin.Context, key, value string) {
	values := c.Request.URL.Query()
	values.Set(key, value)
	u := *c.Request.URL
	u.RawQuery = values.Encode()
	c.Request.URL = &u
}
