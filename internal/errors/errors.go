package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rentmoment/rental-api/pkg/listing"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so wrapped copies compare equal to the
// predefined values.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// WithMessage keeps the code of domainErr but replaces the client message.
func WithMessage(domainErr *DomainError, message string) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: message,
		Err:     domainErr.Err,
	}
}

// Predefined domain errors
var (
	// User errors
	ErrUserNotFound       = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "user already exists with this email")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid email or password")
	ErrAccountInactive    = NewDomainError("ACCOUNT_INACTIVE", "account is deactivated")
	ErrSelfDeletion       = NewDomainError("SELF_DELETION", "users cannot delete themselves")

	// Authentication errors
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "not authorized, no token")
	ErrInvalidToken        = NewDomainError("INVALID_TOKEN", "not authorized, token failed")
	ErrTokenExpired        = NewDomainError("TOKEN_EXPIRED", "token has expired")
	ErrInvalidRefreshToken = NewDomainError("INVALID_REFRESH_TOKEN", "invalid refresh token")
	ErrForbidden           = NewDomainError("FORBIDDEN", "not authorized as admin")

	// Validation errors
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInvalidID         = NewDomainError("INVALID_ID", "invalid id")
	ErrPasswordMismatch  = NewDomainError("PASSWORD_MISMATCH", "new password and confirmation do not match")
	ErrIncorrectPassword = NewDomainError("INCORRECT_PASSWORD", "current password is incorrect")

	// Catalog errors
	ErrMerchantNotFound  = NewDomainError("MERCHANT_NOT_FOUND", "merchant not found")
	ErrCategoryNotFound  = NewDomainError("CATEGORY_NOT_FOUND", "category not found")
	ErrCategoryExists    = NewDomainError("CATEGORY_EXISTS", "category already exists")
	ErrCategoryInUse     = NewDomainError("CATEGORY_IN_USE", "cannot delete category with existing products")
	ErrInvalidCategory   = NewDomainError("INVALID_CATEGORY", "invalid category")
	ErrProductNotFound   = NewDomainError("PRODUCT_NOT_FOUND", "product not found")
	ErrProductSlugExists = NewDomainError("PRODUCT_SLUG_EXISTS", "a product with this name already exists")

	// Order errors
	ErrOrderNotFound      = NewDomainError("ORDER_NOT_FOUND", "order not found")
	ErrProductUnavailable = NewDomainError("PRODUCT_UNAVAILABLE", "product is not available")
	ErrInvalidRentalDates = NewDomainError("INVALID_RENTAL_DATES", "rental end date must be after start date")
	ErrOrderNotCancelable = NewDomainError("ORDER_NOT_CANCELABLE", "only pending orders can be cancelled")

	// Upload errors
	ErrNoFile           = NewDomainError("NO_FILE", "no file uploaded")
	ErrTooManyFiles     = NewDomainError("TOO_MANY_FILES", "too many files")
	ErrFileTooLarge     = NewDomainError("FILE_TOO_LARGE", "file too large")
	ErrFileTypeRejected = NewDomainError("FILE_TYPE_REJECTED", "only image files are allowed")
	ErrFileNotFound     = NewDomainError("FILE_NOT_FOUND", "file not found")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrStorage            = NewDomainError("STORAGE_ERROR", "failed to query storage")
	ErrRequestTimeout     = NewDomainError("REQUEST_TIMEOUT", "request timed out")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// FromListing translates a failure of the listing service into a domain
// error. Storage detail stays in the wrapped error.
func FromListing(err error) error {
	if err == nil {
		return nil
	}

	var vf *listing.ValidationFailure
	if errors.As(err, &vf) {
		return &DomainError{Code: ErrInvalidInput.Code, Message: vf.Field + " " + vf.Reason, Err: err}
	}
	if listing.IsCancellationFailure(err) {
		return WrapError(ErrRequestTimeout, err)
	}
	if listing.IsStorageFailure(err) {
		return WrapError(ErrStorage, err)
	}
	if IsDomainError(err) {
		return err
	}
	return WrapError(ErrInternal, err)
}

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "INVALID_ID", "PASSWORD_MISMATCH", "INVALID_CATEGORY",
		"PRODUCT_UNAVAILABLE", "INVALID_RENTAL_DATES", "NO_FILE", "TOO_MANY_FILES",
		"FILE_TYPE_REJECTED":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "INVALID_TOKEN",
		"TOKEN_EXPIRED", "INVALID_REFRESH_TOKEN", "INCORRECT_PASSWORD", "ACCOUNT_INACTIVE":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN", "SELF_DELETION":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "MERCHANT_NOT_FOUND", "CATEGORY_NOT_FOUND",
		"PRODUCT_NOT_FOUND", "ORDER_NOT_FOUND", "FILE_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS", "CATEGORY_EXISTS", "CATEGORY_IN_USE", "PRODUCT_SLUG_EXISTS",
		"ORDER_NOT_CANCELABLE":
		return http.StatusConflict

	case "FILE_TOO_LARGE":
		return http.StatusRequestEntityTooLarge

	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	case "REQUEST_TIMEOUT":
		return http.StatusGatewayTimeout

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
