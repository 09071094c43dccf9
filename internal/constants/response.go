package constants

import (
	"github.com/rentmoment/rental-api/pkg/listing"
)

// Standard Response Field Keys
const (
	ResponseFieldSuccess = "success"
	ResponseFieldData    = "data"
	ResponseFieldMessage = "message"
	ResponseFieldErrors  = "errors"
	ResponseFieldError   = "error"

	// Pagination fields
	ResponseFieldTotal       = "total"
	ResponseFieldCurrentPage = "currentPage"
	ResponseFieldTotalPages  = "totalPages"
	ResponseFieldHasNextPage = "hasNextPage"
	ResponseFieldHasPrevPage = "hasPrevPage"
)

// BuildListResponse wraps a listing page under the entity's plural name.
func BuildListResponse[T any](plural string, result *listing.Result[T]) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldData: map[string]any{
			plural:                   result.Items,
			ResponseFieldTotalPages:  result.TotalPages,
			ResponseFieldCurrentPage: result.CurrentPage,
			ResponseFieldTotal:       result.TotalCount,
			ResponseFieldHasNextPage: result.HasNextPage,
			ResponseFieldHasPrevPage: result.HasPrevPage,
		},
	}
}

func BuildDataResponse(data any) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldData:    data,
	}
}

func BuildDataMessageResponse(message string, data any) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldMessage: message,
		ResponseFieldData:    data,
	}
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldMessage: message,
	}
}

// BuildErrorResponse includes details only when they are non-nil. Callers
// decide whether details may leave the process.
func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldSuccess: false,
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldErrors] = details
	}

	return response
}
