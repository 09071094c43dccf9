package constants

import (
	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/pkg/listing"
)

// Listing Query Parameters
const (
	QueryParamPage   = listing.ParamPage
	QueryParamLimit  = listing.ParamLimit
	QueryParamSearch = "search"
	QueryParamSort   = listing.ParamSort
	QueryParamOrder  = listing.ParamOrder
)

// Default Pagination Values
const (
	DefaultPage  = listing.DefaultPage
	DefaultLimit = listing.DefaultLimit
	MaxLimit     = listing.DefaultMaxLimit
)

// Featured products shown on the storefront
const FeaturedProductsLimit = 8

// ParseListingRequest reads page, limit, sort and the filter fields declared
// by filterStruct from the request query string.
func ParseListingRequest(c *gin.Context, filterStruct any, sortable map[string]string) (listing.Request, []*listing.ValidationFailure, error) {
	return listing.ParseQuery(c.Request.URL.Query(), filterStruct, sortable)
}
