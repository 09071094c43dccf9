package dto

import "time"

type CreateProductRequest struct {
	Name             string            `json:"name" binding:"required,max=100"`
	Description      string            `json:"description" binding:"required,max=2000"`
	Category         uint              `json:"category" binding:"required"`
	Images           []string          `json:"images" binding:"required,min=1,dive,required"`
	Price            float64           `json:"price" binding:"gte=0"`
	OriginalPrice    float64           `json:"originalPrice" binding:"gte=0"`
	Size             string            `json:"size" binding:"required,oneof=XS S M L XL XXL 'Free Size'"`
	Color            string            `json:"color" binding:"required,max=50"`
	Brand            string            `json:"brand" binding:"omitempty,max=100"`
	Material         string            `json:"material" binding:"omitempty,max=100"`
	Condition        string            `json:"condition" binding:"omitempty,oneof=Excellent 'Very Good' Good Fair"`
	RentalDuration   int               `json:"rentalDuration" binding:"omitempty,gte=1"`
	IsAvailable      *bool             `json:"isAvailable"`
	IsFeatured       bool              `json:"isFeatured"`
	Tags             []string          `json:"tags"`
	Specifications   map[string]string `json:"specifications"`
	CareInstructions string            `json:"careInstructions" binding:"omitempty,max=1000"`
}

// UpdateProductRequest is a partial update; nil fields are left unchanged.
type UpdateProductRequest struct {
	Name             *string           `json:"name" binding:"omitempty,max=100"`
	Description      *string           `json:"description" binding:"omitempty,max=2000"`
	Category         *uint             `json:"category"`
	Images           []string          `json:"images" binding:"omitempty,min=1,dive,required"`
	Price            *float64          `json:"price" binding:"omitempty,gte=0"`
	OriginalPrice    *float64          `json:"originalPrice" binding:"omitempty,gte=0"`
	Size             *string           `json:"size" binding:"omitempty,oneof=XS S M L XL XXL 'Free Size'"`
	Color            *string           `json:"color" binding:"omitempty,max=50"`
	Brand            *string           `json:"brand" binding:"omitempty,max=100"`
	Material         *string           `json:"material" binding:"omitempty,max=100"`
	Condition        *string           `json:"condition" binding:"omitempty,oneof=Excellent 'Very Good' Good Fair"`
	RentalDuration   *int              `json:"rentalDuration" binding:"omitempty,gte=1"`
	IsAvailable      *bool             `json:"isAvailable"`
	IsFeatured       *bool             `json:"isFeatured"`
	Tags             []string          `json:"tags"`
	Specifications   map[string]string `json:"specifications"`
	CareInstructions *string           `json:"careInstructions" binding:"omitempty,max=1000"`
	Rating           *float64          `json:"rating" binding:"omitempty,gte=0,lte=5"`
	NumReviews       *int              `json:"numReviews" binding:"omitempty,gte=0"`
}

type ProductResponse struct {
	ID               uint              `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	CategoryID       uint              `json:"categoryId"`
	Category         *CategorySummary  `json:"category,omitempty"`
	Images           []string          `json:"images"`
	Price            float64           `json:"price"`
	OriginalPrice    float64           `json:"originalPrice"`
	Size             string            `json:"size"`
	Color            string            `json:"color"`
	Brand            string            `json:"brand,omitempty"`
	Material         string            `json:"material,omitempty"`
	Condition        string            `json:"condition"`
	RentalDuration   int               `json:"rentalDuration"`
	IsAvailable      bool              `json:"isAvailable"`
	IsFeatured       bool              `json:"isFeatured"`
	Tags             []string          `json:"tags"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	CareInstructions string            `json:"careInstructions,omitempty"`
	Slug             string            `json:"slug"`
	Views            int               `json:"views"`
	Rating           float64           `json:"rating"`
	NumReviews       int               `json:"numReviews"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ProductFilter is the storefront query of GET /products.
type ProductFilter struct {
	Category    uint    `query:"category" column:"category_id"`
	Size        string  `query:"size" enum:"XS|S|M|L|XL|XXL|Free Size"`
	Condition   string  `query:"condition" enum:"Excellent|Very Good|Good|Fair"`
	Color       string  `query:"color"`
	IsAvailable bool    `query:"isAvailable" column:"is_available"`
	IsFeatured  bool    `query:"isFeatured" column:"is_featured"`
	MinPrice    float64 `query:"minPrice" column:"price" match:"gte"`
	MaxPrice    float64 `query:"maxPrice" column:"price" match:"lte"`
	Search      string  `query:"search" column:"name,description,brand,color" match:"search"`
}

var ProductSortable = map[string]string{
	"price":     "price",
	"createdAt": "created_at",
	"name":      "name",
	"rating":    "rating",
	"views":     "views",
}
