package dto

import "time"

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Image       string `json:"image" binding:"omitempty,max=500"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   int    `json:"sortOrder" binding:"omitempty,gte=0"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=50"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Image       *string `json:"image" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder" binding:"omitempty,gte=0"`
}

type CategoryResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image,omitempty"`
	Slug         string    `json:"slug"`
	IsActive     bool      `json:"isActive"`
	SortOrder    int       `json:"sortOrder"`
	ProductCount *int64    `json:"productCount,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CategorySummary is the category embedded in a product.
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryFilter struct {
	Search   string `query:"search" column:"name,description" match:"search"`
	IsActive bool   `query:"isActive" column:"is_active"`
}

var CategorySortable = map[string]string{
	"sortOrder": "sort_order",
	"name":      "name",
	"createdAt": "created_at",
}
