package dto

import "time"

type CreateMerchantRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	MobileNumber string `json:"mobileNumber" binding:"omitempty,numeric,min=7,max=15"`
	Address      string `json:"address" binding:"omitempty,max=500"`
}

// UpdateMerchantRequest is a partial update; nil fields are left unchanged.
type UpdateMerchantRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=100"`
	MobileNumber *string `json:"mobileNumber" binding:"omitempty,numeric,min=7,max=15"`
	Address      *string `json:"address" binding:"omitempty,max=500"`
}

type MerchantResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobileNumber,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MerchantFilter: search matches name or address.
type MerchantFilter struct {
	Search string `query:"search" column:"name,address" match:"search"`
}

var MerchantSortable = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
}
