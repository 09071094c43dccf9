package dto

import "time"

type OrderItemRequest struct {
	Product  uint   `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,gte=1,lte=10"`
	Size     string `json:"size" binding:"omitempty,oneof=XS S M L XL XXL 'Free Size'"`
}

type ShippingAddressRequest struct {
	Street  string `json:"street" binding:"required,max=200"`
	City    string `json:"city" binding:"required,max=100"`
	State   string `json:"state" binding:"required,max=100"`
	ZipCode string `json:"zipCode" binding:"required,max=20"`
	Phone   string `json:"phone" binding:"required,max=20"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" binding:"required"`
	RentalStartDate time.Time              `json:"rentalStartDate" binding:"required"`
	RentalEndDate   time.Time              `json:"rentalEndDate" binding:"required,gtfield=RentalStartDate"`
	Notes           string                 `json:"notes" binding:"omitempty,max=500"`
}

type UpdateOrderStatusRequest struct {
	Status        string `json:"status" binding:"omitempty,oneof=pending confirmed shipped delivered returned cancelled"`
	PaymentStatus string `json:"paymentStatus" binding:"omitempty,oneof=pending paid refunded"`
}

type OrderItemResponse struct {
	Product  uint    `json:"product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
}

type ShippingAddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

type OrderUserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderResponse struct {
	ID              uint                    `json:"id"`
	UserID          uint                    `json:"userId"`
	User            *OrderUserSummary       `json:"user,omitempty"`
	Items           []OrderItemResponse     `json:"items"`
	TotalAmount     float64                 `json:"totalAmount"`
	Status          string                  `json:"status"`
	PaymentStatus   string                  `json:"paymentStatus"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	RentalStartDate time.Time               `json:"rentalStartDate"`
	RentalEndDate   time.Time               `json:"rentalEndDate"`
	Notes           string                  `json:"notes,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// OrderFilter is the admin query of GET /orders.
type OrderFilter struct {
	Status        string `query:"status" enum:"pending|confirmed|shipped|delivered|returned|cancelled"`
	PaymentStatus string `query:"paymentStatus" column:"payment_status" enum:"pending|paid|refunded"`
	User          uint   `query:"user" column:"user_id"`
}

// MyOrderFilter scopes the listing to one owner. The handler fills User from
// the authenticated caller, never from the query string.
type MyOrderFilter struct {
	User   uint   `query:"user" column:"user_id" required:"true"`
	Status string `query:"status" enum:"pending|confirmed|shipped|delivered|returned|cancelled"`
}

var OrderSortable = map[string]string{
	"createdAt":       "created_at",
	"totalAmount":     "total_amount",
	"rentalStartDate": "rental_start_date",
}
