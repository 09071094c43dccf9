package model

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID          uint            `gorm:"column:user_id;not null;index"`
	User            User            `gorm:"foreignKey:UserID"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     float64         `gorm:"column:total_amount;not null"`
	Status          string          `gorm:"column:status;size:16;default:pending;not null;index"`
	PaymentStatus   string          `gorm:"column:payment_status;size:16;default:pending;not null;index"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_"`
	RentalStartDate time.Time       `gorm:"column:rental_start_date;not null"`
	RentalEndDate   time.Time       `gorm:"column:rental_end_date;not null"`
	Notes           string          `gorm:"column:notes;size:500"`
}

// OrderItem snapshots the product name and price at order time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"column:order_id;not null;index"`
	ProductID uint    `gorm:"column:product_id;not null;index"`
	Name      string  `gorm:"column:name;not null"`
	Price     float64 `gorm:"column:price;not null"`
	Quantity  int     `gorm:"column:quantity;default:1;not null"`
	Size      string  `gorm:"column:size;size:16"`
}

type ShippingAddress struct {
	Street  string `gorm:"column:street"`
	City    string `gorm:"column:city"`
	State   string `gorm:"column:state"`
	ZipCode string `gorm:"column:zip_code"`
	Phone   string `gorm:"column:phone"`
}
