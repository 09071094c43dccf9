package model

import "gorm.io/gorm"

type Merchant struct {
	gorm.Model
	Name         string `gorm:"column:name;size:100;not null;index"`
	MobileNumber string `gorm:"column:mobile_number;size:20"`
	Address      string `gorm:"column:address;size:500"`
}
