package model

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `gorm:"column:name;size:50;uniqueIndex;not null"`
	Description string `gorm:"column:description;size:500"`
	Image       string `gorm:"column:image"`
	Slug        string `gorm:"column:slug;size:80;uniqueIndex;not null"`
	IsActive    bool   `gorm:"column:is_active;not null;index"`
	SortOrder   int    `gorm:"column:sort_order;default:0;not null"`
}
