package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name             string                      `gorm:"column:name;size:100;not null"`
	Description      string                      `gorm:"column:description;type:text;not null"`
	CategoryID       uint                        `gorm:"column:category_id;not null;index"`
	Category         Category                    `gorm:"foreignKey:CategoryID"`
	Images           datatypes.JSONSlice[string] `gorm:"column:images"`
	Price            float64                     `gorm:"column:price;not null;index"`
	OriginalPrice    float64                     `gorm:"column:original_price;not null"`
	Size             string                      `gorm:"column:size;size:16;not null;index"`
	Color            string                      `gorm:"column:color;size:50;not null"`
	Brand            string                      `gorm:"column:brand;size:100"`
	Material         string                      `gorm:"column:material;size:100"`
	Condition        string                      `gorm:"column:condition;size:16;default:Good;not null"`
	RentalDuration   int                         `gorm:"column:rental_duration;default:1;not null"`
	IsAvailable      bool                        `gorm:"column:is_available;not null;index"`
	IsFeatured       bool                        `gorm:"column:is_featured;default:false;not null;index"`
	Tags             datatypes.JSONSlice[string] `gorm:"column:tags"`
	Specifications   datatypes.JSONMap           `gorm:"column:specifications"`
	CareInstructions string                      `gorm:"column:care_instructions;size:1000"`
	Slug             string                      `gorm:"column:slug;size:140;uniqueIndex;not null"`
	Views            int                         `gorm:"column:views;default:0;not null"`
	Rating           float64                     `gorm:"column:rating;default:0;not null"`
	NumReviews       int                         `gorm:"column:num_reviews;default:0;not null"`
}
