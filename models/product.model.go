package models

import (
	"time"
)

const DefaultProductImage = "📦"

// ProductCategories is the closed set of listing categories.
var ProductCategories = []string{"Books", "Electronics", "Furniture", "Stationery", "Sports", "Clothing"}

// ProductConditions is the closed set of listing conditions.
var ProductConditions = []string{"Like New", "Excellent", "Good", "Fair"}

// Coordinates is an optional lat/lng pair. Nil fields mean "not provided".
type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title         string  `gorm:"size:255;not null" json:"title"`
	Category      string  `gorm:"size:50;index;not null" json:"category"`
	Price         float64 `gorm:"not null" json:"price"`
	OriginalPrice float64 `json:"originalPrice"` // defaults to 1.5x price
	Condition     string  `gorm:"size:20;default:'Good'" json:"condition"`
	Description   string  `gorm:"type:text" json:"description"`
	Location      string  `gorm:"size:255;not null" json:"location"`

	Coordinates Coordinates `gorm:"embedded;embeddedPrefix:coord_" json:"coordinates"`

	// Emoji placeholder or uploaded file URL
	Image string `gorm:"size:255;default:'📦'" json:"image"`

	// Owner plus denormalized seller facts shown on listing cards
	UserID      uint   `gorm:"index;not null" json:"userId"`
	SellerName  string `gorm:"size:100;default:'Anonymous'" json:"seller"`
	SellerEmail string `gorm:"size:100;not null" json:"sellerEmail"`

	Rating     float64 `gorm:"default:0" json:"rating"`
	IsSold     bool    `gorm:"default:false" json:"isSold"`
	IsDelisted bool    `gorm:"default:false" json:"isDelisted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidCategory reports whether category is one of ProductCategories.
func ValidCategory(category string) bool {
	return contains(ProductCategories, category)
}

// ValidCondition reports whether condition is one of ProductConditions.
func ValidCondition(condition string) bool {
	return contains(ProductConditions, condition)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
