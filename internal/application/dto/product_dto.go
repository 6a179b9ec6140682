package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FoodDetailsDTO payload de comida.
type FoodDetailsDTO struct {
	FoodType     string          `json:"food_type"`
	Weight       decimal.Decimal `json:"weight"`
	IsPerishable bool            `json:"is_perishable"`
	Calories     *int            `json:"calories,omitempty"`
}

// DrinkDetailsDTO payload de bebida.
type DrinkDetailsDTO struct {
	Volume      *decimal.Decimal `json:"volume,omitempty"`
	IsAlcoholic bool             `json:"is_alcoholic"`
}

// AccessoryDetailsDTO payload de accesorio.
type AccessoryDetailsDTO struct {
	Material   string  `json:"material"`
	Dimensions *string `json:"dimensions,omitempty"`
	IsReusable bool    `json:"is_reusable"`
}

// CreateProductRequest body para POST /api/products. Exactamente uno de
// food/drink/accessory debe venir poblado, acorde con type.
type CreateProductRequest struct {
	Type        string               `json:"type"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       decimal.Decimal      `json:"price"`
	Discount    decimal.Decimal      `json:"discount"`
	IsFeatured  bool                 `json:"is_featured"`
	Food        *FoodDetailsDTO      `json:"food,omitempty"`
	Drink       *DrinkDetailsDTO     `json:"drink,omitempty"`
	Accessory   *AccessoryDetailsDTO `json:"accessory,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil se conservan.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
	IsAvailable *bool            `json:"is_available,omitempty"`
	IsFeatured  *bool            `json:"is_featured,omitempty"`
}

// ProductDTO proyección de catálogo con el total de stock activo.
type ProductDTO struct {
	ID          int64                `json:"id"`
	Type        string               `json:"type"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       decimal.Decimal      `json:"price"`
	Discount    decimal.Decimal      `json:"discount"`
	FinalPrice  decimal.Decimal      `json:"final_price"`
	IsAvailable bool                 `json:"is_available"`
	IsFeatured  bool                 `json:"is_featured"`
	TotalStock  int                  `json:"total_stock"`
	CreatedDate time.Time            `json:"created_date"`
	Food        *FoodDetailsDTO      `json:"food,omitempty"`
	Drink       *DrinkDetailsDTO     `json:"drink,omitempty"`
	Accessory   *AccessoryDetailsDTO `json:"accessory,omitempty"`
}
