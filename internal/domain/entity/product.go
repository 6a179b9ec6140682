package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto del catálogo.
const (
	ProductFood      = "Food"
	ProductDrink     = "Drink"
	ProductAccessory = "Accessory"
)

// Subtipos de comida.
const (
	FoodCake   = "Cake"
	FoodPastry = "Pastry"
	FoodSweet  = "Sweet"
	FoodBakery = "Bakery"
)

// FoodDetails payload específico de productos de comida.
type FoodDetails struct {
	FoodType     string          `json:"food_type"`
	Weight       decimal.Decimal `json:"weight"` // gramos
	IsPerishable bool            `json:"is_perishable"`
	Calories     *int            `json:"calories,omitempty"`
}

// DrinkDetails payload específico de bebidas.
type DrinkDetails struct {
	Volume      *decimal.Decimal `json:"volume,omitempty"` // mililitros
	IsAlcoholic bool             `json:"is_alcoholic"`
}

// AccessoryDetails payload específico de accesorios (velas, cajas, adornos).
type AccessoryDetails struct {
	Material   string  `json:"material"`
	Dimensions *string `json:"dimensions,omitempty"`
	IsReusable bool    `json:"is_reusable"`
}

// Product representa un artículo del catálogo como variante etiquetada:
// base común + payload según Type. Exactamente uno de Food/Drink/Accessory
// está poblado, acorde con Type.
type Product struct {
	ID          int64
	Type        string
	Name        string
	Description string
	Price       decimal.Decimal
	Discount    decimal.Decimal // porcentaje 0-100
	IsAvailable bool
	IsFeatured  bool
	CreatedDate time.Time
	UpdatedDate *time.Time

	Food      *FoodDetails
	Drink     *DrinkDetails
	Accessory *AccessoryDetails
}

// FinalPrice devuelve el precio con el descuento porcentual aplicado.
func (p *Product) FinalPrice() decimal.Decimal {
	if p.Discount.IsZero() {
		return p.Price
	}
	factor := decimal.NewFromInt(100).Sub(p.Discount).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(2)
}

// ValidDetails verifica que el payload poblado corresponda con Type.
func (p *Product) ValidDetails() bool {
	switch p.Type {
	case ProductFood:
		return p.Food != nil && p.Drink == nil && p.Accessory == nil
	case ProductDrink:
		return p.Drink != nil && p.Food == nil && p.Accessory == nil
	case ProductAccessory:
		return p.Accessory != nil && p.Food == nil && p.Drink == nil
	}
	return false
}

// Perishable indica si el producto vence (solo comida marcada como perecedera).
func (p *Product) Perishable() bool {
	return p.Type == ProductFood && p.Food != nil && p.Food.IsPerishable
}
