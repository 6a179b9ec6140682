package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFinalPrice_DescuentoPorcentual(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount string
		want     string
	}{
		{"sin descuento", "1500", "0", "1500"},
		{"diez por ciento", "1500", "10", "1350"},
		{"redondeo a dos decimales", "9.99", "15", "8.49"},
		{"cien por ciento", "1200", "100", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{
				Price:    decimal.RequireFromString(tc.price),
				Discount: decimal.RequireFromString(tc.discount),
			}
			assert.True(t, p.FinalPrice().Equal(decimal.RequireFromString(tc.want)),
				"FinalPrice = %s, esperado %s", p.FinalPrice(), tc.want)
		})
	}
}

func TestValidDetails_PayloadSegunTipo(t *testing.T) {
	food := &FoodDetails{FoodType: FoodCake, Weight: decimal.NewFromInt(500)}
	drink := &DrinkDetails{}

	cases := []struct {
		name string
		p    Product
		want bool
	}{
		{"comida con payload de comida", Product{Type: ProductFood, Food: food}, true},
		{"comida sin payload", Product{Type: ProductFood}, false},
		{"comida con payload de bebida", Product{Type: ProductFood, Drink: drink}, false},
		{"dos payloads a la vez", Product{Type: ProductFood, Food: food, Drink: drink}, false},
		{"bebida con payload de bebida", Product{Type: ProductDrink, Drink: drink}, true},
		{"accesorio con payload de accesorio", Product{Type: ProductAccessory, Accessory: &AccessoryDetails{Material: "cartón"}}, true},
		{"tipo desconocido", Product{Type: "Toy", Food: food}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.ValidDetails())
		})
	}
}

func TestPerishable_SoloComidaPerecedera(t *testing.T) {
	perishable := Product{Type: ProductFood, Food: &FoodDetails{FoodType: FoodPastry, IsPerishable: true}}
	dryGoods := Product{Type: ProductFood, Food: &FoodDetails{FoodType: FoodSweet, IsPerishable: false}}
	accessory := Product{Type: ProductAccessory, Accessory: &AccessoryDetails{Material: "madera"}}

	assert.True(t, perishable.Perishable())
	assert.False(t, dryGoods.Perishable())
	assert.False(t, accessory.Perishable(), "los accesorios nunca vencen")
}
