package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pasteleria-pos/internal/application/dto"
	"github.com/tu-usuario/pasteleria-pos/internal/domain"
)

// Las validaciones de entrada cortan antes de tocar repositorio alguno, por
// eso alcanza con un caso de uso sin dependencias.

func TestCreateOrder_CarritoVacio(t *testing.T) {
	uc := &OrderUseCase{}
	_, err := uc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		PaymentMethod: "Cash",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_MetodoDePagoInvalido(t *testing.T) {
	uc := &OrderUseCase{}
	_, err := uc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		Items:         []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}},
		PaymentMethod: "Cheque",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_TarjetaSinNumero(t *testing.T) {
	uc := &OrderUseCase{}
	_, err := uc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		Items:         []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}},
		PaymentMethod: "Card",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaskCard_SoloUltimosCuatroVisibles(t *testing.T) {
	full := "4111222233334444"
	masked := maskCard(&full)
	require.NotNil(t, masked)
	assert.Equal(t, "**** **** **** 4444", *masked)
}

func TestMaskCard_Nil(t *testing.T) {
	assert.Nil(t, maskCard(nil))
}
