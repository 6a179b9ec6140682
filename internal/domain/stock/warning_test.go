package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/pasteleria-pos/internal/domain/stock"
)

var today = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func days(n int) *time.Time {
	d := today.AddDate(0, 0, n)
	return &d
}

func intPtr(n int) *int { return &n }

func TestDaysUntil_IgnoraHoraDelDia(t *testing.T) {
	// Vence mañana a las 00:01; aunque "hoy" sea las 10:30, falta 1 día entero.
	exp := time.Date(2025, 6, 16, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, stock.DaysUntil(exp, today))
}

func TestExpired(t *testing.T) {
	assert.True(t, stock.Expired(days(-1), today), "vencido ayer")
	assert.False(t, stock.Expired(days(0), today), "vence hoy: todavía no está vencido")
	assert.False(t, stock.Expired(days(3), today))
	assert.False(t, stock.Expired(nil, today), "sin fecha no vence nunca")
}

func TestInWarningWindow(t *testing.T) {
	cases := []struct {
		name        string
		expiration  *time.Time
		warningDays *int
		want        bool
	}{
		{"dentro de la ventana", days(3), intPtr(5), true},
		{"justo en el borde", days(5), intPtr(5), true},
		{"vence hoy", days(0), intPtr(5), true},
		{"fuera de la ventana", days(6), intPtr(5), false},
		{"ya vencido: daysLeft negativo", days(-1), intPtr(5), false},
		{"sin fecha de vencimiento", nil, intPtr(5), false},
		{"sin umbral configurado", days(2), nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stock.InWarningWindow(tc.expiration, tc.warningDays, today))
		})
	}
}
