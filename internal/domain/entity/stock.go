package entity

import "time"

// StockLot representa una partida/lote recibido de un producto: una cantidad
// comprada en un momento dado, con su propia fecha de vencimiento y umbral de
// aviso. Los lotes nunca se borran por la lógica de stock: al agotarse o
// vencer se desactivan.
type StockLot struct {
	ID                    int64 // 0 = aún no persistido
	ProductID             int64
	Quantity              int // unidades restantes en el lote, nunca negativo
	ExpirationDate        *time.Time
	ExpirationWarningDays *int
	IsActive              bool
	IsWarning             bool // derivado; se recalcula, nunca se fija a mano
	AddedDate             time.Time
}
