package entity

import "time"

// Tipos de modificación de campos de un lote (cambios que no son de cantidad).
const (
	ModificationExpirationDate = "ExpirationDateChange"
	ModificationWarningDays    = "WarningDaysChange"
	ModificationStatus         = "StatusChange"
)

// StockModification es el asiento inmutable de un cambio de campo de un lote:
// fecha de vencimiento, umbral de aviso o estado activo/inactivo. Los valores
// se serializan como texto ("null" cuando el campo estaba sin definir).
type StockModification struct {
	ID               int64
	StockID          int64
	ProductID        int64
	UserID           int64
	OldValue         string
	NewValue         string
	ModificationDate time.Time
	ModificationType string
}
