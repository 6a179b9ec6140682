// Package stock contiene la aritmética pura de vencimientos (servicio de dominio).
// La ventana de aviso es [0, warningDays] días hasta el vencimiento: un lote
// entra en aviso el día en que faltan warningDays días y sale al vencer.
package stock

import "time"

// DaysUntil devuelve los días enteros entre hoy y la fecha de vencimiento,
// comparando solo la parte de fecha (la hora del día no cuenta).
func DaysUntil(expiration, today time.Time) int {
	e := truncateDay(expiration)
	t := truncateDay(today)
	return int(e.Sub(t).Hours() / 24)
}

// Expired indica si el lote ya venció: la fecha de vencimiento es anterior a hoy.
// Sin fecha de vencimiento el lote no vence nunca.
func Expired(expiration *time.Time, today time.Time) bool {
	if expiration == nil {
		return false
	}
	return truncateDay(*expiration).Before(truncateDay(today))
}

// InWarningWindow indica si el lote debe marcarse en aviso: tiene fecha de
// vencimiento y umbral definidos, y los días restantes caen en [0, warningDays].
func InWarningWindow(expiration *time.Time, warningDays *int, today time.Time) bool {
	if expiration == nil || warningDays == nil {
		return false
	}
	daysLeft := DaysUntil(*expiration, today)
	return daysLeft >= 0 && daysLeft <= *warningDays
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
