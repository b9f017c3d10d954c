package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain"
)

// Periodos soportados por los agregadores.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Window rango de fechas inclusivo [From, To].
type Window struct {
	From time.Time
	To   time.Time
}

// Contains indica si t cae dentro de la ventana (ambos extremos incluidos).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// ResolvePeriod resuelve la ventana de un periodo respecto a now, en la zona de now.
// Valores desconocidos o vacíos se tratan como month.
func ResolvePeriod(period string, now time.Time) Window {
	loc := now.Location()
	y, m, d := now.Date()
	switch strings.ToLower(strings.TrimSpace(period)) {
	case PeriodWeek:
		today := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return Window{From: today.AddDate(0, 0, -7), To: endOfDay(today)}
	case PeriodYear:
		return Window{
			From: time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
			To:   endOfDay(time.Date(y, time.December, 31, 0, 0, 0, 0, loc)),
		}
	default:
		first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		last := first.AddDate(0, 1, -1)
		return Window{From: first, To: endOfDay(last)}
	}
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// ParseBusinessDate acepta "2006-01-02" o RFC3339 y devuelve solo la fecha (medianoche UTC).
// Vacío devuelve el día de now.
func ParseBusinessDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", raw, domain.ErrInvalidInput)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ContainsDate compara solo año/mes/día de una fecha de negocio contra la ventana.
func (w Window) ContainsDate(date time.Time) bool {
	y, m, d := date.Date()
	local := time.Date(y, m, d, 12, 0, 0, 0, w.From.Location())
	fy, fm, fd := w.From.Date()
	ty, tm, td := w.To.Date()
	from := time.Date(fy, fm, fd, 0, 0, 0, 0, w.From.Location())
	to := time.Date(ty, tm, td, 23, 59, 59, 0, w.To.Location())
	return !local.Before(from) && !local.After(to)
}

// FromDate y ToDate devuelven los extremos como fechas sin hora (para columnas DATE).
func (w Window) FromDate() time.Time { return dateOnly(w.From) }

// ToDate ver FromDate.
func (w Window) ToDate() time.Time { return dateOnly(w.To) }

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
