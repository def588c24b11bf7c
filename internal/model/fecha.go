package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const layoutFecha = "2006-01-02"

// Fecha is a calendar date without time of day, stored as DATE / TEXT "YYYY-MM-DD".
type Fecha struct{ time.Time }

// NuevaFecha truncates t to its calendar date in t's location.
func NuevaFecha(t time.Time) Fecha {
	y, m, d := t.Date()
	return Fecha{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseFecha parses a "YYYY-MM-DD" string.
func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse(layoutFecha, s)
	if err != nil {
		return Fecha{}, fmt.Errorf("fecha invalida %q: %w", s, err)
	}
	return Fecha{t}, nil
}

func (f Fecha) String() string { return f.Format(layoutFecha) }

func (f Fecha) Value() (driver.Value, error) { return f.Format(layoutFecha), nil }

func (f *Fecha) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*f = NuevaFecha(v)
		return nil
	case string:
		return f.scanTexto(v)
	case []byte:
		return f.scanTexto(string(v))
	default:
		return fmt.Errorf("model.Fecha: tipo no soportado %T", src)
	}
}

// scanTexto accepts the drivers' textual dates, which may carry a time
// suffix ("2024-03-01T00:00:00Z" from SQLite); only the date part is kept.
func (f *Fecha) scanTexto(s string) error {
	if len(s) > len(layoutFecha) {
		s = s[:len(layoutFecha)]
	}
	return f.parse(s)
}

func (f *Fecha) parse(s string) error {
	p, err := ParseFecha(s)
	if err != nil {
		return err
	}
	*f = p
	return nil
}

func (f Fecha) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }

func (f *Fecha) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return f.parse(s)
}
