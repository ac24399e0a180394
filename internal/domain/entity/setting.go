package entity

import "time"

// Setting par clave/valor de configuración editable en runtime (ej. tasa de impuesto por defecto).
type Setting struct {
	ID        string
	Key       string
	Value     string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
