package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de una factura.
// Las líneas se reemplazan en bloque al actualizar la factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal // Quantity × UnitPrice
	Position    int             // orden de la línea dentro de la factura
}
