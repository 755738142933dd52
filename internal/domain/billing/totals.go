// Package billing contiene la aritmética pura de facturación: totales,
// numeración y clasificación. Sin dependencias de infraestructura.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Line es una línea de factura para el cálculo de totales.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Totals resultado del cálculo: SubTotal + TaxAmount = TotalAmount.
type Totals struct {
	SubTotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals calcula los totales de una factura a partir de sus líneas y
// de la tasa de impuesto en porcentaje (18 = 18%).
//
//	subTotal    = Σ quantity × unitPrice
//	taxAmount   = subTotal × taxRate / 100
//	totalAmount = subTotal + taxAmount
//
// Se recalcula completo en cada create y cada update (las líneas se
// reemplazan en bloque, nunca incrementalmente). Redondeo a 2 decimales.
func ComputeTotals(lines []Line, taxRate decimal.Decimal) Totals {
	subTotal := decimal.Zero
	for _, l := range lines {
		subTotal = subTotal.Add(LineTotal(l.Quantity, l.UnitPrice))
	}
	taxAmount := subTotal.Mul(taxRate).Div(hundred).Round(2)
	return Totals{
		SubTotal:    subTotal.Round(2),
		TaxAmount:   taxAmount,
		TotalAmount: subTotal.Add(taxAmount).Round(2),
	}
}

// LineTotal calcula el total de una línea (quantity × unitPrice), a 2 decimales.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// FormatInvoiceNumber produce el consecutivo INV-{año}{mes:2}-{secuencia:4},
// ej. FormatInvoiceNumber(2026, time.August, 7) = "INV-202608-0007".
// La secuencia es el conteo de facturas vivas creadas en el mes más uno; la
// unicidad real la garantiza el constraint único de la tabla más el retry
// del caso de uso.
func FormatInvoiceNumber(year int, month time.Month, seq int) string {
	return fmt.Sprintf("INV-%04d%02d-%04d", year, int(month), seq)
}
