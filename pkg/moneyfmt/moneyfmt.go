// Package moneyfmt formatea montos en pesos dominicanos para mostrar.
// Solo presentación: los cálculos siguen siendo decimal.Decimal.
package moneyfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-DO"))

// DOP formatea un monto como "RD$1,234.56". Siempre dos decimales.
func DOP(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return printer.Sprintf("RD$%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
