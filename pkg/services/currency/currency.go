package currency

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders monetary totals for display.
type Formatter interface {
	Format(amount float64) string
}

type localeFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter builds a formatter for an ISO 4217 code (e.g. BRL) using the
// number conventions of a BCP 47 locale (e.g. pt-BR).
func NewFormatter(code, locale string) (Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	return &localeFormatter{
		unit:    unit,
		printer: message.NewPrinter(tag),
	}, nil
}

func (f *localeFormatter) Format(amount float64) string {
	return f.printer.Sprintf("%v %v", currency.Symbol(f.unit), number.Decimal(amount, number.Scale(2)))
}

// Default formats Brazilian reais with pt-BR conventions.
func Default() Formatter {
	return &localeFormatter{
		unit:    currency.BRL,
		printer: message.NewPrinter(language.BrazilianPortuguese),
	}
}
