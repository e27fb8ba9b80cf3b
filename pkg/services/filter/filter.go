package filter

import (
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
)

// Rows returns the rows of table whose timestamp falls within period, in
// input order. The input slice is not modified. An invalid period (start
// after end) yields an empty result.
func Rows[T any](table []T, period domain.Period, timestamp func(T) time.Time) []T {
	matched := make([]T, 0)
	if !period.Valid() {
		return matched
	}

	for _, row := range table {
		if period.Contains(timestamp(row)) {
			matched = append(matched, row)
		}
	}
	return matched
}

func Orders(orders []domain.Order, period domain.Period) []domain.Order {
	return Rows(orders, period, func(o domain.Order) time.Time { return o.PurchasedAt })
}

func Payments(payments []domain.Payment, period domain.Period) []domain.Payment {
	return Rows(payments, period, func(p domain.Payment) time.Time { return p.PurchasedAt })
}
