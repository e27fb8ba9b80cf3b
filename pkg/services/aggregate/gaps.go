package aggregate

import (
	"github.com/de-tools/commerce-atlas/pkg/models/domain"
)

// FillOrderGaps returns a copy of daily with a zero row for every calendar
// day missing between the first and last entry. daily must be ascending.
func FillOrderGaps(daily []domain.DailyOrders) []domain.DailyOrders {
	if len(daily) == 0 {
		return make([]domain.DailyOrders, 0)
	}

	filled := make([]domain.DailyOrders, 0, len(daily))
	next := daily[0].Date
	for _, d := range daily {
		for next.Before(d.Date) {
			filled = append(filled, domain.DailyOrders{Date: next})
			next = next.AddDate(0, 0, 1)
		}
		filled = append(filled, d)
		next = d.Date.AddDate(0, 0, 1)
	}
	return filled
}

// FillCancellationGaps is FillOrderGaps for cancellation series.
func FillCancellationGaps(daily []domain.DailyCancellations) []domain.DailyCancellations {
	if len(daily) == 0 {
		return make([]domain.DailyCancellations, 0)
	}

	filled := make([]domain.DailyCancellations, 0, len(daily))
	next := daily[0].Date
	for _, d := range daily {
		for next.Before(d.Date) {
			filled = append(filled, domain.DailyCancellations{Date: next})
			next = next.AddDate(0, 0, 1)
		}
		filled = append(filled, d)
		next = d.Date.AddDate(0, 0, 1)
	}
	return filled
}
