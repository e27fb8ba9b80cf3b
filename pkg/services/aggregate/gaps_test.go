package aggregate

import (
	"testing"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestFillOrderGaps(t *testing.T) {
	daily := []domain.DailyOrders{
		{Date: day("2024-01-30"), OrderCount: 2, Revenue: 10},
		{Date: day("2024-02-02"), OrderCount: 1, Revenue: 4},
	}

	filled := FillOrderGaps(daily)

	assert.Equal(t, []domain.DailyOrders{
		{Date: day("2024-01-30"), OrderCount: 2, Revenue: 10},
		{Date: day("2024-01-31")},
		{Date: day("2024-02-01")},
		{Date: day("2024-02-02"), OrderCount: 1, Revenue: 4},
	}, filled)
	assert.Len(t, daily, 2, "input must not change")
}

func TestFillCancellationGaps(t *testing.T) {
	assert.Empty(t, FillCancellationGaps(nil))

	filled := FillCancellationGaps([]domain.DailyCancellations{
		{Date: day("2024-01-01"), CancelCount: 1},
		{Date: day("2024-01-03"), CancelCount: 2},
	})

	assert.Equal(t, []domain.DailyCancellations{
		{Date: day("2024-01-01"), CancelCount: 1},
		{Date: day("2024-01-02")},
		{Date: day("2024-01-03"), CancelCount: 2},
	}, filled)
}
