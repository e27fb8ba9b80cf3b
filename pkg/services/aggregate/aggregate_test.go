package aggregate

import (
	"testing"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func day(value string) time.Time {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDailyOrders(t *testing.T) {
	t.Run("groups by purchase day", func(t *testing.T) {
		// Given: three orders on Jan 1st and one on Jan 2nd
		orders := []domain.Order{
			{OrderID: "o1", PurchasedAt: at("2024-01-01 09:00:00"), PaymentValue: 10},
			{OrderID: "o2", PurchasedAt: at("2024-01-01 12:00:00"), PaymentValue: 20},
			{OrderID: "o3", PurchasedAt: at("2024-01-01 23:10:00"), PaymentValue: 30},
			{OrderID: "o4", PurchasedAt: at("2024-01-02 08:00:00"), PaymentValue: 5},
		}

		// When
		daily := DailyOrders(orders)

		// Then
		assert.Equal(t, []domain.DailyOrders{
			{Date: day("2024-01-01"), OrderCount: 3, Revenue: 60},
			{Date: day("2024-01-02"), OrderCount: 1, Revenue: 5},
		}, daily)
	})

	t.Run("repeated order ids count once but every payment row is summed", func(t *testing.T) {
		orders := []domain.Order{
			{OrderID: "o1", PurchasedAt: at("2024-03-01 10:00:00"), PaymentValue: 12.5},
			{OrderID: "o1", PurchasedAt: at("2024-03-01 10:00:00"), PaymentValue: 7.5},
			{OrderID: "o2", PurchasedAt: at("2024-03-01 11:00:00"), PaymentValue: 0.1},
			{OrderID: "o3", PurchasedAt: at("2024-03-01 11:00:00"), PaymentValue: 0.2},
		}

		daily := DailyOrders(orders)

		require.Len(t, daily, 1)
		assert.Equal(t, 3, daily[0].OrderCount)
		assert.Equal(t, 20.3, daily[0].Revenue)
	})

	t.Run("output is ascending even for unsorted input", func(t *testing.T) {
		orders := []domain.Order{
			{OrderID: "o3", PurchasedAt: at("2024-01-03 00:00:00")},
			{OrderID: "o1", PurchasedAt: at("2024-01-01 00:00:00")},
		}

		daily := DailyOrders(orders)

		require.Len(t, daily, 2)
		assert.Equal(t, day("2024-01-01"), daily[0].Date)
		assert.Equal(t, day("2024-01-03"), daily[1].Date)
	})

	t.Run("empty input", func(t *testing.T) {
		daily := DailyOrders(nil)
		assert.NotNil(t, daily)
		assert.Empty(t, daily)
	})
}

func TestDailyOrders_Properties(t *testing.T) {
	orders := []domain.Order{
		{OrderID: "a", PurchasedAt: at("2024-05-01 01:00:00"), PaymentValue: 1},
		{OrderID: "b", PurchasedAt: at("2024-05-01 02:00:00"), PaymentValue: 2},
		{OrderID: "a", PurchasedAt: at("2024-05-01 01:00:00"), PaymentValue: 3},
		{OrderID: "c", PurchasedAt: at("2024-05-03 05:00:00"), PaymentValue: 4},
		{OrderID: "d", PurchasedAt: at("2024-05-07 06:00:00"), PaymentValue: 5},
		{OrderID: "d", PurchasedAt: at("2024-05-07 06:00:00"), PaymentValue: 6},
	}

	daily := DailyOrders(orders)

	days := make(map[string]struct{})
	ids := make(map[string]struct{})
	for _, o := range orders {
		days[o.PurchasedAt.Format(domain.DateLayout)] = struct{}{}
		ids[o.OrderID] = struct{}{}
	}

	total := 0
	for _, d := range daily {
		total += d.OrderCount
	}

	assert.LessOrEqual(t, len(daily), len(days))
	assert.Equal(t, len(ids), total)
	assert.Equal(t, daily, DailyOrders(orders), "aggregation must be idempotent")
}

func TestDailyCancellations(t *testing.T) {
	orders := []domain.Order{
		{OrderID: "o1", Status: "delivered", PurchasedAt: at("2024-01-01 09:00:00")},
		{OrderID: "o2", Status: "canceled", PurchasedAt: at("2024-01-01 10:00:00")},
		{OrderID: "o2", Status: "canceled", PurchasedAt: at("2024-01-01 10:00:00")},
		{OrderID: "o3", Status: "canceled", PurchasedAt: at("2024-01-04 10:00:00")},
		{OrderID: "o4", Status: "shipped", PurchasedAt: at("2024-01-05 10:00:00")},
	}

	cancellations := DailyCancellations(orders)

	assert.Equal(t, []domain.DailyCancellations{
		{Date: day("2024-01-01"), CancelCount: 1},
		{Date: day("2024-01-04"), CancelCount: 1},
	}, cancellations)
}

func TestCustomersByState(t *testing.T) {
	t.Run("counts distinct customers, most populated first", func(t *testing.T) {
		orders := []domain.Order{
			{OrderID: "o1", CustomerID: "c1", CustomerState: "SP"},
			{OrderID: "o2", CustomerID: "c2", CustomerState: "SP"},
			{OrderID: "o3", CustomerID: "c3", CustomerState: "RJ"},
		}

		assert.Equal(t, []domain.StateCount{
			{State: "SP", Count: 2},
			{State: "RJ", Count: 1},
		}, CustomersByState(orders))
	})

	t.Run("repeat customers count once", func(t *testing.T) {
		orders := []domain.Order{
			{OrderID: "o1", CustomerID: "c1", CustomerState: "MG"},
			{OrderID: "o2", CustomerID: "c1", CustomerState: "MG"},
			{OrderID: "o3", CustomerID: "c2", CustomerState: "RJ"},
			{OrderID: "o4", CustomerID: "c3", CustomerState: "RJ"},
		}

		assert.Equal(t, []domain.StateCount{
			{State: "RJ", Count: 2},
			{State: "MG", Count: 1},
		}, CustomersByState(orders))
	})
}

func TestSellersByState(t *testing.T) {
	sellers := []domain.Seller{
		{SellerID: "s1", State: "PR"},
		{SellerID: "s2", State: "SP"},
		{SellerID: "s3", State: "SP"},
		{SellerID: "s4", State: "PR"},
		{SellerID: "s5", State: "SC"},
		{SellerID: "s6", State: ""},
	}

	got := SellersByState(sellers)

	// PR and SP tie; PR appears first in the input.
	assert.Equal(t, []domain.StateCount{
		{State: "PR", Count: 2},
		{State: "SP", Count: 2},
		{State: "SC", Count: 1},
	}, got)
}

func TestCountByState_Properties(t *testing.T) {
	members := []domain.StateMember{
		{ID: "a", State: "SP"}, {ID: "b", State: "RJ"}, {ID: "c", State: "SP"},
		{ID: "a", State: "SP"}, {ID: "d", State: "BA"}, {ID: "e", State: "RJ"},
	}

	counts := CountByState(members)

	states := make(map[string]struct{})
	total := 0
	for _, c := range counts {
		_, dup := states[c.State]
		assert.False(t, dup, "duplicate state %s", c.State)
		states[c.State] = struct{}{}
		total += c.Count
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, counts, CountByState(members))
}

func TestPaymentMethods(t *testing.T) {
	payments := []domain.Payment{
		{OrderID: "o1", Type: "credit_card", Value: 100},
		{OrderID: "o1", Type: "voucher", Value: 15},
		{OrderID: "o2", Type: "credit_card", Value: 50.25},
		{OrderID: "o3", Type: "boleto", Value: 80},
		{OrderID: "o4", Type: "credit_card", Value: 9.75},
	}

	t.Run("counts occurrences per type", func(t *testing.T) {
		assert.Equal(t, []domain.PaymentMethodCount{
			{Type: "boleto", OrderCount: 1},
			{Type: "credit_card", OrderCount: 3},
			{Type: "voucher", OrderCount: 1},
		}, PaymentMethodCounts(payments))
	})

	t.Run("sums value per type", func(t *testing.T) {
		assert.Equal(t, []domain.PaymentMethodRevenue{
			{Type: "boleto", Revenue: 80},
			{Type: "credit_card", Revenue: 160},
			{Type: "voucher", Revenue: 15},
		}, PaymentMethodRevenue(payments))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, PaymentMethodCounts(nil))
		assert.Empty(t, PaymentMethodRevenue(nil))
	})
}
