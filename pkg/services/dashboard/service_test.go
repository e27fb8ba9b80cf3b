package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFormatter struct {
	mock.Mock
}

func (m *mockFormatter) Format(amount float64) string {
	args := m.Called(amount)
	return args.String(0)
}

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func fixture() *domain.Dataset {
	return &domain.Dataset{
		Orders: []domain.Order{
			{OrderID: "o1", CustomerID: "c1", CustomerState: "SP", Status: "delivered", PurchasedAt: at("2024-01-01 10:00:00"), PaymentValue: 10},
			{OrderID: "o2", CustomerID: "c2", CustomerState: "SP", Status: "delivered", PurchasedAt: at("2024-01-01 11:00:00"), PaymentValue: 20},
			{OrderID: "o3", CustomerID: "c3", CustomerState: "RJ", Status: "canceled", PurchasedAt: at("2024-01-01 12:00:00"), PaymentValue: 30},
			{OrderID: "o4", CustomerID: "c4", CustomerState: "MG", Status: "delivered", PurchasedAt: at("2024-01-04 08:00:00"), PaymentValue: 5},
		},
		Payments: []domain.Payment{
			{OrderID: "o1", Type: "boleto", Value: 10, PurchasedAt: at("2024-01-01 10:00:00")},
			{OrderID: "o2", Type: "credit_card", Value: 20, PurchasedAt: at("2024-01-01 11:00:00")},
			{OrderID: "o3", Type: "credit_card", Value: 30, PurchasedAt: at("2024-01-01 12:00:00")},
			{OrderID: "o4", Type: "voucher", Value: 5, PurchasedAt: at("2024-01-04 08:00:00")},
		},
		Sellers: []domain.Seller{
			{SellerID: "s1", State: "SP"},
			{SellerID: "s2", State: "PR"},
			{SellerID: "s3", State: "SP"},
		},
	}
}

func TestService_Build(t *testing.T) {
	ctx := context.Background()

	t.Run("full range", func(t *testing.T) {
		formatter := new(mockFormatter)
		formatter.On("Format", 65.0).Return("R$ 65,00")
		svc := NewService(fixture(), formatter, Settings{})

		period, ok := svc.Bounds()
		require.True(t, ok)

		d := svc.Build(ctx, period)

		assert.Equal(t, 4, d.TotalOrders)
		assert.Equal(t, 65.0, d.TotalRevenue)
		assert.Equal(t, "R$ 65,00", d.FormattedRevenue)
		assert.Len(t, d.DailyOrders, 2)
		assert.Equal(t, []domain.StateCount{{State: "SP", Count: 2}, {State: "RJ", Count: 1}, {State: "MG", Count: 1}}, d.CustomerStates)
		assert.Equal(t, []domain.StateCount{{State: "SP", Count: 2}, {State: "PR", Count: 1}}, d.SellerStates)
		assert.Equal(t, []domain.PaymentMethodCount{
			{Type: "credit_card", OrderCount: 2},
			{Type: "boleto", OrderCount: 1},
			{Type: "voucher", OrderCount: 1},
		}, d.PaymentCounts)
		assert.Equal(t, []domain.PaymentMethodRevenue{
			{Type: "credit_card", Revenue: 50},
			{Type: "boleto", Revenue: 10},
			{Type: "voucher", Revenue: 5},
		}, d.PaymentRevenue)
		require.Len(t, d.Cancellations, 1)
		assert.Equal(t, 1, d.Cancellations[0].CancelCount)
		assert.NoError(t, d.Err())
		formatter.AssertExpectations(t)
	})

	t.Run("fill gaps", func(t *testing.T) {
		formatter := new(mockFormatter)
		formatter.On("Format", mock.Anything).Return("")
		svc := NewService(fixture(), formatter, Settings{FillGaps: true})

		period, _ := svc.Bounds()
		d := svc.Build(ctx, period)

		assert.Len(t, d.DailyOrders, 4)
		assert.Equal(t, 0, d.DailyOrders[1].OrderCount)
		assert.Equal(t, 4, d.TotalOrders)
	})

	t.Run("empty day yields empty summaries", func(t *testing.T) {
		formatter := new(mockFormatter)
		formatter.On("Format", 0.0).Return("R$ 0,00")
		svc := NewService(fixture(), formatter, Settings{})

		period, err := svc.ResolvePeriod("2024-01-02", "2024-01-02")
		require.NoError(t, err)

		d := svc.Build(ctx, period)

		assert.True(t, d.Empty)
		assert.True(t, errors.Is(d.Err(), domain.ErrEmptyRange))
		assert.Empty(t, d.DailyOrders)
		assert.Empty(t, d.CustomerStates)
		assert.Empty(t, d.PaymentCounts)
		assert.Empty(t, d.PaymentRevenue)
		assert.Empty(t, d.Cancellations)
		assert.Equal(t, 0, d.TotalOrders)
	})

	t.Run("dataset is not mutated", func(t *testing.T) {
		formatter := new(mockFormatter)
		formatter.On("Format", mock.Anything).Return("")
		dataset := fixture()
		svc := NewService(dataset, formatter, Settings{})
		period, _ := svc.Bounds()

		first := svc.Build(ctx, period)
		second := svc.Build(ctx, period)

		assert.Equal(t, first, second)
		assert.Equal(t, fixture(), dataset)
	})
}

func TestNewService_NilFormatterUsesDefault(t *testing.T) {
	// Given
	svc := NewService(fixture(), nil, Settings{})
	period, err := svc.ResolvePeriod("", "")
	require.NoError(t, err)

	// When
	var d *domain.Dashboard
	require.NotPanics(t, func() {
		d = svc.Build(context.Background(), period)
	})

	// Then
	assert.True(t, strings.HasPrefix(d.FormattedRevenue, "R$"), "got %q", d.FormattedRevenue)
	assert.Contains(t, d.FormattedRevenue, "65,00")
}

func TestService_ResolvePeriod(t *testing.T) {
	svc := NewService(fixture(), new(mockFormatter), Settings{})

	t.Run("defaults to dataset bounds", func(t *testing.T) {
		p, err := svc.ResolvePeriod("", "")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01..2024-01-04", p.String())
	})

	t.Run("partial override", func(t *testing.T) {
		p, err := svc.ResolvePeriod("2024-01-02", "")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-02..2024-01-04", p.String())
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := svc.ResolvePeriod("01/02/2024", "")
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	})
}
