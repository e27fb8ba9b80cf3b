package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/services/aggregate"
	"github.com/de-tools/commerce-atlas/pkg/services/currency"
	"github.com/de-tools/commerce-atlas/pkg/services/filter"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Settings struct {
	// FillGaps adds zero rows for days without orders to the daily series.
	FillGaps bool
}

// Service assembles dashboards from a dataset loaded once at start-up.
type Service interface {
	// Bounds is the default selection: the full span of the dataset.
	Bounds() (domain.Period, bool)
	// ResolvePeriod parses YYYY-MM-DD bounds; an empty bound falls back to
	// the dataset bound on that side.
	ResolvePeriod(start, end string) (domain.Period, error)
	Build(ctx context.Context, period domain.Period) *domain.Dashboard
}

type service struct {
	dataset   *domain.Dataset
	formatter currency.Formatter
	settings  Settings
}

func NewService(dataset *domain.Dataset, formatter currency.Formatter, settings Settings) Service {
	if dataset == nil {
		dataset = &domain.Dataset{}
	}
	if formatter == nil {
		formatter = currency.Default()
	}
	return &service{
		dataset:   dataset,
		formatter: formatter,
		settings:  settings,
	}
}

func (s *service) Bounds() (domain.Period, bool) {
	return s.dataset.Bounds()
}

func (s *service) ResolvePeriod(start, end string) (domain.Period, error) {
	bounds, ok := s.dataset.Bounds()
	if !ok {
		today := domain.Day(time.Now().UTC())
		bounds = domain.NewPeriod(today, today)
	}

	if start == "" {
		start = bounds.Start.Format(domain.DateLayout)
	}
	if end == "" {
		end = bounds.End.Format(domain.DateLayout)
	}
	return domain.ParsePeriod(start, end)
}

func (s *service) Build(ctx context.Context, period domain.Period) *domain.Dashboard {
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	orders := filter.Orders(s.dataset.Orders, period)
	payments := filter.Payments(s.dataset.Payments, period)

	daily := aggregate.DailyOrders(orders)
	cancellations := aggregate.DailyCancellations(orders)
	if s.settings.FillGaps {
		daily = aggregate.FillOrderGaps(daily)
		cancellations = aggregate.FillCancellationGaps(cancellations)
	}

	paymentCounts := aggregate.PaymentMethodCounts(payments)
	sort.SliceStable(paymentCounts, func(i, j int) bool {
		return paymentCounts[i].OrderCount > paymentCounts[j].OrderCount
	})
	paymentRevenue := aggregate.PaymentMethodRevenue(payments)
	sort.SliceStable(paymentRevenue, func(i, j int) bool {
		return paymentRevenue[i].Revenue > paymentRevenue[j].Revenue
	})

	totalOrders := 0
	totalRevenue := decimal.Zero
	for _, d := range daily {
		totalOrders += d.OrderCount
		totalRevenue = totalRevenue.Add(decimal.NewFromFloat(d.Revenue))
	}
	revenue := totalRevenue.InexactFloat64()

	dashboard := &domain.Dashboard{
		Period:           period,
		TotalOrders:      totalOrders,
		TotalRevenue:     revenue,
		FormattedRevenue: s.formatter.Format(revenue),
		DailyOrders:      daily,
		CustomerStates:   aggregate.CustomersByState(orders),
		SellerStates:     aggregate.SellersByState(s.dataset.Sellers),
		PaymentCounts:    paymentCounts,
		PaymentRevenue:   paymentRevenue,
		Cancellations:    cancellations,
		Empty:            len(orders) == 0 && len(payments) == 0,
	}

	logger.Debug().
		Str("period", period.String()).
		Int("orders", len(orders)).
		Int("payments", len(payments)).
		Dur("elapsed", time.Since(started)).
		Msg("dashboard built")

	return dashboard
}
