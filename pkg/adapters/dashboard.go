package adapters

import (
	"github.com/de-tools/commerce-atlas/pkg/models/api"
	"github.com/de-tools/commerce-atlas/pkg/models/domain"
)

func MapPeriodDomainToApi(p domain.Period) api.TimePeriod {
	return api.TimePeriod{
		Start:    p.Start.Format(domain.DateLayout),
		End:      p.End.Format(domain.DateLayout),
		Duration: p.Days(),
	}
}

func MapDailyOrdersDomainToApi(rows []domain.DailyOrders) []api.DailyOrders {
	result := make([]api.DailyOrders, 0, len(rows))
	for _, r := range rows {
		result = append(result, api.DailyOrders{
			Date:       r.Date.Format(domain.DateLayout),
			OrderCount: r.OrderCount,
			Revenue:    r.Revenue,
		})
	}
	return result
}

func MapStateCountsDomainToApi(rows []domain.StateCount) []api.StateCount {
	result := make([]api.StateCount, 0, len(rows))
	for _, r := range rows {
		result = append(result, api.StateCount{State: r.State, Count: r.Count})
	}
	return result
}

func MapPaymentCountsDomainToApi(rows []domain.PaymentMethodCount) []api.PaymentMethodCount {
	result := make([]api.PaymentMethodCount, 0, len(rows))
	for _, r := range rows {
		result = append(result, api.PaymentMethodCount{Type: r.Type, OrderCount: r.OrderCount})
	}
	return result
}

func MapPaymentRevenueDomainToApi(rows []domain.PaymentMethodRevenue) []api.PaymentMethodRevenue {
	result := make([]api.PaymentMethodRevenue, 0, len(rows))
	for _, r := range rows {
		result = append(result, api.PaymentMethodRevenue{Type: r.Type, Revenue: r.Revenue})
	}
	return result
}

func MapCancellationsDomainToApi(rows []domain.DailyCancellations) []api.DailyCancellations {
	result := make([]api.DailyCancellations, 0, len(rows))
	for _, r := range rows {
		result = append(result, api.DailyCancellations{
			Date:        r.Date.Format(domain.DateLayout),
			CancelCount: r.CancelCount,
		})
	}
	return result
}

func MapDashboardDomainToApi(d *domain.Dashboard) api.Dashboard {
	return api.Dashboard{
		Period: MapPeriodDomainToApi(d.Period),
		Totals: api.Totals{
			Orders:           d.TotalOrders,
			Revenue:          d.TotalRevenue,
			FormattedRevenue: d.FormattedRevenue,
		},
		DailyOrders:    MapDailyOrdersDomainToApi(d.DailyOrders),
		CustomerStates: MapStateCountsDomainToApi(d.CustomerStates),
		SellerStates:   MapStateCountsDomainToApi(d.SellerStates),
		PaymentCounts:  MapPaymentCountsDomainToApi(d.PaymentCounts),
		PaymentRevenue: MapPaymentRevenueDomainToApi(d.PaymentRevenue),
		Cancellations:  MapCancellationsDomainToApi(d.Cancellations),
		Empty:          d.Empty,
	}
}
