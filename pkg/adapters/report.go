package adapters

import (
	"fmt"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
)

const EmptyRangeNotice = "No orders or payments in the selected period."

// MapDashboardToReport lays a dashboard out as report sections. State tables
// are cut to the topStates most populated states; format renders money.
func MapDashboardToReport(d *domain.Dashboard, topStates int, format func(float64) string) *domain.Report {
	report := &domain.Report{
		Title: "Commerce Dashboard",
		Period: domain.TimePeriod{
			Start:    d.Period.Start,
			End:      d.Period.End,
			Duration: d.Period.Days(),
		},
		Highlights: []domain.ReportDetail{
			{Name: "Total orders", Value: d.TotalOrders, Unit: "orders"},
			{Name: "Total revenue", Value: d.FormattedRevenue},
		},
	}
	if d.Empty {
		report.Notice = EmptyRangeNotice
	}

	daily := domain.ReportSection{
		Title:   "Daily Orders",
		Columns: []string{"Date", "Orders", "Unit", "Revenue"},
	}
	for _, r := range d.DailyOrders {
		daily.Details = append(daily.Details, domain.ReportDetail{
			Name:        r.Date.Format(domain.DateLayout),
			Value:       r.OrderCount,
			Unit:        "orders",
			Description: format(r.Revenue),
		})
	}

	customers := stateSection(fmt.Sprintf("Top %d Customer States", topStates), "customers", d.CustomerStates, topStates)
	sellers := stateSection(fmt.Sprintf("Top %d Seller States", topStates), "sellers", d.SellerStates, topStates)

	payments := domain.ReportSection{
		Title:   "Payment Methods",
		Columns: []string{"Payment type", "Payments", "Unit", "Revenue"},
	}
	revenue := make(map[string]float64, len(d.PaymentRevenue))
	for _, r := range d.PaymentRevenue {
		revenue[r.Type] = r.Revenue
	}
	for _, c := range d.PaymentCounts {
		payments.Details = append(payments.Details, domain.ReportDetail{
			Name:        c.Type,
			Value:       c.OrderCount,
			Unit:        "payments",
			Description: format(revenue[c.Type]),
		})
	}

	cancellations := domain.ReportSection{
		Title:   "Daily Cancellations",
		Columns: []string{"Date", "Canceled", "Unit", ""},
	}
	for _, r := range d.Cancellations {
		cancellations.Details = append(cancellations.Details, domain.ReportDetail{
			Name:  r.Date.Format(domain.DateLayout),
			Value: r.CancelCount,
			Unit:  "orders",
		})
	}

	report.Sections = []domain.ReportSection{daily, customers, sellers, payments, cancellations}
	return report
}

func stateSection(title, unit string, rows []domain.StateCount, limit int) domain.ReportSection {
	section := domain.ReportSection{
		Title:   title,
		Columns: []string{"State", "Count", "Unit", "Rank"},
	}
	for i, r := range rows {
		if i >= limit {
			break
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        r.State,
			Value:       r.Count,
			Unit:        unit,
			Description: fmt.Sprintf("#%d", i+1),
		})
	}
	return section
}
