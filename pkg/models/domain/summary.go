package domain

import "time"

type DailyOrders struct {
	Date       time.Time
	OrderCount int
	Revenue    float64
}

type StateCount struct {
	State string
	Count int
}

type PaymentMethodCount struct {
	Type       string
	OrderCount int
}

type PaymentMethodRevenue struct {
	Type    string
	Revenue float64
}

type DailyCancellations struct {
	Date        time.Time
	CancelCount int
}

// Dashboard is every summary computed for one selected period.
type Dashboard struct {
	Period           Period
	TotalOrders      int
	TotalRevenue     float64
	FormattedRevenue string
	DailyOrders      []DailyOrders
	CustomerStates   []StateCount
	SellerStates     []StateCount
	PaymentCounts    []PaymentMethodCount
	PaymentRevenue   []PaymentMethodRevenue
	Cancellations    []DailyCancellations
	Empty            bool
}

// Err returns ErrEmptyRange when the period selected no orders and no
// payments. Summaries are still valid (and empty) in that case.
func (d *Dashboard) Err() error {
	if d.Empty {
		return ErrEmptyRange
	}
	return nil
}

// SummaryName identifies one summary table of a dashboard.
type SummaryName string

const (
	SummaryDailyOrders    SummaryName = "daily-orders"
	SummaryCustomerStates SummaryName = "customer-states"
	SummarySellerStates   SummaryName = "seller-states"
	SummaryPaymentCounts  SummaryName = "payment-counts"
	SummaryPaymentRevenue SummaryName = "payment-revenue"
	SummaryCancellations  SummaryName = "cancellations"
)

// SummaryNames lists every summary in dashboard order.
var SummaryNames = []SummaryName{
	SummaryDailyOrders,
	SummaryCustomerStates,
	SummarySellerStates,
	SummaryPaymentCounts,
	SummaryPaymentRevenue,
	SummaryCancellations,
}

func ParseSummaryName(value string) (SummaryName, bool) {
	for _, name := range SummaryNames {
		if string(name) == value {
			return name, true
		}
	}
	return "", false
}
