package api

type TimePeriod struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration int    `json:"duration_days"`
}

type DailyOrders struct {
	Date       string  `json:"date"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"payment_value"`
}

type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

type PaymentMethodCount struct {
	Type       string `json:"payment_type"`
	OrderCount int    `json:"order_count"`
}

type PaymentMethodRevenue struct {
	Type    string  `json:"payment_type"`
	Revenue float64 `json:"payment_value"`
}

type DailyCancellations struct {
	Date        string `json:"date"`
	CancelCount int    `json:"cancel_count"`
}

type Totals struct {
	Orders           int     `json:"orders"`
	Revenue          float64 `json:"revenue"`
	FormattedRevenue string  `json:"formatted_revenue"`
}

type Dashboard struct {
	Period         TimePeriod             `json:"period"`
	Totals         Totals                 `json:"totals"`
	DailyOrders    []DailyOrders          `json:"daily_orders"`
	CustomerStates []StateCount           `json:"customer_states"`
	SellerStates   []StateCount           `json:"seller_states"`
	PaymentCounts  []PaymentMethodCount   `json:"payment_counts"`
	PaymentRevenue []PaymentMethodRevenue `json:"payment_revenue"`
	Cancellations  []DailyCancellations   `json:"cancellations"`
	Empty          bool                   `json:"empty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
