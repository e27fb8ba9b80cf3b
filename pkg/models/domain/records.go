package domain

import "time"

// OrderStatusCanceled is the status value marking a canceled order.
const OrderStatusCanceled = "canceled"

// Order is one row of the orders extract: an order joined with one of its
// payments and with the customer who placed it. An order id repeats once per
// payment row.
type Order struct {
	OrderID       string
	CustomerID    string
	CustomerState string
	Status        string
	PurchasedAt   time.Time
	PaymentValue  float64
}

type Payment struct {
	OrderID     string
	Type        string // credit_card, boleto, voucher, debit_card
	Value       float64
	PurchasedAt time.Time
}

type Seller struct {
	SellerID      string
	State         string
	City          string
	ZipCodePrefix string
}

// StateMember pairs an entity id (customer or seller) with its state code.
type StateMember struct {
	ID    string
	State string
}

// Dataset holds the three extracts, loaded once and never mutated.
type Dataset struct {
	Orders   []Order
	Payments []Payment
	Sellers  []Seller
}

// Bounds returns the period spanning the earliest and latest purchase
// timestamps across orders and payments. ok is false when neither table has
// rows.
func (d *Dataset) Bounds() (period Period, ok bool) {
	var minTs, maxTs time.Time
	observe := func(ts time.Time) {
		if !ok || ts.Before(minTs) {
			minTs = ts
		}
		if !ok || ts.After(maxTs) {
			maxTs = ts
		}
		ok = true
	}

	for _, o := range d.Orders {
		observe(o.PurchasedAt)
	}
	for _, p := range d.Payments {
		observe(p.PurchasedAt)
	}

	if !ok {
		return Period{}, false
	}
	return NewPeriod(minTs, maxTs), true
}
