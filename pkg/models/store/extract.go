package store

import (
	"database/sql"
	"time"
)

// TableStats summarizes a stored extract table.
type TableStats struct {
	Table           string
	RecordsCount    int64
	FirstRecordTime *time.Time
	LastRecordTime  *time.Time
}

// Text columns are nullable in warehouse tables; NULL reads as "".
type OrderRow struct {
	OrderID       sql.NullString
	CustomerID    sql.NullString
	CustomerState sql.NullString
	Status        sql.NullString
	PurchasedAt   time.Time
	PaymentValue  sql.NullFloat64
}

type PaymentRow struct {
	OrderID     sql.NullString
	PaymentType sql.NullString
	Value       sql.NullFloat64
	PurchasedAt time.Time
}

type SellerRow struct {
	SellerID      sql.NullString
	State         sql.NullString
	City          sql.NullString
	ZipCodePrefix sql.NullString
}

// Tables names the three extract tables inside a SQL store.
type Tables struct {
	Orders   string
	Payments string
	Sellers  string
}

func DefaultTables() Tables {
	return Tables{
		Orders:   "orders",
		Payments: "payments",
		Sellers:  "sellers",
	}
}
