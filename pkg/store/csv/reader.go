// Package csv reads the three commerce extracts from CSV into typed records.
//
// Every cell is loaded as a string and validated once; extra columns are
// ignored. Rows come back sorted by purchase timestamp, ties keeping file
// order.
package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	OrdersTable   = "orders"
	PaymentsTable = "payments"
	SellersTable  = "sellers"

	ColOrderID         = "order_id"
	ColCustomerID      = "customer_id"
	ColCustomerState   = "customer_state"
	ColOrderStatus     = "order_status"
	ColPurchasedAt     = "order_purchase_timestamp"
	ColPaymentValue    = "payment_value"
	ColPaymentType     = "payment_type"
	ColSellerID        = "seller_id"
	ColSellerState     = "seller_state"
	ColSellerCity      = "seller_city"
	ColSellerZipPrefix = "seller_zip_code_prefix"
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	domain.DateLayout,
}

var nullMarkers = map[string]struct{}{
	"":      {},
	"NaN":   {},
	"NA":    {},
	"<nil>": {},
}

// frame wraps a string-typed dataframe with the table name for errors.
type frame struct {
	table   string
	columns map[string][]string
	rows    int
}

func readFrame(table string, r io.Reader, required, optional []string) (*frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s csv: %w", table, err)
	}

	header, hasRows, err := peekHeader(data)
	if err != nil {
		return nil, fmt.Errorf("read %s csv: %w", table, err)
	}
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}
	for _, name := range required {
		if _, ok := present[name]; !ok {
			return nil, domain.NewMissingColumnError(table, name)
		}
	}

	f := &frame{table: table, columns: make(map[string][]string)}
	if !hasRows {
		return f, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.HasHeader(true),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read %s csv: %w", table, df.Err)
	}

	f.rows = df.Nrow()
	for _, name := range required {
		f.columns[name] = df.Col(name).Records()
	}
	for _, name := range optional {
		if _, ok := present[name]; ok {
			f.columns[name] = df.Col(name).Records()
		}
	}
	return f, nil
}

// peekHeader returns the header row and whether any data row follows it.
// An empty input has no header.
func peekHeader(data []byte) ([]string, bool, error) {
	cr := stdcsv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	_, err = cr.Read()
	if errors.Is(err, io.EOF) {
		return header, false, nil
	}
	return header, true, nil
}

// str returns the trimmed cell, or "" for a missing column or null marker.
func (f *frame) str(column string, row int) string {
	values, ok := f.columns[column]
	if !ok {
		return ""
	}
	v := strings.TrimSpace(values[row])
	if _, null := nullMarkers[v]; null {
		return ""
	}
	return v
}

func (f *frame) timestamp(column string, row int) (time.Time, error) {
	raw := f.columns[column][row]
	ts, err := ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, domain.NewUnparseableTimestampError(f.table, column, row+1, raw)
	}
	return ts, nil
}

// amount parses a numeric cell. Missing values count as zero.
func (f *frame) amount(column string, row int) (float64, error) {
	v := f.str(column, row)
	if v == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, domain.NewInvalidValueError(f.table, column, row+1, f.columns[column][row])
	}
	return value, nil
}

// ParseTimestamp accepts the purchase timestamp formats found in the
// extracts. Values are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrUnparseableTimestamp, value)
}

// ReadOrders reads the orders extract: one row per order payment, joined
// with the customer.
func ReadOrders(r io.Reader) ([]domain.Order, error) {
	f, err := readFrame(OrdersTable, r, []string{
		ColOrderID, ColCustomerID, ColOrderStatus, ColPurchasedAt, ColPaymentValue, ColCustomerState,
	}, nil)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, f.rows)
	for i := 0; i < f.rows; i++ {
		ts, err := f.timestamp(ColPurchasedAt, i)
		if err != nil {
			return nil, err
		}
		value, err := f.amount(ColPaymentValue, i)
		if err != nil {
			return nil, err
		}
		orders = append(orders, domain.Order{
			OrderID:       f.str(ColOrderID, i),
			CustomerID:    f.str(ColCustomerID, i),
			CustomerState: f.str(ColCustomerState, i),
			Status:        f.str(ColOrderStatus, i),
			PurchasedAt:   ts,
			PaymentValue:  value,
		})
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].PurchasedAt.Before(orders[j].PurchasedAt) })
	return orders, nil
}

func ReadPayments(r io.Reader) ([]domain.Payment, error) {
	f, err := readFrame(PaymentsTable, r, []string{
		ColOrderID, ColPaymentType, ColPaymentValue, ColPurchasedAt,
	}, nil)
	if err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, f.rows)
	for i := 0; i < f.rows; i++ {
		ts, err := f.timestamp(ColPurchasedAt, i)
		if err != nil {
			return nil, err
		}
		value, err := f.amount(ColPaymentValue, i)
		if err != nil {
			return nil, err
		}
		payments = append(payments, domain.Payment{
			OrderID:     f.str(ColOrderID, i),
			Type:        f.str(ColPaymentType, i),
			Value:       value,
			PurchasedAt: ts,
		})
	}

	sort.SliceStable(payments, func(i, j int) bool { return payments[i].PurchasedAt.Before(payments[j].PurchasedAt) })
	return payments, nil
}

// ReadSellers reads the seller directory. City and zip prefix are optional.
func ReadSellers(r io.Reader) ([]domain.Seller, error) {
	f, err := readFrame(SellersTable, r,
		[]string{ColSellerID, ColSellerState},
		[]string{ColSellerCity, ColSellerZipPrefix},
	)
	if err != nil {
		return nil, err
	}

	sellers := make([]domain.Seller, 0, f.rows)
	for i := 0; i < f.rows; i++ {
		sellers = append(sellers, domain.Seller{
			SellerID:      f.str(ColSellerID, i),
			State:         f.str(ColSellerState, i),
			City:          f.str(ColSellerCity, i),
			ZipCodePrefix: f.str(ColSellerZipPrefix, i),
		})
	}
	return sellers, nil
}
