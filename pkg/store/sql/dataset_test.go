package sql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderColumns   = []string{"order_id", "customer_id", "customer_state", "order_status", "order_purchase_timestamp", "payment_value"}
	paymentColumns = []string{"order_id", "payment_type", "payment_value", "order_purchase_timestamp"}
	sellerColumns  = []string{"seller_id", "seller_state", "seller_city", "seller_zip_code_prefix"}
)

// expectColumns registers the column listing query issued before each read.
func expectColumns(mock sqlmock.Sqlmock, table string, columns []string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM " + table + " LIMIT 0")).
		WillReturnRows(sqlmock.NewRows(columns))
}

func TestDatasetReader_ReadDataset(t *testing.T) {
	// Given: a sqlmock DB serving one row per extract table
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	expectColumns(mock, "orders", orderColumns)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY order_purchase_timestamp, order_id")).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow("o1", "c1", "SP", "delivered", ts, 10.5).
			AddRow("o2", "c2", "RJ", "canceled", ts, nil))

	expectColumns(mock, "payments", paymentColumns)
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments")).
		WillReturnRows(sqlmock.NewRows(paymentColumns).AddRow("o1", "credit_card", 10.5, ts))

	expectColumns(mock, "sellers", sellerColumns)
	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers")).
		WillReturnRows(sqlmock.NewRows(sellerColumns).AddRow("s1", "SP", nil, "13023"))

	r := NewDatasetReader(db, store.DefaultTables())

	// When
	dataset, err := r.ReadDataset(context.Background())

	// Then
	require.NoError(t, err)
	assert.Equal(t, []domain.Order{
		{OrderID: "o1", CustomerID: "c1", CustomerState: "SP", Status: "delivered", PurchasedAt: ts, PaymentValue: 10.5},
		{OrderID: "o2", CustomerID: "c2", CustomerState: "RJ", Status: "canceled", PurchasedAt: ts},
	}, dataset.Orders)
	assert.Equal(t, []domain.Payment{{OrderID: "o1", Type: "credit_card", Value: 10.5, PurchasedAt: ts}}, dataset.Payments)
	assert.Equal(t, []domain.Seller{{SellerID: "s1", State: "SP", ZipCodePrefix: "13023"}}, dataset.Sellers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetReader_NullTextReadsAsEmpty(t *testing.T) {
	// Given: text cells holding NULL
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	expectColumns(mock, "orders", orderColumns)
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow("o1", nil, nil, nil, ts, 10.5))

	expectColumns(mock, "payments", paymentColumns)
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments")).
		WillReturnRows(sqlmock.NewRows(paymentColumns).AddRow("o1", nil, nil, ts))

	expectColumns(mock, "sellers", sellerColumns)
	mock.ExpectQuery(regexp.QuoteMeta("FROM sellers")).
		WillReturnRows(sqlmock.NewRows(sellerColumns).AddRow("s1", nil, nil, nil))

	// When
	dataset, err := NewDatasetReader(db, store.DefaultTables()).ReadDataset(context.Background())

	// Then
	require.NoError(t, err)
	assert.Equal(t, []domain.Order{{OrderID: "o1", PurchasedAt: ts, PaymentValue: 10.5}}, dataset.Orders)
	assert.Equal(t, []domain.Payment{{OrderID: "o1", PurchasedAt: ts}}, dataset.Payments)
	assert.Equal(t, []domain.Seller{{SellerID: "s1"}}, dataset.Sellers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetReader_MissingColumn(t *testing.T) {
	// Given: an orders table without customer_state
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectColumns(mock, "orders", []string{"order_id", "customer_id", "order_status", "order_purchase_timestamp", "payment_value"})

	// When
	_, err = NewDatasetReader(db, store.DefaultTables()).ReadOrders(context.Background())

	// Then
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	var shapeErr *domain.DataShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "orders", shapeErr.Table)
	assert.Equal(t, "customer_state", shapeErr.Column)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetReader_UpperCaseColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectColumns(mock, "payments", []string{"ORDER_ID", "PAYMENT_TYPE", "PAYMENT_VALUE", "ORDER_PURCHASE_TIMESTAMP"})
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments")).
		WillReturnRows(sqlmock.NewRows(paymentColumns))

	payments, err := NewDatasetReader(db, store.DefaultTables()).ReadPayments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, payments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetReader_NullTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	expectColumns(mock, "orders", orderColumns)
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow("o1", "c1", "SP", "delivered", ts, 1.0).
			AddRow("o2", "c2", "SP", "delivered", nil, 1.0))

	_, err = NewDatasetReader(db, store.DefaultTables()).ReadOrders(context.Background())

	var shapeErr *domain.DataShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.ErrorIs(t, err, domain.ErrUnparseableTimestamp)
	assert.Equal(t, 2, shapeErr.Row)
}

func TestDatasetReader_SellersWithoutOptionalColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectColumns(mock, "sellers", []string{"seller_id", "seller_state"})
	mock.ExpectQuery(regexp.QuoteMeta("NULL AS seller_city, NULL AS seller_zip_code_prefix")).
		WillReturnRows(sqlmock.NewRows(sellerColumns).AddRow("s1", "SP", nil, nil))

	sellers, err := NewDatasetReader(db, store.DefaultTables()).ReadSellers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Seller{{SellerID: "s1", State: "SP"}}, sellers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetReader_CustomTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectColumns(mock, "analytics.olist_sellers", sellerColumns)
	mock.ExpectQuery(regexp.QuoteMeta("FROM analytics.olist_sellers")).
		WillReturnRows(sqlmock.NewRows(sellerColumns))

	r := NewDatasetReader(db, store.Tables{
		Orders:   "analytics.olist_orders",
		Payments: "analytics.olist_payments",
		Sellers:  "analytics.olist_sellers",
	})

	sellers, err := r.ReadSellers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sellers)
	assert.Empty(t, sellers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetReader_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnError(errors.New("warehouse unavailable"))

	_, err = NewDatasetReader(db, store.DefaultTables()).ReadDataset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders columns query failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
