package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/de-tools/commerce-atlas/pkg/adapters"
	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

const (
	colOrderID         = "order_id"
	colCustomerID      = "customer_id"
	colCustomerState   = "customer_state"
	colOrderStatus     = "order_status"
	colPurchasedAt     = "order_purchase_timestamp"
	colPaymentValue    = "payment_value"
	colPaymentType     = "payment_type"
	colSellerID        = "seller_id"
	colSellerState     = "seller_state"
	colSellerCity      = "seller_city"
	colSellerZipPrefix = "seller_zip_code_prefix"
)

// DatasetReader reads the three extract tables from any database/sql
// driver: DuckDB snapshots, Snowflake or Databricks SQL warehouses.
//
// Each table's columns are checked before it is read; a missing column is
// reported as a *domain.DataShapeError. NULL text cells read as "".
type DatasetReader interface {
	ReadOrders(ctx context.Context) ([]domain.Order, error)
	ReadPayments(ctx context.Context) ([]domain.Payment, error)
	ReadSellers(ctx context.Context) ([]domain.Seller, error)
	ReadDataset(ctx context.Context) (*domain.Dataset, error)
}

type reader struct {
	db     *sql.DB
	tables store.Tables
}

func NewDatasetReader(db *sql.DB, tables store.Tables) DatasetReader {
	return &reader{
		db:     db,
		tables: tables,
	}
}

func (r *reader) ReadDataset(ctx context.Context) (*domain.Dataset, error) {
	orders, err := r.ReadOrders(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := r.ReadPayments(ctx)
	if err != nil {
		return nil, err
	}
	sellers, err := r.ReadSellers(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Dataset{
		Orders:   orders,
		Payments: payments,
		Sellers:  sellers,
	}, nil
}

func (r *reader) ReadOrders(ctx context.Context) ([]domain.Order, error) {
	table := r.tables.Orders
	if _, err := r.columns(ctx, table,
		colOrderID, colCustomerID, colCustomerState, colOrderStatus, colPurchasedAt, colPaymentValue,
	); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			order_id,
			customer_id,
			customer_state,
			order_status,
			order_purchase_timestamp,
			payment_value
		FROM %s
		ORDER BY order_purchase_timestamp, order_id
	`, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("orders query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	orders := make([]domain.Order, 0)
	for n := 1; rows.Next(); n++ {
		var row store.OrderRow
		var purchasedAt sql.NullTime
		if err := rows.Scan(
			&row.OrderID,
			&row.CustomerID,
			&row.CustomerState,
			&row.Status,
			&purchasedAt,
			&row.PaymentValue,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		if !purchasedAt.Valid {
			return nil, domain.NewUnparseableTimestampError(table, colPurchasedAt, n, "NULL")
		}
		row.PurchasedAt = purchasedAt.Time
		orders = append(orders, adapters.MapStoreOrderRowToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func (r *reader) ReadPayments(ctx context.Context) ([]domain.Payment, error) {
	table := r.tables.Payments
	if _, err := r.columns(ctx, table, colOrderID, colPaymentType, colPaymentValue, colPurchasedAt); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			order_id,
			payment_type,
			payment_value,
			order_purchase_timestamp
		FROM %s
		ORDER BY order_purchase_timestamp, order_id
	`, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("payments query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	payments := make([]domain.Payment, 0)
	for n := 1; rows.Next(); n++ {
		var row store.PaymentRow
		var purchasedAt sql.NullTime
		if err := rows.Scan(&row.OrderID, &row.PaymentType, &row.Value, &purchasedAt); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		if !purchasedAt.Valid {
			return nil, domain.NewUnparseableTimestampError(table, colPurchasedAt, n, "NULL")
		}
		row.PurchasedAt = purchasedAt.Time
		payments = append(payments, adapters.MapStorePaymentRowToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, nil
}

// ReadSellers reads the seller directory. City and zip prefix are optional
// columns and read as "" when the table lacks them.
func (r *reader) ReadSellers(ctx context.Context) ([]domain.Seller, error) {
	table := r.tables.Sellers
	present, err := r.columns(ctx, table, colSellerID, colSellerState)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT seller_id, seller_state, %s, %s
		FROM %s
		ORDER BY seller_id
	`, optionalColumn(present, colSellerCity), optionalColumn(present, colSellerZipPrefix), table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sellers query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	sellers := make([]domain.Seller, 0)
	for rows.Next() {
		var row store.SellerRow
		if err := rows.Scan(&row.SellerID, &row.State, &row.City, &row.ZipCodePrefix); err != nil {
			return nil, fmt.Errorf("scan seller row: %w", err)
		}
		sellers = append(sellers, adapters.MapStoreSellerRowToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sellers: %w", err)
	}
	return sellers, nil
}

// columns lists the columns of table, lower-cased, and checks that every
// required column is present. Warehouses may report upper-case names.
func (r *reader) columns(ctx context.Context, table string, required ...string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", table))
	if err != nil {
		return nil, fmt.Errorf("%s columns query failed: %w", table, err)
	}
	defer closeRows(ctx, rows)

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%s columns: %w", table, err)
	}

	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[strings.ToLower(name)] = struct{}{}
	}
	for _, name := range required {
		if _, ok := present[name]; !ok {
			return nil, domain.NewMissingColumnError(table, name)
		}
	}
	return present, nil
}

func optionalColumn(present map[string]struct{}, name string) string {
	if _, ok := present[name]; ok {
		return name
	}
	return "NULL AS " + name
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close query rows")
	}
}
