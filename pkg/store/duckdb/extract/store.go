package extract

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/adapters"
	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/models/store"
	"github.com/de-tools/commerce-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
)

// Store keeps a local DuckDB snapshot of the three extracts.
// Import replaces the snapshot contents; read it back through
// pkg/store/sql.NewDatasetReader on the same connection.
type Store interface {
	Import(ctx context.Context, dataset *domain.Dataset) error
	Stats(ctx context.Context) ([]store.TableStats, error)
}

type extractStore struct {
	db     *sql.DB
	tables store.Tables
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &extractStore{
		db:     db,
		tables: store.DefaultTables(),
	}, nil
}

// Import writes dataset in a single transaction, joining the one carried
// by ctx if any.
func (s *extractStore) Import(ctx context.Context, dataset *domain.Dataset) error {
	if dataset == nil {
		return fmt.Errorf("dataset is nil")
	}

	if err := duckdb.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.replace(ctx, tx, dataset)
	}); err != nil {
		return fmt.Errorf("import dataset: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Int("orders", len(dataset.Orders)).
		Int("payments", len(dataset.Payments)).
		Int("sellers", len(dataset.Sellers)).
		Msg("dataset imported")
	return nil
}

func (s *extractStore) replace(ctx context.Context, tx *sql.Tx, dataset *domain.Dataset) error {
	for _, table := range []string{s.tables.Orders, s.tables.Payments, s.tables.Sellers} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := s.addOrders(ctx, tx, dataset.Orders); err != nil {
		return err
	}
	if err := s.addPayments(ctx, tx, dataset.Payments); err != nil {
		return err
	}
	return s.addSellers(ctx, tx, dataset.Sellers)
}

func (s *extractStore) addOrders(ctx context.Context, tx *sql.Tx, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			order_id, customer_id, customer_state, order_status,
			order_purchase_timestamp, payment_value
		) VALUES (?, ?, ?, ?, ?, ?)`, s.tables.Orders))
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, order := range orders {
		row := adapters.MapDomainOrderToStoreRow(order)
		if _, err := stmt.ExecContext(ctx,
			row.OrderID,
			row.CustomerID,
			row.CustomerState,
			row.Status,
			row.PurchasedAt,
			row.PaymentValue,
		); err != nil {
			return fmt.Errorf("insert order %s: %w", row.OrderID.String, err)
		}
	}
	return nil
}

func (s *extractStore) addPayments(ctx context.Context, tx *sql.Tx, payments []domain.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			order_id, payment_type, payment_value, order_purchase_timestamp
		) VALUES (?, ?, ?, ?)`, s.tables.Payments))
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, payment := range payments {
		row := adapters.MapDomainPaymentToStoreRow(payment)
		if _, err := stmt.ExecContext(ctx, row.OrderID, row.PaymentType, row.Value, row.PurchasedAt); err != nil {
			return fmt.Errorf("insert payment %s: %w", row.OrderID.String, err)
		}
	}
	return nil
}

func (s *extractStore) addSellers(ctx context.Context, tx *sql.Tx, sellers []domain.Seller) error {
	if len(sellers) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			seller_id, seller_state, seller_city, seller_zip_code_prefix
		) VALUES (?, ?, ?, ?)`, s.tables.Sellers))
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, seller := range sellers {
		row := adapters.MapDomainSellerToStoreRow(seller)
		if _, err := stmt.ExecContext(ctx, row.SellerID, row.State, row.City, row.ZipCodePrefix); err != nil {
			return fmt.Errorf("insert seller %s: %w", row.SellerID.String, err)
		}
	}
	return nil
}

func (s *extractStore) Stats(ctx context.Context) ([]store.TableStats, error) {
	stats := make([]store.TableStats, 0, 3)

	for _, table := range []string{s.tables.Orders, s.tables.Payments} {
		query := fmt.Sprintf(`
			SELECT COUNT(*), MIN(order_purchase_timestamp), MAX(order_purchase_timestamp)
			FROM %s`, table)
		var (
			total         int64
			first, latest sql.NullTime
		)
		if err := s.db.QueryRowContext(ctx, query).Scan(&total, &first, &latest); err != nil {
			return nil, fmt.Errorf("get %s stats: %w", table, err)
		}
		stats = append(stats, store.TableStats{
			Table:           table,
			RecordsCount:    total,
			FirstRecordTime: timePtr(first),
			LastRecordTime:  timePtr(latest),
		})
	}

	var sellers int64
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tables.Sellers)).Scan(&sellers); err != nil {
		return nil, fmt.Errorf("get %s stats: %w", s.tables.Sellers, err)
	}
	stats = append(stats, store.TableStats{Table: s.tables.Sellers, RecordsCount: sellers})

	return stats, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
