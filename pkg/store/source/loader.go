// Package source loads a dataset once at start-up from the location a
// profile describes: CSV extracts (local or S3), a DuckDB snapshot, or a
// Snowflake or Databricks SQL warehouse.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/models/store"
	"github.com/de-tools/commerce-atlas/pkg/store/blob"
	"github.com/de-tools/commerce-atlas/pkg/store/csv"
	"github.com/de-tools/commerce-atlas/pkg/store/duckdb"
	sqlstore "github.com/de-tools/commerce-atlas/pkg/store/sql"
	_ "github.com/databricks/databricks-sql-go"
	"github.com/rs/zerolog"
	_ "github.com/snowflakedb/gosnowflake"
)

type Loader interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// NewDefaultRegistry registers every supported source kind.
func NewDefaultRegistry(opener blob.Opener) Registry {
	r := NewRegistry()
	_ = r.Register(domain.SourceKindCSV, func(p domain.DatasetProfile) (Loader, error) {
		return NewCSVLoader(p, opener)
	})
	_ = r.Register(domain.SourceKindDuckDB, NewDuckDBLoader)
	_ = r.Register(domain.SourceKindSnowflake, func(p domain.DatasetProfile) (Loader, error) {
		return NewWarehouseLoader(p, "snowflake")
	})
	_ = r.Register(domain.SourceKindDatabricks, func(p domain.DatasetProfile) (Loader, error) {
		return NewWarehouseLoader(p, "databricks")
	})
	return r
}

type csvLoader struct {
	profile domain.DatasetProfile
	opener  blob.Opener
}

func NewCSVLoader(profile domain.DatasetProfile, opener blob.Opener) (Loader, error) {
	if profile.Orders == "" || profile.Payments == "" || profile.Sellers == "" {
		return nil, fmt.Errorf("profile %s: orders, payments and sellers locations are required", profile.Name)
	}
	if opener == nil {
		return nil, fmt.Errorf("opener cannot be nil")
	}
	return &csvLoader{profile: profile, opener: opener}, nil
}

func (l *csvLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)
	dataset := &domain.Dataset{}

	if err := l.read(ctx, l.profile.Orders, func(r io.Reader) (err error) {
		dataset.Orders, err = csv.ReadOrders(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := l.read(ctx, l.profile.Payments, func(r io.Reader) (err error) {
		dataset.Payments, err = csv.ReadPayments(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := l.read(ctx, l.profile.Sellers, func(r io.Reader) (err error) {
		dataset.Sellers, err = csv.ReadSellers(r)
		return err
	}); err != nil {
		return nil, err
	}

	logger.Info().
		Str("profile", l.profile.String()).
		Int("orders", len(dataset.Orders)).
		Int("payments", len(dataset.Payments)).
		Int("sellers", len(dataset.Sellers)).
		Msg("dataset loaded")
	return dataset, nil
}

func (l *csvLoader) read(ctx context.Context, location string, parse func(io.Reader) error) error {
	rc, err := l.opener.Open(ctx, location)
	if err != nil {
		return err
	}
	defer func() {
		if err := rc.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("location", location).Msg("failed to close extract")
		}
	}()
	if err := parse(rc); err != nil {
		return fmt.Errorf("load %s: %w", location, err)
	}
	return nil
}

type sqlLoader struct {
	profile domain.DatasetProfile
	open    func() (*sql.DB, error)
}

func NewDuckDBLoader(profile domain.DatasetProfile) (Loader, error) {
	if profile.Path == "" {
		return nil, fmt.Errorf("profile %s: path is required", profile.Name)
	}
	return &sqlLoader{
		profile: profile,
		open: func() (*sql.DB, error) {
			return duckdb.NewDB(duckdb.Settings{DbPath: profile.Path})
		},
	}, nil
}

// NewWarehouseLoader reads the extracts through a registered database/sql
// driver, such as snowflake or databricks.
func NewWarehouseLoader(profile domain.DatasetProfile, driverName string) (Loader, error) {
	if profile.DSN == "" {
		return nil, fmt.Errorf("profile %s: dsn is required", profile.Name)
	}
	return &sqlLoader{
		profile: profile,
		open: func() (*sql.DB, error) {
			return sql.Open(driverName, profile.DSN)
		},
	}, nil
}

func (l *sqlLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	db, err := l.open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.profile, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close source database")
		}
	}()

	dataset, err := sqlstore.NewDatasetReader(db, Tables(l.profile)).ReadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.profile, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("profile", l.profile.String()).
		Int("orders", len(dataset.Orders)).
		Int("payments", len(dataset.Payments)).
		Int("sellers", len(dataset.Sellers)).
		Msg("dataset loaded")
	return dataset, nil
}

// Tables returns the profile's table names, falling back to the defaults.
func Tables(profile domain.DatasetProfile) store.Tables {
	tables := store.DefaultTables()
	if profile.OrdersTable != "" {
		tables.Orders = profile.OrdersTable
	}
	if profile.PaymentsTable != "" {
		tables.Payments = profile.PaymentsTable
	}
	if profile.SellersTable != "" {
		tables.Sellers = profile.SellersTable
	}
	return tables
}
