package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const OrdersTableSchema = `
	CREATE TABLE IF NOT EXISTS orders (
		order_id VARCHAR NOT NULL,
		customer_id VARCHAR NOT NULL,
		customer_state VARCHAR NOT NULL,
		order_status VARCHAR NOT NULL,
		order_purchase_timestamp TIMESTAMP NOT NULL,
		payment_value DOUBLE
	);
`
const PaymentsTableSchema = `
	CREATE TABLE IF NOT EXISTS payments (
		order_id VARCHAR NOT NULL,
		payment_type VARCHAR NOT NULL,
		payment_value DOUBLE,
		order_purchase_timestamp TIMESTAMP NOT NULL
	);
`
const SellersTableSchema = `
	CREATE TABLE IF NOT EXISTS sellers (
		seller_id VARCHAR NOT NULL,
		seller_state VARCHAR NOT NULL,
		seller_city VARCHAR,
		seller_zip_code_prefix VARCHAR
	);
`

var bootQueries = []string{
	OrdersTableSchema,
	PaymentsTableSchema,
	SellersTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
