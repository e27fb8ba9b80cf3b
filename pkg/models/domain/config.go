package domain

import "fmt"

type SourceKind string

const (
	SourceKindCSV        SourceKind = "csv"
	SourceKindDuckDB     SourceKind = "duckdb"
	SourceKindSnowflake  SourceKind = "snowflake"
	SourceKindDatabricks SourceKind = "databricks"
)

// DatasetProfile describes where the three extracts of one dataset live.
type DatasetProfile struct {
	Name string
	Kind SourceKind

	// csv: local paths or s3://bucket/key
	Orders   string
	Payments string
	Sellers  string

	// snowflake, databricks
	DSN string
	// duckdb
	Path string

	// Optional table names for SQL kinds.
	OrdersTable   string
	PaymentsTable string
	SellersTable  string
}

func (p DatasetProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Kind, p.Name)
}
