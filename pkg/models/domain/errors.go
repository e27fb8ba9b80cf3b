package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn        = errors.New("missing column")
	ErrUnparseableTimestamp = errors.New("unparseable timestamp")
	ErrInvalidValue         = errors.New("invalid value")
	ErrEmptyRange           = errors.New("no rows in selected range")
	ErrInvalidPeriod        = errors.New("invalid period")
)

// DataShapeError reports a table that does not match the expected schema.
// Row is the 1-based data row, or zero when the problem is not row specific.
type DataShapeError struct {
	Table  string
	Column string
	Row    int
	Value  string
	Err    error
}

func NewMissingColumnError(table, column string) *DataShapeError {
	return &DataShapeError{Table: table, Column: column, Err: ErrMissingColumn}
}

func NewUnparseableTimestampError(table, column string, row int, value string) *DataShapeError {
	return &DataShapeError{Table: table, Column: column, Row: row, Value: value, Err: ErrUnparseableTimestamp}
}

func NewInvalidValueError(table, column string, row int, value string) *DataShapeError {
	return &DataShapeError{Table: table, Column: column, Row: row, Value: value, Err: ErrInvalidValue}
}

func (e *DataShapeError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s.%s row %d: %v: %q", e.Table, e.Column, e.Row, e.Err, e.Value)
	}
	return fmt.Sprintf("%s.%s: %v", e.Table, e.Column, e.Err)
}

func (e *DataShapeError) Unwrap() error {
	return e.Err
}
