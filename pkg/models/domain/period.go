package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Period is an inclusive range of calendar dates. Start and End are
// truncated to midnight in their own location.
type Period struct {
	Start time.Time
	End   time.Time
}

func NewPeriod(start, end time.Time) Period {
	return Period{Start: Day(start), End: Day(end)}
}

// ParsePeriod parses two YYYY-MM-DD dates in UTC.
func ParsePeriod(start, end string) (Period, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Period{}, fmt.Errorf("%w: start %q", ErrInvalidPeriod, start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Period{}, fmt.Errorf("%w: end %q", ErrInvalidPeriod, end)
	}
	return NewPeriod(s, e), nil
}

// Valid reports whether Start is not after End.
func (p Period) Valid() bool {
	return !p.Start.After(p.End)
}

// Contains reports whether ts falls on any day of the period, the whole end
// day included. An invalid period contains nothing.
func (p Period) Contains(ts time.Time) bool {
	if !p.Valid() {
		return false
	}
	return !ts.Before(p.Start) && ts.Before(p.End.AddDate(0, 0, 1))
}

// Days is the number of calendar days covered, or zero for an invalid period.
func (p Period) Days() int {
	if !p.Valid() {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format(DateLayout), p.End.Format(DateLayout))
}

// Day truncates ts to midnight of its calendar date, keeping the location.
func Day(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
