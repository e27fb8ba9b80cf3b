package domain

import "time"

// Report is a presentation-neutral rendering of a dashboard
type Report struct {
	Title      string
	Period     TimePeriod
	Highlights []ReportDetail
	Sections   []ReportSection
	Notice     string
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents one summary table in the report
type ReportSection struct {
	Title   string
	Columns []string
	Details []ReportDetail
}

// ReportDetail represents a single row within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
