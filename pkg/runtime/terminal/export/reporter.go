package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
)

// TableConfig bounds the width of every column. Columns grow with their
// content between MinWidth and MaxWidth; longer cells are truncated.
type TableConfig struct {
	MinWidth int
	MaxWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MinWidth: 6,
		MaxWidth: 40,
	}
}

// Reporter renders a report as one bordered table per section.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type table struct {
	Title     string
	Separator string
	Header    string
	Rows      []string
}

var reportTemplate = template.Must(template.New("report").Parse(`
{{.Report.Title}} ({{.Report.Period.Duration}} days)

Period: {{.Report.Period.Start.Format "2006-01-02"}} to {{.Report.Period.End.Format "2006-01-02"}}
{{range .Report.Highlights}}{{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}
{{end}}{{if .Report.Notice}}
{{.Report.Notice}}
{{end}}
{{range .Tables}}
=== {{.Title}} ===
{{.Separator}}
{{.Header}}
{{.Separator}}
{{range .Rows}}{{.}}
{{end}}{{.Separator}}
{{end}}
`))

func (c *Reporter) Handle(report *domain.Report) error {
	tables := make([]table, 0, len(report.Sections))
	for _, section := range report.Sections {
		tables = append(tables, c.layout(section))
	}

	err := reportTemplate.Execute(c.writer, struct {
		Report *domain.Report
		Tables []table
	}{report, tables})
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// layout sizes the four columns of a section to fit its header and rows.
func (c *Reporter) layout(section domain.ReportSection) table {
	header := make([]string, 4)
	copy(header, section.Columns)

	cells := make([][]string, 0, len(section.Details))
	for _, d := range section.Details {
		cells = append(cells, []string{d.Name, fmt.Sprint(d.Value), d.Unit, d.Description})
	}

	widths := make([]int, 4)
	for i := range widths {
		widths[i] = c.config.MinWidth
		for _, row := range append([][]string{header}, cells...) {
			if n := utf8.RuneCountInString(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
		if widths[i] > c.config.MaxWidth {
			widths[i] = c.config.MaxWidth
		}
	}

	t := table{
		Title:     section.Title,
		Separator: separator(widths),
		Header:    formatRow(header, widths),
	}
	for _, row := range cells {
		t.Rows = append(t.Rows, formatRow(row, widths))
	}
	return t
}

func separator(widths []int) string {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	return b.String()
}

// formatRow left-aligns every column except the value, which is right-aligned.
func formatRow(row []string, widths []int) string {
	var b strings.Builder
	b.WriteString("|")
	for i, w := range widths {
		cell := truncate(row[i], w)
		if i == 1 {
			fmt.Fprintf(&b, " %*s |", w, cell)
		} else {
			fmt.Fprintf(&b, " %-*s |", w, cell)
		}
	}
	return b.String()
}

func truncate(value string, width int) string {
	if utf8.RuneCountInString(value) <= width {
		return value
	}
	runes := []rune(value)
	return string(runes[:width-1]) + "~"
}
