package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
)

var plainTemplate = template.Must(template.New("plain").Parse(`{{.Title}}
{{.Period.Start.Format "2006-01-02"}} .. {{.Period.End.Format "2006-01-02"}} ({{.Period.Duration}} {{if eq .Period.Duration 1}}day{{else}}days{{end}})
{{range .Highlights}}{{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}
{{end}}{{with .Notice}}{{.}}
{{end}}{{range .Sections}}
{{.Title}}
{{range .Details}}- {{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}{{if .Description}} ({{.Description}}){{end}}
{{else}}- none
{{end}}{{end}}`))

// Reporter writes a report as plain bulleted lists, one per section.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.Report) error {
	if err := plainTemplate.Execute(c.writer, report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
