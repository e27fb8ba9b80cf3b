// Package charts renders dashboard summaries as PNG images.
package charts

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

type Settings struct {
	Width     int
	Height    int
	TopStates int
}

// Renderer draws one summary of a dashboard. Summaries without rows return
// an error wrapping domain.ErrEmptyRange.
type Renderer interface {
	Render(w io.Writer, name domain.SummaryName, d *domain.Dashboard) error
}

type renderer struct {
	settings Settings
}

func NewRenderer(settings Settings) Renderer {
	if settings.Width <= 0 {
		settings.Width = DefaultWidth
	}
	if settings.Height <= 0 {
		settings.Height = DefaultHeight
	}
	if settings.TopStates <= 0 {
		settings.TopStates = 5
	}
	return &renderer{settings: settings}
}

func (r *renderer) Render(w io.Writer, name domain.SummaryName, d *domain.Dashboard) error {
	switch name {
	case domain.SummaryDailyOrders:
		points := make([]point, 0, len(d.DailyOrders))
		for _, row := range d.DailyOrders {
			points = append(points, point{at: row.Date, value: float64(row.OrderCount)})
		}
		return r.line(w, "Daily Orders", "orders", chart.ColorBlue, points)
	case domain.SummaryCancellations:
		points := make([]point, 0, len(d.Cancellations))
		for _, row := range d.Cancellations {
			points = append(points, point{at: row.Date, value: float64(row.CancelCount)})
		}
		return r.line(w, "Daily Cancellations", "orders", chart.ColorRed, points)
	case domain.SummaryCustomerStates:
		return r.bars(w, fmt.Sprintf("Top %d Customer States", r.settings.TopStates), stateBars(d.CustomerStates, r.settings.TopStates))
	case domain.SummarySellerStates:
		return r.bars(w, fmt.Sprintf("Top %d Seller States", r.settings.TopStates), stateBars(d.SellerStates, r.settings.TopStates))
	case domain.SummaryPaymentCounts:
		values := make([]chart.Value, 0, len(d.PaymentCounts))
		for _, row := range d.PaymentCounts {
			values = append(values, chart.Value{Label: row.Type, Value: float64(row.OrderCount)})
		}
		return r.bars(w, "Payments by Method", values)
	case domain.SummaryPaymentRevenue:
		values := make([]chart.Value, 0, len(d.PaymentRevenue))
		for _, row := range d.PaymentRevenue {
			values = append(values, chart.Value{Label: row.Type, Value: row.Revenue})
		}
		return r.bars(w, "Revenue by Method", values)
	default:
		return fmt.Errorf("unknown summary %q", name)
	}
}

type point struct {
	at    time.Time
	value float64
}

func (r *renderer) line(w io.Writer, title, unit string, color drawing.Color, points []point) error {
	if len(points) == 0 {
		return fmt.Errorf("%s: %w", title, domain.ErrEmptyRange)
	}

	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		xs = append(xs, p.at)
		ys = append(ys, p.value)
	}

	// Half a day of padding keeps single-day series renderable.
	minX := chart.TimeToFloat64(xs[0].Add(-12 * time.Hour))
	maxX := chart.TimeToFloat64(xs[len(xs)-1].Add(12 * time.Hour))

	graph := chart.Chart{
		Title:      title,
		Width:      r.settings.Width,
		Height:     r.settings.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat(domain.DateLayout),
			Range:          &chart.ContinuousRange{Min: minX, Max: maxX},
		},
		YAxis: chart.YAxis{
			Name:  unit,
			Range: &chart.ContinuousRange{Min: 0, Max: upperBound(ys)},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    title,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					DotColor:    color,
					DotWidth:    3,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", title, err)
	}
	return nil
}

func (r *renderer) bars(w io.Writer, title string, values []chart.Value) error {
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", title, domain.ErrEmptyRange)
	}

	ys := make([]float64, 0, len(values))
	for i := range values {
		values[i].Style = chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue}
		ys = append(ys, values[i].Value)
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      r.settings.Width,
		Height:     r.settings.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   barWidth(r.settings.Width, len(values)),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: upperBound(ys)},
		},
		Bars: values,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", title, err)
	}
	return nil
}

func stateBars(rows []domain.StateCount, limit int) []chart.Value {
	values := make([]chart.Value, 0, limit)
	for i, row := range rows {
		if i >= limit {
			break
		}
		values = append(values, chart.Value{Label: row.State, Value: float64(row.Count)})
	}
	return values
}

// upperBound leaves headroom above the largest value and never returns zero.
func upperBound(values []float64) float64 {
	maxValue := 0.0
	for _, v := range values {
		maxValue = math.Max(maxValue, v)
	}
	if maxValue == 0 {
		return 1
	}
	return maxValue * 1.1
}

func barWidth(width, bars int) int {
	w := width / (bars*2 + 1)
	if w > 80 {
		return 80
	}
	if w < 8 {
		return 8
	}
	return w
}
