// Package renderer turns graphz snapshots into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/Mattojjo/graphz"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// DefaultChartCandles is the number of candles shown in the chart table.
const DefaultChartCandles = 10

// DashboardOptions holds configuration for rendering a dashboard.
type DashboardOptions struct {
	ChartCandles     int  // DefaultChartCandles if zero
	SkipChart        bool // Do not render the selected instrument.
	SkipTransactions bool // Do not render the transactions section.
	MaxTransactions  int  // all of them if zero
}

// dashboard is what the dashboard templates are executed with.
type dashboard struct {
	graphz.Snapshot
	SelectedInstrument *graphz.Instrument
	Options            DashboardOptions
}

var funcs = template.FuncMap{
	"quotes":       QuotesMarkdown,
	"chart":        ChartMarkdown,
	"portfolio":    PortfolioMarkdown,
	"transactions": TransactionsMarkdown,
	"kind":         kindLabel,
}

// Dashboard renders the whole snapshot: the notification, the quotes board,
// the selected instrument, the portfolio and the latest transactions.
func Dashboard(s graphz.Snapshot, opts DashboardOptions) string {
	if opts.ChartCandles <= 0 {
		opts.ChartCandles = DefaultChartCandles
	}
	data := dashboard{Snapshot: s, Options: opts}
	if in, ok := s.SelectedInstrument(); ok {
		data.SelectedInstrument = &in
	}

	partials := map[string]string{
		"notification": "notification.md",
		"chart":        "chart.md",
		"transactions": "transactions.md",
	}
	// An empty file name results in an empty template.
	if opts.SkipChart {
		partials["chart"] = ""
	}
	if opts.SkipTransactions {
		partials["transactions"] = ""
	}
	return renderTemplate("dashboard", "dashboard.md", partials, data)
}

// Notification renders the notification banner, or nothing.
func Notification(n *graphz.Notification) string {
	return renderTemplate("notification", "notification.md", nil, n)
}

func kindLabel(k graphz.NotificationKind) string {
	switch k {
	case graphz.NotifySuccess:
		return "Done"
	case graphz.NotifyError:
		return "Error"
	default:
		return "Info"
	}
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
