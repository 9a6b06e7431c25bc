package report

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

// Total sums amount over items. An empty slice totals exactly zero.
func Total[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(amount(it))
	}
	return sum
}

// Rupiah formats d the way the back-office shows money: "Rp 125.000".
func Rupiah(d decimal.Decimal) string {
	neg := d.IsNegative()
	digits := d.Abs().Round(0).StringFixed(0)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "Rp -" + b.String()
	}
	return "Rp " + b.String()
}

// Table is a flattened, export-ready rendering of a collection.
type Table struct {
	Title    string
	Subtitle string
	Columns  []string
	Rows     [][]string
	Footer   []string
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	if len(t.Footer) > 0 {
		if err := cw.Write(t.Footer); err != nil {
			return fmt.Errorf("write csv footer: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText renders t as aligned columns for a terminal.
func WriteText(w io.Writer, t Table) error {
	if t.Title != "" {
		fmt.Fprintln(w, t.Title)
	}
	if t.Subtitle != "" {
		fmt.Fprintln(w, t.Subtitle)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if len(t.Footer) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Footer, "\t"))
	}
	return tw.Flush()
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
h1, h2 { text-align: center; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #333; padding: 6px; text-align: left; }
th { background: #eee; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Subtitle}}
<h2>{{.Subtitle}}</h2>
{{- end}}
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
{{- if .Footer}}
<tfoot><tr>{{range .Footer}}<th>{{.}}</th>{{end}}</tr></tfoot>
{{- end}}
</table>
</body>
</html>
`))

func WriteHTML(w io.Writer, t Table) error {
	if err := htmlTemplate.Execute(w, t); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}
