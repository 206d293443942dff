package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"dataclaw/domain/table"
	"dataclaw/internal"
	"dataclaw/ports"
)

// DefaultQuestion is the analysis prompt used when the caller supplies none
const DefaultQuestion = "Run a complete analysis: totals, trends, outliers and actionable insights"

// AnalyzeService builds the full statistical report for one file. Every
// section is independently optional: missing roles or thin data silently
// omit their section instead of failing.
type AnalyzeService struct {
	loader            ports.TableLoader
	charts            ports.ChartRenderer
	maxSummaryColumns int
	log               *internal.Logger
}

// AnalyzeResult is the outcome of a successful analysis
type AnalyzeResult struct {
	Report  string
	Rows    int
	Columns int
}

// NewAnalyzeService creates an analyze service
func NewAnalyzeService(loader ports.TableLoader, charts ports.ChartRenderer, maxSummaryColumns int) *AnalyzeService {
	if maxSummaryColumns <= 0 {
		maxSummaryColumns = 8
	}
	return &AnalyzeService{
		loader:            loader,
		charts:            charts,
		maxSummaryColumns: maxSummaryColumns,
		log:               internal.DefaultLogger,
	}
}

type monthBucket struct {
	Month time.Time
	Total float64
	Count int
}

type categoryEntry struct {
	Name  string
	Total float64
	Count int
}

// Analyze ingests the file, detects column roles and renders the report.
// Only ingestion failures propagate.
func (s *AnalyzeService) Analyze(ctx context.Context, path, question string) (*AnalyzeResult, error) {
	tbl, err := s.loader.Ingest(ctx, path)
	if err != nil {
		return nil, err
	}

	roles := table.DetectRoles(tbl.ColumnNames())
	valueCol := s.numericRoleColumn(tbl, roles.Value)
	dateCol := s.roleColumn(tbl, roles.Date)
	catCol := s.roleColumn(tbl, roles.Category)
	s.log.Info("[Analyze] %s: value=%q date=%q category=%q",
		filepath.Base(path), roles.Value, roles.Date, roles.Category)

	var b strings.Builder
	b.WriteString("# 📊 DataClaw Analysis\n")
	fmt.Fprintf(&b, "**File**: %s\n", filepath.Base(path))
	fmt.Fprintf(&b, "**Date**: %s\n", time.Now().Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "**Rows**: %s | **Columns**: %d\n\n", formatInt(tbl.RowCount()), tbl.ColumnCount())

	s.writeNumericSummary(&b, tbl)
	s.writeFinancialSummary(&b, valueCol)
	trend := s.writeMonthlyTrend(&b, tbl, dateCol, valueCol)
	ranking, rankedByValue := s.writeCategoryRanking(&b, tbl, catCol, valueCol)
	s.writeOutliers(&b, valueCol)

	fmt.Fprintf(&b, "## 🤖 Question: %s\n", question)
	b.WriteString("The analysis above answers with exact figures. Request specific metrics if needed.\n\n")

	s.writeChart(ctx, &b, tbl, valueCol, catCol, trend, ranking, rankedByValue)

	return &AnalyzeResult{
		Report:  b.String(),
		Rows:    tbl.RowCount(),
		Columns: tbl.ColumnCount(),
	}, nil
}

// numericRoleColumn resolves a role name to its column only when the
// column actually coerced to numeric; a text-typed value column cannot be
// aggregated and is treated as absent.
func (s *AnalyzeService) numericRoleColumn(tbl *table.Table, name string) *table.Column {
	col := s.roleColumn(tbl, name)
	if col == nil || col.Type != table.TypeNumeric {
		return nil
	}
	return col
}

func (s *AnalyzeService) roleColumn(tbl *table.Table, name string) *table.Column {
	if name == "" {
		return nil
	}
	col, ok := tbl.Column(name)
	if !ok {
		return nil
	}
	return col
}

// writeNumericSummary renders descriptive statistics over at most the
// first maxSummaryColumns numeric columns, noting how many were omitted.
func (s *AnalyzeService) writeNumericSummary(b *strings.Builder, tbl *table.Table) {
	numeric := tbl.NumericColumns()
	if len(numeric) == 0 {
		return
	}
	shown := numeric
	if len(shown) > s.maxSummaryColumns {
		shown = shown[:s.maxSummaryColumns]
	}

	headers := []string{"metric"}
	for _, col := range shown {
		headers = append(headers, col.Name)
	}

	metrics := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max", "skew", "kurtosis"}
	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		rows[i] = []string{m}
	}
	for _, col := range shown {
		data := col.Floats()
		for i, m := range metrics {
			rows[i] = append(rows[i], describeMetric(m, data))
		}
	}

	b.WriteString("## Statistical Summary\n")
	b.WriteString(markdownTable(headers, rows))
	if len(numeric) > len(shown) {
		fmt.Fprintf(b, "*Showing %d of %d numeric columns.*\n", len(shown), len(numeric))
	}
	b.WriteString("\n")
}

func describeMetric(metric string, data []float64) string {
	if metric == "count" {
		return formatInt(len(data))
	}
	if len(data) == 0 {
		return "—"
	}
	var v float64
	var err error
	switch metric {
	case "mean":
		v, err = stats.Mean(data)
	case "std":
		v, err = stats.StandardDeviationSample(data)
	case "min":
		v, err = stats.Min(data)
	case "25%":
		v, err = stats.Percentile(data, 25)
	case "50%":
		v, err = stats.Median(data)
	case "75%":
		v, err = stats.Percentile(data, 75)
	case "max":
		v, err = stats.Max(data)
	case "skew":
		v = stat.Skew(data, nil)
	case "kurtosis":
		v = stat.ExKurtosis(data, nil)
	}
	if err != nil {
		return "—"
	}
	return formatFloat(v)
}

func (s *AnalyzeService) writeFinancialSummary(b *strings.Builder, valueCol *table.Column) {
	if valueCol == nil {
		return
	}
	data := valueCol.Floats()
	if len(data) == 0 {
		return
	}
	total, _ := stats.Sum(data)
	mean, _ := stats.Mean(data)
	max, _ := stats.Max(data)

	fmt.Fprintf(b, "## 💰 Financials (%s)\n", valueCol.Name)
	fmt.Fprintf(b, "- **Total**: %s\n", formatFloat(total))
	fmt.Fprintf(b, "- **Average per sale**: %s\n", formatFloat(mean))
	fmt.Fprintf(b, "- **Largest sale**: %s\n\n", formatFloat(max))
}

// writeMonthlyTrend groups valid-date rows by calendar month and reports
// the most recent 12 months chronologically, plus how many rows carried
// unparseable dates.
func (s *AnalyzeService) writeMonthlyTrend(b *strings.Builder, tbl *table.Table, dateCol, valueCol *table.Column) []monthBucket {
	if dateCol == nil || valueCol == nil {
		return nil
	}

	buckets := make(map[time.Time]*monthBucket)
	invalid := 0
	for i := 0; i < tbl.RowCount(); i++ {
		cell := dateCol.Cells[i]
		t, ok := parseDate(cell.String())
		if cell.IsMissing || !ok {
			invalid++
			continue
		}
		key := monthKey(t)
		bucket, exists := buckets[key]
		if !exists {
			bucket = &monthBucket{Month: key}
			buckets[key] = bucket
		}
		if v, ok := valueCol.Cells[i].Float(); ok {
			bucket.Total += v
			bucket.Count++
		}
	}

	fmt.Fprintf(b, "⚠️ Invalid dates ignored: %s rows\n\n", formatInt(invalid))
	if len(buckets) == 0 {
		return nil
	}

	months := make([]monthBucket, 0, len(buckets))
	for _, bucket := range buckets {
		months = append(months, *bucket)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month.Before(months[j].Month) })
	if len(months) > 12 {
		months = months[len(months)-12:]
	}

	rows := make([][]string, len(months))
	for i, m := range months {
		rows[i] = []string{m.Month.Format("2006-01"), formatFloat(m.Total), formatInt(m.Count)}
	}
	b.WriteString("## 📅 Monthly Trend (last 12 months)\n")
	b.WriteString(markdownTable([]string{"Month", "Total", "Sales"}, rows))
	b.WriteString("\n")
	return months
}

// writeCategoryRanking ranks the top 10 categories by summed value when a
// numeric value column exists, by row count otherwise.
func (s *AnalyzeService) writeCategoryRanking(b *strings.Builder, tbl *table.Table, catCol, valueCol *table.Column) ([]categoryEntry, bool) {
	if catCol == nil {
		return nil, false
	}

	groups := make(map[string]*categoryEntry)
	order := make([]string, 0)
	for i := 0; i < tbl.RowCount(); i++ {
		cell := catCol.Cells[i]
		if cell.IsMissing {
			continue
		}
		name := cell.String()
		entry, exists := groups[name]
		if !exists {
			entry = &categoryEntry{Name: name}
			groups[name] = entry
			order = append(order, name)
		}
		entry.Count++
		if valueCol != nil {
			if v, ok := valueCol.Cells[i].Float(); ok {
				entry.Total += v
			}
		}
	}
	if len(groups) == 0 {
		return nil, false
	}

	rankedByValue := valueCol != nil
	entries := make([]categoryEntry, 0, len(groups))
	for _, name := range order {
		entries = append(entries, *groups[name])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if rankedByValue {
			if entries[i].Total != entries[j].Total {
				return entries[i].Total > entries[j].Total
			}
		} else if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}

	fmt.Fprintf(b, "## 🏷️ Top 10 by %s\n", catCol.Name)
	if rankedByValue {
		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{e.Name, formatFloat(e.Total)}
		}
		b.WriteString(markdownTable([]string{catCol.Name, "Total"}, rows))
	} else {
		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{e.Name, formatInt(e.Count)}
		}
		b.WriteString(markdownTable([]string{catCol.Name, "Count"}, rows))
	}
	b.WriteString("\n")
	return entries, rankedByValue
}

// writeOutliers reports IQR outliers over the value column. The bounds are
// inclusive: values exactly on Q1-1.5*IQR or Q3+1.5*IQR are normal.
func (s *AnalyzeService) writeOutliers(b *strings.Builder, valueCol *table.Column) {
	if valueCol == nil {
		return
	}
	data := valueCol.Floats()
	quartiles, err := stats.Quartile(data)
	if err != nil {
		return
	}

	lower, upper := outlierBounds(quartiles.Q1, quartiles.Q3)
	outliers := countOutliers(data, lower, upper)

	b.WriteString("## ⚠️ Outliers Detected\n")
	fmt.Fprintf(b, "- %s transactions outside the typical range (IQR method)\n", formatInt(outliers))
	if outliers > 0 {
		fmt.Fprintf(b, "- Normal range: %s to %s\n", formatFloat(lower), formatFloat(upper))
	}
	b.WriteString("\n")
}

// outlierBounds returns the inclusive [Q1-1.5*IQR, Q3+1.5*IQR] window
func outlierBounds(q1, q3 float64) (float64, float64) {
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// countOutliers counts values strictly outside the inclusive window
func countOutliers(data []float64, lower, upper float64) int {
	n := 0
	for _, v := range data {
		if v < lower || v > upper {
			n++
		}
	}
	return n
}

// writeChart renders exactly one chart: monthly trend when available, then
// top categories by value, then column means as the fallback. A rendering
// failure degrades to a warning line and leaves the report intact.
func (s *AnalyzeService) writeChart(ctx context.Context, b *strings.Builder, tbl *table.Table, valueCol, catCol *table.Column, trend []monthBucket, ranking []categoryEntry, rankedByValue bool) {
	spec, ok := s.chartSpec(tbl, valueCol, catCol, trend, ranking, rankedByValue)
	if !ok {
		b.WriteString("⚠️ Chart not generated: no numeric data to plot\n")
		return
	}

	path, err := s.charts.RenderBar(ctx, spec)
	if err != nil {
		s.log.Warn("[Analyze] chart rendering failed: %v", err)
		fmt.Fprintf(b, "⚠️ Chart not generated: %v\n", err)
		return
	}
	fmt.Fprintf(b, "## 📈 Chart\nSaved to: `%s`\n", path)
}

func (s *AnalyzeService) chartSpec(tbl *table.Table, valueCol, catCol *table.Column, trend []monthBucket, ranking []categoryEntry, rankedByValue bool) (ports.BarChartSpec, bool) {
	if len(trend) > 0 {
		spec := ports.BarChartSpec{
			Title:  fmt.Sprintf("Monthly Revenue (%s)", valueCol.Name),
			XLabel: "Month",
			YLabel: valueCol.Name,
		}
		for _, m := range trend {
			spec.Labels = append(spec.Labels, m.Month.Format("2006-01"))
			spec.Values = append(spec.Values, m.Total)
		}
		return spec, true
	}

	if rankedByValue && len(ranking) > 0 {
		spec := ports.BarChartSpec{
			Title:      fmt.Sprintf("Top 10 %s by %s", catCol.Name, valueCol.Name),
			XLabel:     valueCol.Name,
			Horizontal: true,
		}
		for _, e := range ranking {
			spec.Labels = append(spec.Labels, e.Name)
			spec.Values = append(spec.Values, e.Total)
		}
		return spec, true
	}

	numeric := tbl.NumericColumns()
	if len(numeric) == 0 {
		return ports.BarChartSpec{}, false
	}
	spec := ports.BarChartSpec{Title: "Numeric column means"}
	for _, col := range numeric {
		mean, err := stats.Mean(col.Floats())
		if err != nil {
			continue
		}
		spec.Labels = append(spec.Labels, col.Name)
		spec.Values = append(spec.Values, mean)
	}
	if len(spec.Values) == 0 {
		return ports.BarChartSpec{}, false
	}
	return spec, true
}
