package app

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// reports use English digit grouping (1,234,567.89) regardless of the
// decimal-comma input convention
var printer = message.NewPrinter(language.English)

func formatInt(n int) string {
	return printer.Sprintf("%d", n)
}

func formatFloat(f float64) string {
	return printer.Sprintf("%.2f", f)
}

// markdownTable renders a pipe table with a header row. Cell text is
// sanitized so stray pipes or newlines cannot break the layout.
func markdownTable(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(sanitizeCells(headers), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("--------|", len(headers)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(sanitizeCells(row), " | ") + " |\n")
	}
	return b.String()
}

func sanitizeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "\n", " ")
		c = strings.ReplaceAll(c, "|", "/")
		out[i] = c
	}
	return out
}

// truncate limits s to max runes, appending nothing
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
