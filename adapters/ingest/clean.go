package ingest

import (
	"strings"
)

// CleanRecords removes exact-duplicate rows and rows whose cells are all
// empty, preserving first occurrences and original order.
func CleanRecords(rows [][]string) [][]string {
	seen := make(map[string]struct{}, len(rows))
	kept := rows[:0:0]
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}
	return kept
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
