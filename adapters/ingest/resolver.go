package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"dataclaw/domain/core"
	"dataclaw/internal"
)

// RawFrame is the untyped result of file resolution: a header plus raw
// string rows, alive only until coercion runs.
type RawFrame struct {
	Headers      []string
	Rows         [][]string
	Encoding     string
	Delimiter    rune
	SkippedLines int
}

// Resolver turns an unknown delimited file into a RawFrame. It tries a
// fixed encoding sequence with the primary semicolon delimiter, then falls
// back to delimiter auto-detection. Malformed lines are skipped, never
// fatal; only an exhausted fallback chain fails.
type Resolver struct {
	log *internal.Logger
}

// NewResolver creates a resolver
func NewResolver() *Resolver {
	return &Resolver{log: internal.DefaultLogger}
}

// encodings tried against the primary semicolon format, in order
var encodings = []string{"utf-8", "latin-1", "cp1252"}

// Resolve loads the file through the full fallback chain and returns a
// deduplicated frame with fully empty rows removed.
func (r *Resolver) Resolve(path string) (*RawFrame, error) {
	path = ExpandUser(path)
	if _, err := os.Stat(path); err != nil {
		return nil, core.NewFileNotFoundError(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewUnreadableFileError(path, err)
	}

	var frame *RawFrame
	for _, enc := range encodings {
		text, decErr := decode(data, enc)
		if decErr != nil {
			r.log.Debug("[Resolver] %s decode failed for %s: %v", enc, filepath.Base(path), decErr)
			continue
		}
		f, parseErr := parseRecords(text, ';')
		if parseErr != nil {
			r.log.Debug("[Resolver] %s parse failed for %s: %v", enc, filepath.Base(path), parseErr)
			continue
		}
		f.Encoding = enc
		frame = f
		break
	}

	if frame == nil {
		// Fallback: auto-detected delimiter, utf-8, dot decimal
		text := string(data)
		delim := sniffDelimiter(text)
		f, parseErr := parseRecords(text, delim)
		if parseErr != nil {
			return nil, core.NewUnreadableFileError(path, parseErr)
		}
		f.Encoding = "utf-8"
		frame = f
	}

	frame.Rows = CleanRecords(frame.Rows)
	r.log.Info("[Resolver] %s resolved (%s, %q): %d columns, %d rows, %d lines skipped",
		filepath.Base(path), frame.Encoding, frame.Delimiter, len(frame.Headers), len(frame.Rows), frame.SkippedLines)
	return frame, nil
}

// ResolveFixed loads the file under the fixed semicolon/utf-8 assumption
// with no fallback chain. maxRows < 0 means unbounded. Rows are returned
// as parsed: no deduplication, no blank-row removal.
func (r *Resolver) ResolveFixed(path string, maxRows int) (*RawFrame, error) {
	path = ExpandUser(path)
	if _, err := os.Stat(path); err != nil {
		return nil, core.NewFileNotFoundError(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewUnreadableFileError(path, err)
	}
	text, err := decode(data, "utf-8")
	if err != nil {
		return nil, core.NewUnreadableFileError(path, err)
	}

	frame, err := parseRecordsBounded(text, ';', maxRows)
	if err != nil {
		return nil, core.NewUnreadableFileError(path, err)
	}
	frame.Encoding = "utf-8"
	return frame, nil
}

// ExpandUser replaces a leading ~ with the current user's home directory
func ExpandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func decode(data []byte, encoding string) (string, error) {
	switch encoding {
	case "utf-8":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid utf-8 byte sequence")
		}
		return string(data), nil
	case "latin-1":
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case "cp1252":
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown encoding %s", encoding)
	}
}

func parseRecords(text string, delim rune) (*RawFrame, error) {
	return parseRecordsBounded(text, delim, -1)
}

// parseRecordsBounded reads up to maxRows data rows. Individual malformed
// lines (csv parse errors, rows wider than the header) are counted and
// skipped rather than aborting the parse.
func parseRecordsBounded(text string, delim rune, maxRows int) (*RawFrame, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("no header row: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
		if headers[i] == "" {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	frame := &RawFrame{Headers: headers, Delimiter: delim}
	for maxRows < 0 || len(frame.Rows) < maxRows {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				frame.SkippedLines++
				continue
			}
			return nil, err
		}
		if len(record) > len(headers) {
			frame.SkippedLines++
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		frame.Rows = append(frame.Rows, record)
	}
	return frame, nil
}

// sniffDelimiter picks the candidate delimiter that appears most
// consistently across the first lines of the file.
func sniffDelimiter(text string) rune {
	candidates := []rune{',', ';', '\t', '|'}
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	best := ','
	bestScore := -1
	for _, cand := range candidates {
		score := delimiterScore(lines, cand)
		if score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return best
}

// delimiterScore is the minimum per-line occurrence count, so a delimiter
// only scores when it shows up on every sampled line.
func delimiterScore(lines []string, delim rune) int {
	score := -1
	sampled := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sampled++
		n := strings.Count(line, string(delim))
		if score < 0 || n < score {
			score = n
		}
	}
	if sampled == 0 {
		return 0
	}
	return score
}
