package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclaw/adapters/ingest"
	"dataclaw/adapters/ingest/coercer"
)

func newInfoService(sampleRows int) *InfoService {
	return NewInfoService(ingest.NewPipeline(coercer.DefaultConfig()), sampleRows)
}

func TestInfoReportsTypesAndNullRates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.csv")
	content := "Total;Produto\n10,5;Notebook\n;Mouse\n20,0;\n30,0;Teclado\n"
	require.NoError(t, writeTestFile(path, content))

	result, err := newInfoService(1000).Info(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Rows)
	assert.Equal(t, 2, result.Columns)

	report := result.Report
	assert.Contains(t, report, "# 🔍 Diagnostic: v.csv")
	assert.Contains(t, report, "**Rows sampled**: 4 | **Columns**: 2")

	lines := strings.Split(report, "\n")
	var totalLine, produtoLine string
	for _, line := range lines {
		if strings.HasPrefix(line, "| Total ") {
			totalLine = line
		}
		if strings.HasPrefix(line, "| Produto ") {
			produtoLine = line
		}
	}
	require.NotEmpty(t, totalLine)
	require.NotEmpty(t, produtoLine)

	// one empty cell out of four
	assert.Contains(t, totalLine, "numeric")
	assert.Contains(t, totalLine, "25.0%")
	assert.Contains(t, totalLine, "10.5")
	assert.Contains(t, produtoLine, "text")
	assert.Contains(t, produtoLine, "Notebook")
}

func TestInfoBoundsTheSample(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.csv")

	var b strings.Builder
	b.WriteString("a;b\n")
	for i := 0; i < 1500; i++ {
		b.WriteString("1;x\n")
	}
	require.NoError(t, writeTestFile(path, b.String()))

	result, err := newInfoService(1000).Info(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1000, result.Rows)
}

func TestInfoTruncatesExamples(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.csv")
	long := strings.Repeat("x", 60)
	require.NoError(t, writeTestFile(path, "nome\n"+long+"\n"))

	result, err := newInfoService(1000).Info(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, result.Report, strings.Repeat("x", 30))
	assert.NotContains(t, result.Report, strings.Repeat("x", 31))
}

func TestInfoEmptyColumnShowsPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, writeTestFile(path, "a;vazia\n1;\n2;\n"))

	result, err := newInfoService(1000).Info(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, result.Report, "| vazia | text | 100.0% | — |")
}
