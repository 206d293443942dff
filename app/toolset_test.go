package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclaw/adapters/chart"
	"dataclaw/adapters/ingest"
	"dataclaw/adapters/ingest/coercer"
	"dataclaw/internal/testkit"
	"dataclaw/models"
)

type memoryAudit struct {
	mu   sync.Mutex
	runs []*models.RunRecord
}

func (m *memoryAudit) RecordRun(_ context.Context, run *models.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func newToolsetFixture(t *testing.T, audit *memoryAudit) (*Toolset, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vendas.csv")
	cfg := testkit.DefaultSalesConfig()
	cfg.Rows = 200
	cfg.DuplicateHead = 20
	require.NoError(t, testkit.NewSalesGenerator(cfg).WriteCSV(path))

	pipeline := ingest.NewPipeline(coercer.DefaultConfig())
	analyze := NewAnalyzeService(pipeline, chart.NewRenderer(dir), 8)
	clean := NewCleanService(dir)
	info := NewInfoService(pipeline, 1000)
	if audit == nil {
		return NewToolset(analyze, clean, info, nil), path
	}
	return NewToolset(analyze, clean, info, audit), path
}

func TestToolsetNeverRaises(t *testing.T) {
	toolset, _ := newToolsetFixture(t, nil)
	missing := "/definitely/not/here.csv"

	out := toolset.AnalyzeCSV(context.Background(), missing, "")
	assert.Contains(t, out, "❌ Analysis error")
	assert.Contains(t, out, "file not found")
	assert.Contains(t, out, "check the file path")

	out = toolset.CleanCSV(context.Background(), missing, "")
	assert.Contains(t, out, "❌ Cleaning error")

	out = toolset.CSVInfo(context.Background(), missing)
	assert.Contains(t, out, "❌ Diagnostic error")
}

func TestToolsetDefaultsTheQuestion(t *testing.T) {
	toolset, path := newToolsetFixture(t, nil)
	out := toolset.AnalyzeCSV(context.Background(), path, "")
	assert.Contains(t, out, "## 🤖 Question: "+DefaultQuestion)
}

func TestToolsetEchoesTheQuestionVerbatim(t *testing.T) {
	toolset, path := newToolsetFixture(t, nil)
	question := "qual vendedor teve o maior faturamento?"
	out := toolset.AnalyzeCSV(context.Background(), path, question)
	assert.Contains(t, out, "## 🤖 Question: "+question)
}

func TestToolsetRecordsAuditRuns(t *testing.T) {
	audit := &memoryAudit{}
	toolset, path := newToolsetFixture(t, audit)

	toolset.CSVInfo(context.Background(), path)
	toolset.AnalyzeCSV(context.Background(), "/missing.csv", "")

	require.Len(t, audit.runs, 2)
	assert.Equal(t, "csv_info", audit.runs[0].Tool)
	assert.Equal(t, models.OutcomeOK, audit.runs[0].Outcome)
	assert.Equal(t, 220, audit.runs[0].RowCount)
	assert.Equal(t, "analyze_csv", audit.runs[1].Tool)
	assert.Equal(t, models.OutcomeError, audit.runs[1].Outcome)
	assert.False(t, audit.runs[0].RunID.IsEmpty())
}
