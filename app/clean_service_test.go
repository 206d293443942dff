package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclaw/adapters/ingest"
	"dataclaw/adapters/ingest/coercer"
	"dataclaw/internal/testkit"
)

func TestCleanRemovesExactlyTheDuplicatedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendas.csv")
	cfg := testkit.DefaultSalesConfig()
	cfg.Rows = 600
	cfg.DuplicateHead = 500
	require.NoError(t, testkit.NewSalesGenerator(cfg).WriteCSV(path))

	result, err := NewCleanService(dir).Clean(context.Background(), path, "cleaned.csv")
	require.NoError(t, err)
	assert.Equal(t, 1100, result.Before)
	assert.Equal(t, 600, result.After)
	assert.Equal(t, 500, result.Removed())
}

func TestCleanIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendas.csv")
	cfg := testkit.DefaultSalesConfig()
	cfg.Rows = 300
	require.NoError(t, testkit.NewSalesGenerator(cfg).WriteCSV(path))

	svc := NewCleanService(dir)
	first, err := svc.Clean(context.Background(), path, "pass1.csv")
	require.NoError(t, err)
	require.Greater(t, first.Removed(), 0)

	second, err := svc.Clean(context.Background(), first.OutputPath, "pass2.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Removed(), "cleaning its own output must remove nothing")
}

func TestCleanOutputRoundTripsThroughIngestion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendas.csv")
	require.NoError(t, testkit.NewSalesGenerator(testkit.DefaultSalesConfig()).WriteCSV(path))

	result, err := NewCleanService(dir).Clean(context.Background(), path, "cleaned.csv")
	require.NoError(t, err)

	tbl, err := ingest.NewPipeline(coercer.DefaultConfig()).Ingest(context.Background(), result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, result.After, tbl.RowCount())
}

func TestCleanRemovesBlankRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blanks.csv")
	require.NoError(t, writeTestFile(path, "a;b\n1;2\n;\n3;4\n"))

	result, err := NewCleanService(dir).Clean(context.Background(), path, "out.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Before)
	assert.Equal(t, 2, result.After)
}

func TestCleanWritesXLSXWhenAsked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendas.csv")
	cfg := testkit.DefaultSalesConfig()
	cfg.Rows = 50
	require.NoError(t, testkit.NewSalesGenerator(cfg).WriteCSV(path))

	result, err := NewCleanService(dir).Clean(context.Background(), path, "cleaned.xlsx")
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(result.OutputPath))
}

func TestCleanMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewCleanService(dir).Clean(context.Background(), filepath.Join(dir, "nope.csv"), "")
	require.Error(t, err)
}

func TestCleanDefaultsOutputName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v.csv")
	require.NoError(t, writeTestFile(path, "a;b\n1;2\n"))

	result, err := NewCleanService(dir).Clean(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, "cleaned.csv", filepath.Base(result.OutputPath))
}
