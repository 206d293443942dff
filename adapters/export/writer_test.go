package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTableCSVUsesSemicolonsAndPadsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	headers := []string{"a", "b", "c"}
	rows := [][]string{
		{"1", "2", "3"},
		{"4"},
		{"5", "6", "7", "extra"},
	}

	require.NoError(t, WriteTable(path, headers, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, headers, records[0])
	assert.Equal(t, []string{"1", "2", "3"}, records[1])
	assert.Equal(t, []string{"4", "", ""}, records[2])
	assert.Equal(t, []string{"5", "6", "7"}, records[3])
}

func TestWriteTableXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	headers := []string{"Produto", "Total"}
	rows := [][]string{
		{"Notebook", "1500,00"},
		{"Mouse", "80,00"},
	}

	require.NoError(t, WriteTable(path, headers, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	got, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, headers, got[0])
	assert.Equal(t, []string{"Notebook", "1500,00"}, got[1])
}
