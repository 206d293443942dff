package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
)

// SalesConfig configures the dirty sales data generator. The Every fields
// inject one pathology per N rows; zero disables that pathology.
type SalesConfig struct {
	Rows              int
	DuplicateHead     int // rows from the top re-appended as exact duplicates
	Seed              int64
	BadDateEvery      int // unparseable date text
	TextQuantityEvery int // "dez" where a number belongs
	MissingValueEvery int // empty unit value cell
	BlankStatusEvery  int
}

// DefaultSalesConfig returns a compact version of the reference fixture:
// mixed date formats, duplicated head rows, text in numeric columns and
// scattered blanks.
func DefaultSalesConfig() SalesConfig {
	return SalesConfig{
		Rows:              2000,
		DuplicateHead:     500,
		Seed:              42,
		BadDateEvery:      7,
		TextQuantityEvery: 19,
		MissingValueEvery: 13,
		BlankStatusEvery:  31,
	}
}

// SalesGenerator produces deterministic dirty sales tables for tests
type SalesGenerator struct {
	config SalesConfig
	rng    *rand.Rand
}

// NewSalesGenerator creates a generator seeded from the config
func NewSalesGenerator(config SalesConfig) *SalesGenerator {
	return &SalesGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	products   = []string{"Notebook Dell", "iPhone 15", "Monitor LG", "Teclado Mecânico", "Mouse Logitech"}
	categories = []string{"Eletrônicos", "Acessórios", "Periféricos"}
	statuses   = []string{"Concluída", "Pendente", "Cancelada"}
	cities     = []string{"São Paulo", "Rio de Janeiro", "Belo Horizonte", "Curitiba", "Porto Alegre"}
	sellers    = []string{"João", "Maria", "Pedro", "Ana", "Carlos"}
	dateStyles = []string{"02/01/2006", "2006-01-02", "02-01-2006"}
)

// Headers returns the sales schema column names
func (g *SalesGenerator) Headers() []string {
	return []string{
		"ID_Venda", "Data", "Cliente", "Produto", "Categoria",
		"Valor_Unitario", "Quantidade", "Total_Venda", "Desconto_Pct",
		"Status", "Cidade", "Vendedor",
	}
}

// Rows generates the full dirty table, duplicated head rows included
func (g *SalesGenerator) Rows() [][]string {
	rows := make([][]string, 0, g.config.Rows+g.config.DuplicateHead)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < g.config.Rows; i++ {
		date := start.AddDate(0, 0, g.rng.Intn(365)).Format(dateStyles[g.rng.Intn(len(dateStyles))])
		if every(i, g.config.BadDateEvery) {
			date = "inválida"
		}

		unit := decimalComma(fmt.Sprintf("%.2f", 89.9+g.rng.Float64()*8910))
		if every(i, g.config.MissingValueEvery) {
			unit = ""
		}

		quantity := fmt.Sprintf("%d", 1+g.rng.Intn(15))
		if every(i, g.config.TextQuantityEvery) {
			quantity = "dez"
		}

		status := statuses[g.rng.Intn(len(statuses))]
		if every(i, g.config.BlankStatusEvery) {
			status = ""
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			date,
			fmt.Sprintf("Cliente_%d", 1000+g.rng.Intn(9000)),
			products[g.rng.Intn(len(products))],
			categories[g.rng.Intn(len(categories))],
			unit,
			quantity,
			decimalComma(fmt.Sprintf("%.2f", 100+g.rng.Float64()*14900)),
			decimalComma(fmt.Sprintf("%.1f", g.rng.Float64()*30)),
			status,
			cities[g.rng.Intn(len(cities))],
			sellers[g.rng.Intn(len(sellers))],
		})
	}

	dup := g.config.DuplicateHead
	if dup > len(rows) {
		dup = len(rows)
	}
	for i := 0; i < dup; i++ {
		rows = append(rows, rows[i])
	}
	return rows
}

// WriteCSV writes the table to path in the semicolon/decimal-comma/utf-8
// layout the ingestion pipeline assumes.
func (g *SalesGenerator) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(g.Headers()); err != nil {
		return err
	}
	if err := w.WriteAll(g.Rows()); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func every(i, n int) bool {
	return n > 0 && i%n == 0
}

func decimalComma(s string) string {
	return strings.ReplaceAll(s, ".", ",")
}
