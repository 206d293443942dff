package table

import (
	"testing"
)

func TestDetectRolesSalesSchema(t *testing.T) {
	roles := DetectRoles([]string{"ID_Venda", "Data", "Total_Venda", "Categoria"})

	if roles.Value != "Total_Venda" {
		t.Errorf("value role = %q, want Total_Venda", roles.Value)
	}
	if roles.Date != "Data" {
		t.Errorf("date role = %q, want Data", roles.Date)
	}
	if roles.Category != "Categoria" {
		t.Errorf("category role = %q, want Categoria", roles.Category)
	}
}

func TestDetectRolesIsOrderIndependentForSingleMatches(t *testing.T) {
	permutations := [][]string{
		{"ID_Venda", "Data", "Total_Venda", "Categoria"},
		{"Categoria", "Total_Venda", "Data", "ID_Venda"},
		{"Total_Venda", "ID_Venda", "Categoria", "Data"},
	}
	for _, cols := range permutations {
		roles := DetectRoles(cols)
		if roles.Value != "Total_Venda" || roles.Date != "Data" || roles.Category != "Categoria" {
			t.Errorf("DetectRoles(%v) = %+v", cols, roles)
		}
	}
}

func TestDetectRolesFirstMatchWins(t *testing.T) {
	roles := DetectRoles([]string{"Preco_Unitario", "Total_Venda"})
	if roles.Value != "Preco_Unitario" {
		t.Errorf("value role = %q, want first matching column", roles.Value)
	}

	roles = DetectRoles([]string{"Total_Venda", "Preco_Unitario"})
	if roles.Value != "Total_Venda" {
		t.Errorf("value role = %q, want first matching column", roles.Value)
	}
}

func TestDetectRolesAbsentIsNotAnError(t *testing.T) {
	roles := DetectRoles([]string{"foo", "bar"})
	if roles.Value != "" || roles.Date != "" || roles.Category != "" {
		t.Errorf("expected no assignments, got %+v", roles)
	}
}

func TestDetectRolesMatchIsCaseInsensitive(t *testing.T) {
	roles := DetectRoles([]string{"TOTAL_VENDA", "DATA"})
	if roles.Value != "TOTAL_VENDA" || roles.Date != "DATA" {
		t.Errorf("got %+v", roles)
	}
}

func TestDetectRolesOverlapAcrossRoles(t *testing.T) {
	// Roles resolve independently: one column may win several of them.
	roles := DetectRoles([]string{"categoria_valor"})
	if roles.Value != "categoria_valor" {
		t.Errorf("value role = %q", roles.Value)
	}
	if roles.Category != "categoria_valor" {
		t.Errorf("category role = %q", roles.Category)
	}
	if roles.Date != "" {
		t.Errorf("date role = %q, want none", roles.Date)
	}
}
