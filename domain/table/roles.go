package table

import (
	"strings"
)

// Role is a semantic job a column can play in a sales-like dataset
type Role string

const (
	RoleValue    Role = "value"
	RoleDate     Role = "date"
	RoleCategory Role = "category"
)

// RoleAssignment names at most one column per role; empty means no match
type RoleAssignment struct {
	Value    string `json:"value_column,omitempty"`
	Date     string `json:"date_column,omitempty"`
	Category string `json:"category_column,omitempty"`
}

// roleKeywords is the fixed detection vocabulary, evaluated in this order.
// Roles resolve independently: a name like "categoria_valor" may win more
// than one role.
var roleKeywords = []struct {
	role     Role
	keywords []string
}{
	{RoleValue, []string{"total", "valor", "receita", "faturamento", "preco", "price"}},
	{RoleDate, []string{"data", "date", "dt_", "_dt", "periodo"}},
	{RoleCategory, []string{"categoria", "produto", "vendedor", "status", "cidade"}},
}

// DetectRoles scans column names left to right and assigns the first name
// containing any keyword of each role. No match leaves the role unassigned.
func DetectRoles(columns []string) RoleAssignment {
	var out RoleAssignment
	for _, rk := range roleKeywords {
		match := firstMatch(columns, rk.keywords)
		switch rk.role {
		case RoleValue:
			out.Value = match
		case RoleDate:
			out.Date = match
		case RoleCategory:
			out.Category = match
		}
	}
	return out
}

func firstMatch(columns, keywords []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return col
			}
		}
	}
	return ""
}
