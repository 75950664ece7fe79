package models

import "strings"

// Names of the categories the core writes to on its own.
const (
	CategoryLoans      = "Empréstimos"
	CategoryGains      = "Ganhos"
	CategoryFixedBills = "Contas Fixas"
	CategoryBills      = "Boletos"
	CategoryTransfer   = "Transferência"
)

// ProtectedCategories cannot be removed from the registry.
var ProtectedCategories = []string{
	CategoryLoans,
	CategoryGains,
	CategoryFixedBills,
	CategoryBills,
	CategoryTransfer,
}

// IsProtectedCategory reports whether name is one of ProtectedCategories.
// The comparison ignores case and surrounding whitespace.
func IsProtectedCategory(name string) bool {
	name = strings.TrimSpace(name)
	for _, p := range ProtectedCategories {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// Category is a named label for transactions, budgets and debts.
type Category struct {
	Base
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}
