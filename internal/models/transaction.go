package models

import "time"

// TransactionType represents the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeGain    TransactionType = "gain"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeGain || t == TransactionTypeExpense
}

// Payment methods the core writes. Callers may store any other label.
const (
	PaymentMethodAccount = "account"
	PaymentMethodCash    = "cash_in_hand"
)

// Transaction is one ledger entry, stored in the partition of its MonthYear.
type Transaction struct {
	Base
	MonthYear     string          `gorm:"size:7;not null;index" json:"month_year"`
	Date          time.Time       `gorm:"not null" json:"date"`
	Type          TransactionType `gorm:"size:16;not null" json:"type"`
	Description   string          `gorm:"not null" json:"description"`
	Category      string          `gorm:"size:100;not null" json:"category"`
	Amount        int64           `gorm:"not null" json:"amount"`
	PaymentMethod string          `gorm:"size:50;not null;default:'account'" json:"payment_method"`
	TransferID    *string         `gorm:"size:36;index" json:"transfer_id,omitempty"`
}

// Totals aggregates gains and expenses of a set of transactions.
type Totals struct {
	Gains    int64 `json:"gains"`
	Expenses int64 `json:"expenses"`
	Balance  int64 `json:"balance"`
}

// Add accumulates t into the totals.
func (s *Totals) Add(t Transaction) {
	switch t.Type {
	case TransactionTypeGain:
		s.Gains += t.Amount
	case TransactionTypeExpense:
		s.Expenses += t.Amount
	}
	s.Balance = s.Gains - s.Expenses
}

// CategoryAmount is a per-category total.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}
