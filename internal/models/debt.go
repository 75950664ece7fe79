package models

import "time"

// DebtStatus is the payment state of a scheduled debt.
type DebtStatus string

const (
	DebtStatusOpen    DebtStatus = "open"
	DebtStatusPaid    DebtStatus = "paid"
	DebtStatusOverdue DebtStatus = "overdue"
)

// Valid reports whether s is a known debt status.
func (s DebtStatus) Valid() bool {
	switch s {
	case DebtStatusOpen, DebtStatusPaid, DebtStatusOverdue:
		return true
	}
	return false
}

// Recurrence describes how a new debt expands into occurrences.
type Recurrence string

const (
	RecurrenceOnce    Recurrence = "once"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether r is a known recurrence.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Debt is a future obligation with a due date. Recurring debts are stored
// as one row per occurrence.
type Debt struct {
	Base
	Description      string     `gorm:"not null" json:"description"`
	Value            int64      `gorm:"not null" json:"value"`
	DueDate          time.Time  `gorm:"not null;index" json:"due_date"`
	Status           DebtStatus `gorm:"size:16;not null;index" json:"status"`
	Recurrence       Recurrence `gorm:"size:16;not null" json:"recurrence"`
	RecurrenceMonths int        `gorm:"not null;default:0" json:"recurrence_months"`
	Category         string     `gorm:"size:100;not null" json:"category"`
}
