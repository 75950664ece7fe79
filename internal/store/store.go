// Package store persists loans, debts, ledger transactions, categories and
// budgets. Transactions are partitioned by their "MM-YYYY" key.
//
// Store methods return raw storage errors. A missing row is reported as
// ErrNotFound so services can translate it without knowing about gorm.
package store

import (
	"errors"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence contract used by the services.
type Store interface {
	// Atomic runs fn inside one database transaction. Every write made
	// through the Store passed to fn is rolled back if fn returns an error.
	Atomic(fn func(Store) error) error

	InsertLoan(loan *models.Loan) error
	UpdateLoan(id string, fields map[string]any) error
	DeleteLoan(id string) error
	ListLoans() ([]models.Loan, error)
	GetLoan(id string) (*models.Loan, error)

	InsertDebt(debt *models.Debt) error
	UpdateDebt(id string, fields map[string]any) error
	DeleteDebt(id string) error
	ListDebts() ([]models.Debt, error)
	GetDebt(id string) (*models.Debt, error)

	InsertTransaction(partition string, t *models.Transaction) error
	ListTransactions(partition string) ([]models.Transaction, error)
	PageTransactions(partition string, page pagination.PageRequest) ([]models.Transaction, int64, error)
	ListPartitions() ([]string, error)
	GetTransaction(partition, id string) (*models.Transaction, error)
	UpdateTransaction(partition, id string, fields map[string]any) error
	DeleteTransaction(partition, id string) error

	ListCategories() ([]string, error)
	AddCategory(name string) error
	RemoveCategory(name string) error
	HasCategory(name string) (bool, error)

	UpsertBudget(budget *models.Budget) error
	ListBudgets(monthYear string) ([]models.Budget, error)
	DeleteBudget(monthYear, category string) error

	InsertAuditLog(entry *models.AuditLog) error
	ListAuditLogs(resourceType string, limit int) ([]models.AuditLog, error)
}
