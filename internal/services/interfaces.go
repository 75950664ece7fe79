package services

import (
	"io"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/store"
)

// CategoryServicer defines the contract for the category registry.
type CategoryServicer interface {
	List() ([]string, error)
	Add(name string) (string, error)
	Delete(name string) error
	Ensure(st store.Store, name string) error
}

// NewTransaction holds the fields of a ledger entry to be recorded.
type NewTransaction struct {
	MonthYear     string
	Date          time.Time
	Type          models.TransactionType
	Description   string
	Category      string
	Amount        int64
	PaymentMethod string
}

// UpdateTransaction holds the fields to change on a ledger entry. Nil
// fields are left untouched.
type UpdateTransaction struct {
	Date          *time.Time
	Type          *models.TransactionType
	Description   *string
	Category      *string
	Amount        *int64
	PaymentMethod *string
}

// LedgerServicer defines the contract for the month-partitioned ledger.
type LedgerServicer interface {
	AddTransaction(in NewTransaction) (*models.Transaction, error)
	AddTransfer(monthYear string, amount int64, from, to string) ([]models.Transaction, error)
	ListForMonth(monthYear string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransaction(monthYear, id string) (*models.Transaction, error)
	UpdateTransaction(monthYear, id string, in UpdateTransaction) (*models.Transaction, error)
	DeleteTransaction(monthYear, id string) error
	MonthlyBalance(monthYear string) (*models.Totals, error)
	BalanceByMethod(monthYear, method string) (*models.Totals, error)
	ExpensesByCategory(monthYear string) ([]models.CategoryAmount, error)

	// Record validates in and writes it through st, ensuring its category.
	// It is meant to be called inside another service's unit of work.
	Record(st store.Store, in NewTransaction) (*models.Transaction, error)
}

// BudgetServicer defines the contract for monthly category limits.
type BudgetServicer interface {
	SetLimit(monthYear, category string, limit int64) (*models.Budget, error)
	GetForMonth(monthYear string) ([]models.Budget, error)
	CheckExceeded(monthYear string) ([]models.BudgetExceeded, error)
	Delete(monthYear, category string) error
}

// LoanServicer defines the contract for the loan lifecycle.
type LoanServicer interface {
	Register(loanType models.LoanType, party string, originalValue int64, interestRate float64, numInstallments int) (*models.Loan, error)
	RecordInstallmentPayment(loanID, monthYear string, amountPaid int64) (*models.Loan, error)
	Delete(loanID string) error
	ListActive() ([]models.Loan, error)
	List() ([]models.Loan, error)
	GetDetails(loanID string) (*models.Loan, error)
}

// NewDebt holds the fields of a debt to be scheduled.
type NewDebt struct {
	Description      string
	Value            int64
	DueDate          time.Time
	Status           models.DebtStatus
	Recurrence       models.Recurrence
	RecurrenceMonths int
	Category         string
}

// UpdateDebt holds the fields to change on one debt occurrence.
type UpdateDebt struct {
	Description *string
	Value       *int64
	DueDate     *time.Time
	Status      *models.DebtStatus
	Category    *string
}

// DebtServicer defines the contract for scheduled debts.
type DebtServicer interface {
	AddDebt(in NewDebt) ([]models.Debt, error)
	GetAll(monthYearFilter string) ([]models.Debt, error)
	GetUpcomingOrOverdue(daysAhead int) ([]models.Debt, error)
	MarkAsPaid(debtID, ledgerMonthYear string) (*models.Debt, error)
	UpdateDebt(debtID string, in UpdateDebt) (*models.Debt, error)
	DeleteDebt(debtID string) error
}

// Summary aggregates the ledger over a date range.
type Summary struct {
	StartDate          time.Time               `json:"start_date"`
	EndDate            time.Time               `json:"end_date"`
	Category           string                  `json:"category,omitempty"`
	TotalGains         int64                   `json:"total_gains"`
	TotalExpenses      int64                   `json:"total_expenses"`
	NetBalance         int64                   `json:"net_balance"`
	ExpensesByCategory []models.CategoryAmount `json:"expenses_by_category"`
	GainsByCategory    []models.CategoryAmount `json:"gains_by_category"`
}

// ReportServicer defines the contract for period reports.
type ReportServicer interface {
	Summary(start, end time.Time, category string) (*Summary, error)
	ExportCSV(summary *Summary, w io.Writer) error
	ExportPDF(summary *Summary, w io.Writer) error
}

// AuditServicer records API mutations and reads them back.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
	Recent(resourceType string, limit int) ([]models.AuditLog, error)
}
