package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/period"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a UTC midnight date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	cat := &models.Category{Name: name}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateTestLoan creates an open loan with no installments paid.
func CreateTestLoan(t *testing.T, db *gorm.DB, loanType models.LoanType, value int64, rate float64, installments int) *models.Loan {
	t.Helper()

	loan := &models.Loan{
		Type:            loanType,
		InvolvedParty:   fmt.Sprintf("Party %d", nextID()),
		OriginalValue:   value,
		InterestRate:    rate,
		NumInstallments: installments,
		Status:          models.LoanStatusOpen,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("failed to create test loan: %v", err)
	}
	return loan
}

// CreateTestClosedLoan creates a loan that is already closed.
func CreateTestClosedLoan(t *testing.T, db *gorm.DB, loanType models.LoanType) *models.Loan {
	t.Helper()

	loan := CreateTestLoan(t, db, loanType, 10000, 0, 2)
	if err := db.Model(loan).Updates(map[string]any{
		"status":            models.LoanStatusClosed,
		"original_value":    0,
		"installments_paid": 2,
	}).Error; err != nil {
		t.Fatalf("failed to close test loan: %v", err)
	}
	loan.Status = models.LoanStatusClosed
	loan.OriginalValue = 0
	loan.InstallmentsPaid = 2
	return loan
}

// CreateTestDebt creates a one-off debt due on the given date.
func CreateTestDebt(t *testing.T, db *gorm.DB, value int64, due time.Time, status models.DebtStatus) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		Description: fmt.Sprintf("Debt %d", nextID()),
		Value:       value,
		DueDate:     period.Date(due),
		Status:      status,
		Recurrence:  models.RecurrenceOnce,
		Category:    models.CategoryBills,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestTransaction creates a ledger entry in the partition of date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, category string, amount int64, date time.Time) *models.Transaction {
	t.Helper()
	return CreateTestTransactionWithMethod(t, db, txType, category, amount, date, models.PaymentMethodAccount)
}

// CreateTestTransactionWithMethod creates a ledger entry with the given payment method.
func CreateTestTransactionWithMethod(t *testing.T, db *gorm.DB, txType models.TransactionType, category string, amount int64, date time.Time, method string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		MonthYear:     period.MonthYear(date),
		Date:          period.Date(date),
		Type:          txType,
		Description:   fmt.Sprintf("Transaction %d", nextID()),
		Category:      category,
		Amount:        amount,
		PaymentMethod: method,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget limit for a month and category.
func CreateTestBudget(t *testing.T, db *gorm.DB, monthYear, category string, limit int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{MonthYear: monthYear, Category: category, Limit: limit}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
