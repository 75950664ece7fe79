package testutil_test

import (
	"testing"
	"time"

	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"categories", "transactions", "budgets", "loans", "debts", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}

	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count categories: %v", err)
	}
	if count != int64(len(models.ProtectedCategories)) {
		t.Errorf("expected %d seeded categories, got %d", len(models.ProtectedCategories), count)
	}
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestCategoryWithName(t, first, "Only Here")

	var count int64
	second.Model(&models.Category{}).Where("name = ?", "Only Here").Count(&count)
	if count != 0 {
		t.Error("test databases should not share rows")
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	loan := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 100000, 10, 10)
	if loan.ID == "" {
		t.Fatal("loan should have an ID")
	}
	if loan.Status != models.LoanStatusOpen {
		t.Errorf("expected open loan, got %s", loan.Status)
	}

	closed := testutil.CreateTestClosedLoan(t, db, models.LoanTypeGranted)
	var stored models.Loan
	db.First(&stored, "id = ?", closed.ID)
	if stored.Status != models.LoanStatusClosed || stored.OriginalValue != 0 {
		t.Errorf("expected closed loan with zero value, got %+v", stored)
	}

	debt := testutil.CreateTestDebt(t, db, 5000, testutil.Date(2025, time.June, 5), models.DebtStatusOpen)
	if debt.DueDate.Hour() != 0 {
		t.Errorf("expected midnight due date, got %s", debt.DueDate)
	}

	tx := testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "Lazer", 2500, testutil.Date(2025, time.June, 12))
	if tx.MonthYear != "06-2025" {
		t.Errorf("expected partition 06-2025, got %s", tx.MonthYear)
	}

	budget := testutil.CreateTestBudget(t, db, "06-2025", "Lazer", 10000)
	if budget.Limit != 10000 {
		t.Errorf("expected limit 10000, got %d", budget.Limit)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrLoanNotFound, "custom message")
	testutil.AssertAppError(t, err, "LOAN_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

func TestAssertCents(t *testing.T) {
	testutil.AssertCents(t, "zero", 0, 0)
	testutil.AssertCents(t, "balance", -20000, -20000)
}
