package services

import (
	"math"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/testutil"
)

var loanClock = time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

func TestRegisterLoan(t *testing.T) {
	t.Run("received_records_gain", func(t *testing.T) {
		db, svcs := setupServices(t)
		fixClock(svcs, loanClock)

		loan, err := svcs.Loans.Register(models.LoanTypeReceived, "Ana", 100000, 10, 10)
		testutil.AssertNoError(t, err)

		if loan.Status != models.LoanStatusOpen || loan.InstallmentsPaid != 0 {
			t.Errorf("expected open loan with no installments paid, got %+v", loan)
		}

		var txs []models.Transaction
		db.Find(&txs)
		if len(txs) != 1 {
			t.Fatalf("expected exactly one ledger entry, got %d", len(txs))
		}
		tx := txs[0]
		if tx.Type != models.TransactionTypeGain || tx.Amount != 100000 || tx.Category != models.CategoryLoans {
			t.Errorf("unexpected ledger entry: %+v", tx)
		}
		if tx.MonthYear != "06-2025" {
			t.Errorf("expected partition of today, got %s", tx.MonthYear)
		}
		if tx.Description != "Loan Received - Ana" {
			t.Errorf("unexpected description %q", tx.Description)
		}
	})

	t.Run("granted_records_expense", func(t *testing.T) {
		db, svcs := setupServices(t)
		fixClock(svcs, loanClock)

		_, err := svcs.Loans.Register(models.LoanTypeGranted, "Bruno", 50000, 0, 5)
		testutil.AssertNoError(t, err)

		var tx models.Transaction
		db.First(&tx)
		if tx.Type != models.TransactionTypeExpense {
			t.Errorf("expected expense, got %s", tx.Type)
		}
	})

	t.Run("ledger_failure_leaves_no_loan", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fs := newFailingStore(db)
		fs.failTransactionInsert = true
		svcs := New(fs)

		_, err := svcs.Loans.Register(models.LoanTypeReceived, "Ana", 100000, 10, 10)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		if n := countRows(t, db, &models.Loan{}); n != 0 {
			t.Errorf("expected no loans, got %d", n)
		}
	})

	t.Run("loan_insert_failure_rolls_back_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fs := newFailingStore(db)
		fs.failLoanInsert = true
		svcs := New(fs)

		_, err := svcs.Loans.Register(models.LoanTypeReceived, "Ana", 100000, 10, 10)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		if n := countRows(t, db, &models.Transaction{}); n != 0 {
			t.Errorf("expected no ledger entries, got %d", n)
		}
	})

	t.Run("invalid_inputs", func(t *testing.T) {
		db, svcs := setupServices(t)

		_, err := svcs.Loans.Register("lent", "Ana", 100, 0, 1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svcs.Loans.Register(models.LoanTypeReceived, " ", 100, 0, 1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svcs.Loans.Register(models.LoanTypeReceived, "Ana", 0, 0, 1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svcs.Loans.Register(models.LoanTypeReceived, "Ana", 100, -1, 1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svcs.Loans.Register(models.LoanTypeReceived, "Ana", 100, 0, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		for _, rate := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			_, err = svcs.Loans.Register(models.LoanTypeReceived, "Ana", 100000, rate, 2)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
		if n := countRows(t, db, &models.Loan{}); n != 0 {
			t.Errorf("expected no loans stored, got %d", n)
		}
	})
}

func TestRecordInstallmentPayment(t *testing.T) {
	t.Run("below_minimum_rejected", func(t *testing.T) {
		db, svcs := setupServices(t)
		loan := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 100000, 10, 10)
		minimum := money.MinInstallment(100000, 10, 10)

		for _, short := range []int64{2, 1} {
			_, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "06-2025", minimum-short)
			testutil.AssertAppError(t, err, "PAYMENT_BELOW_MINIMUM")
		}
		if n := countRows(t, db, &models.Transaction{}); n != 0 {
			t.Errorf("rejected payments must not touch the ledger, got %d entries", n)
		}
	})

	t.Run("minimum_accepted", func(t *testing.T) {
		db, svcs := setupServices(t)
		fixClock(svcs, loanClock)
		loan := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 100000, 10, 10)
		minimum := money.MinInstallment(100000, 10, 10)

		updated, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "05-2025", minimum)
		testutil.AssertNoError(t, err)

		if updated.InstallmentsPaid != 1 {
			t.Errorf("expected 1 installment paid, got %d", updated.InstallmentsPaid)
		}
		if updated.OriginalValue != 100000-minimum {
			t.Errorf("expected remaining %d, got %d", 100000-minimum, updated.OriginalValue)
		}
		if updated.Status != models.LoanStatusOpen {
			t.Errorf("expected loan to stay open, got %s", updated.Status)
		}

		var tx models.Transaction
		db.First(&tx)
		if tx.Type != models.TransactionTypeExpense || tx.Amount != minimum || tx.MonthYear != "05-2025" {
			t.Errorf("unexpected payment entry: %+v", tx)
		}
		if !tx.Date.Equal(testutil.Date(2025, 6, 10)) {
			t.Errorf("expected payment dated today, got %s", tx.Date)
		}
	})

	t.Run("granted_payment_is_gain", func(t *testing.T) {
		db, svcs := setupServices(t)
		loan := testutil.CreateTestLoan(t, db, models.LoanTypeGranted, 30000, 0, 3)

		_, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "06-2025", 10000)
		testutil.AssertNoError(t, err)

		var tx models.Transaction
		db.First(&tx)
		if tx.Type != models.TransactionTypeGain {
			t.Errorf("expected gain for granted loan payment, got %s", tx.Type)
		}
	})

	t.Run("remaining_below_one_cent_closes", func(t *testing.T) {
		db, svcs := setupServices(t)
		loan := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 30000, 0, 3)

		updated, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "06-2025", 30000)
		testutil.AssertNoError(t, err)

		if updated.Status != models.LoanStatusClosed {
			t.Errorf("expected closed loan, got %s", updated.Status)
		}
		testutil.AssertCents(t, "outstanding value", 0, updated.OriginalValue)
		if updated.InstallmentsPaid != 3 {
			t.Errorf("expected installments paid clamped to 3, got %d", updated.InstallmentsPaid)
		}

		stored, err := svcs.Loans.GetDetails(loan.ID)
		testutil.AssertNoError(t, err)
		if stored.Status != models.LoanStatusClosed {
			t.Errorf("closure not persisted: %+v", stored)
		}
	})

	t.Run("last_installment_closes", func(t *testing.T) {
		db, svcs := setupServices(t)
		loan := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 20000, 0, 2)

		first, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "06-2025", 10000)
		testutil.AssertNoError(t, err)
		if first.Status != models.LoanStatusOpen || first.OriginalValue != 10000 {
			t.Fatalf("unexpected state after first payment: %+v", first)
		}

		// minimum is now 10000/2 = 5000, paying it still closes on count
		second, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "07-2025", 5000)
		testutil.AssertNoError(t, err)
		if second.Status != models.LoanStatusClosed || second.OriginalValue != 0 || second.InstallmentsPaid != 2 {
			t.Errorf("expected closed loan, got %+v", second)
		}
	})

	t.Run("overpayment_closes", func(t *testing.T) {
		db, svcs := setupServices(t)
		loan := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 10000, 0, 4)

		updated, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "06-2025", 15000)
		testutil.AssertNoError(t, err)
		if updated.Status != models.LoanStatusClosed || updated.OriginalValue != 0 {
			t.Errorf("expected closed loan, got %+v", updated)
		}
	})

	t.Run("closed_loan_rejected", func(t *testing.T) {
		db, svcs := setupServices(t)
		loan := testutil.CreateTestClosedLoan(t, db, models.LoanTypeReceived)

		_, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "06-2025", 100)
		testutil.AssertAppError(t, err, "LOAN_CLOSED")
	})

	t.Run("not_found", func(t *testing.T) {
		_, svcs := setupServices(t)

		_, err := svcs.Loans.RecordInstallmentPayment("missing", "06-2025", 100)
		testutil.AssertAppError(t, err, "LOAN_NOT_FOUND")
	})

	t.Run("invalid_inputs", func(t *testing.T) {
		db, svcs := setupServices(t)
		loan := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 10000, 0, 4)

		_, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "6-2025", 5000)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svcs.Loans.RecordInstallmentPayment(loan.ID, "06-2025", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("update_failure_rolls_back_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		loan := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 10000, 0, 4)
		fs := newFailingStore(db)
		fs.failLoanUpdate = true
		svcs := New(fs)

		_, err := svcs.Loans.RecordInstallmentPayment(loan.ID, "06-2025", 5000)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		if n := countRows(t, db, &models.Transaction{}); n != 0 {
			t.Errorf("expected ledger entry rolled back, got %d", n)
		}
		var stored models.Loan
		db.First(&stored, "id = ?", loan.ID)
		if stored.OriginalValue != 10000 || stored.InstallmentsPaid != 0 {
			t.Errorf("loan should be unchanged, got %+v", stored)
		}
	})
}

func TestLoanQueries(t *testing.T) {
	t.Run("list_active_excludes_closed", func(t *testing.T) {
		db, svcs := setupServices(t)
		open := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 10000, 0, 2)
		testutil.CreateTestClosedLoan(t, db, models.LoanTypeGranted)

		active, err := svcs.Loans.ListActive()
		testutil.AssertNoError(t, err)
		if len(active) != 1 || active[0].ID != open.ID {
			t.Errorf("expected only the open loan, got %+v", active)
		}

		all, err := svcs.Loans.List()
		testutil.AssertNoError(t, err)
		if len(all) != 2 {
			t.Errorf("expected 2 loans, got %d", len(all))
		}
	})

	t.Run("delete", func(t *testing.T) {
		db, svcs := setupServices(t)
		loan := testutil.CreateTestLoan(t, db, models.LoanTypeReceived, 10000, 0, 2)

		testutil.AssertNoError(t, svcs.Loans.Delete(loan.ID))
		_, err := svcs.Loans.GetDetails(loan.ID)
		testutil.AssertAppError(t, err, "LOAN_NOT_FOUND")

		err = svcs.Loans.Delete(loan.ID)
		testutil.AssertAppError(t, err, "LOAN_NOT_FOUND")
	})
}

func TestApplyPayment(t *testing.T) {
	loan := &models.Loan{OriginalValue: 1000, NumInstallments: 5, InstallmentsPaid: 1, Status: models.LoanStatusOpen}
	applyPayment(loan, 999)
	if loan.Status != models.LoanStatusOpen || loan.OriginalValue != 1 || loan.InstallmentsPaid != 2 {
		t.Errorf("one cent left should keep the loan open, got %+v", loan)
	}
	applyPayment(loan, 1)
	if loan.Status != models.LoanStatusClosed || loan.InstallmentsPaid != 5 {
		t.Errorf("expected closure, got %+v", loan)
	}
}
