package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestAddTransaction(t *testing.T) {
	t.Run("valid_defaults_payment_method", func(t *testing.T) {
		_, svcs := setupServices(t)

		tx, err := svcs.Ledger.AddTransaction(NewTransaction{
			MonthYear:   "06-2025",
			Date:        time.Date(2025, 6, 12, 15, 30, 0, 0, time.UTC),
			Type:        models.TransactionTypeExpense,
			Description: "Mercado",
			Category:    "Alimentação",
			Amount:      15075,
		})
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected transaction ID")
		}
		if tx.MonthYear != "06-2025" {
			t.Errorf("expected partition 06-2025, got %s", tx.MonthYear)
		}
		if tx.PaymentMethod != models.PaymentMethodAccount {
			t.Errorf("expected default payment method account, got %s", tx.PaymentMethod)
		}
		if tx.Date.Hour() != 0 {
			t.Errorf("expected date normalized to midnight, got %s", tx.Date)
		}
	})

	t.Run("category_auto_created", func(t *testing.T) {
		_, svcs := setupServices(t)

		_, err := svcs.Ledger.AddTransaction(NewTransaction{
			MonthYear: "06-2025", Date: testutil.Date(2025, 6, 1),
			Type: models.TransactionTypeGain, Description: "Freela", Category: "Extra", Amount: 100,
		})
		testutil.AssertNoError(t, err)

		names, _ := svcs.Categories.List()
		found := false
		for _, n := range names {
			found = found || n == "Extra"
		}
		if !found {
			t.Error("expected category Extra to be registered")
		}
	})

	t.Run("invalid_inputs", func(t *testing.T) {
		_, svcs := setupServices(t)
		base := NewTransaction{
			MonthYear: "06-2025", Date: testutil.Date(2025, 6, 1),
			Type: models.TransactionTypeGain, Description: "x", Category: "y", Amount: 100,
		}

		bad := base
		bad.MonthYear = "2025-06"
		_, err := svcs.Ledger.AddTransaction(bad)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		bad = base
		bad.Amount = 0
		_, err = svcs.Ledger.AddTransaction(bad)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		bad = base
		bad.Type = "transfer"
		_, err = svcs.Ledger.AddTransaction(bad)
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")

		bad = base
		bad.Description = " "
		_, err = svcs.Ledger.AddTransaction(bad)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAddTransfer(t *testing.T) {
	t.Run("writes_paired_entries", func(t *testing.T) {
		_, svcs := setupServices(t)
		fixClock(svcs, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

		legs, err := svcs.Ledger.AddTransfer("06-2025", 5000, models.PaymentMethodAccount, models.PaymentMethodCash)
		testutil.AssertNoError(t, err)

		if len(legs) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(legs))
		}
		out, in := legs[0], legs[1]
		if out.Type != models.TransactionTypeExpense || out.PaymentMethod != models.PaymentMethodAccount {
			t.Errorf("unexpected outgoing leg: %+v", out)
		}
		if in.Type != models.TransactionTypeGain || in.PaymentMethod != models.PaymentMethodCash {
			t.Errorf("unexpected incoming leg: %+v", in)
		}
		if out.TransferID == nil || in.TransferID == nil || *out.TransferID != *in.TransferID {
			t.Error("expected both legs to share a transfer ID")
		}
		if out.Category != models.CategoryTransfer {
			t.Errorf("expected category %s, got %s", models.CategoryTransfer, out.Category)
		}

		total, err := svcs.Ledger.MonthlyBalance("06-2025")
		testutil.AssertNoError(t, err)
		if total.Balance != 0 {
			t.Errorf("transfer should not change the monthly balance, got %d", total.Balance)
		}
		cash, err := svcs.Ledger.BalanceByMethod("06-2025", "CASH_IN_HAND")
		testutil.AssertNoError(t, err)
		testutil.AssertCents(t, "cash balance", 5000, cash.Balance)
	})

	t.Run("same_method_rejected", func(t *testing.T) {
		_, svcs := setupServices(t)

		_, err := svcs.Ledger.AddTransfer("06-2025", 5000, "account", "Account")
		testutil.AssertAppError(t, err, "SAME_PAYMENT_METHOD")
	})

	t.Run("rolls_back_on_failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fs := newFailingStore(db)
		fs.failTransactionInsert = true
		svcs := New(fs)

		_, err := svcs.Ledger.AddTransfer("06-2025", 5000, "account", "cash_in_hand")
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
		if n := countRows(t, db, &models.Transaction{}); n != 0 {
			t.Errorf("expected no transactions, got %d", n)
		}
	})
}

func TestListForMonth(t *testing.T) {
	t.Run("paginates_newest_first", func(t *testing.T) {
		db, svcs := setupServices(t)
		for day := 1; day <= 5; day++ {
			testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "X", 100, testutil.Date(2025, 6, day))
		}
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "X", 100, testutil.Date(2025, 7, 1))

		page, err := svcs.Ledger.ListForMonth("06-2025", pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 5 {
			t.Errorf("expected 5 items, got %d", page.TotalItems)
		}
		if page.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", page.TotalPages)
		}
		if len(page.Data) != 2 || page.Data[0].Date.Day() != 5 {
			t.Errorf("expected newest first, got %+v", page.Data)
		}
	})

	t.Run("empty_month", func(t *testing.T) {
		_, svcs := setupServices(t)

		page, err := svcs.Ledger.ListForMonth("01-2020", pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.Data == nil || len(page.Data) != 0 {
			t.Errorf("expected empty non-nil data, got %v", page.Data)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("partial_keeps_payment_method", func(t *testing.T) {
		db, svcs := setupServices(t)
		tx := testutil.CreateTestTransactionWithMethod(t, db, models.TransactionTypeExpense, "X", 100, testutil.Date(2025, 6, 3), models.PaymentMethodCash)

		amount := int64(250)
		desc := "Padaria"
		updated, err := svcs.Ledger.UpdateTransaction("06-2025", tx.ID, UpdateTransaction{Amount: &amount, Description: &desc})
		testutil.AssertNoError(t, err)

		if updated.Amount != 250 || updated.Description != "Padaria" {
			t.Errorf("update not applied: %+v", updated)
		}
		if updated.PaymentMethod != models.PaymentMethodCash {
			t.Errorf("expected payment method preserved, got %s", updated.PaymentMethod)
		}
	})

	t.Run("wrong_partition_not_found", func(t *testing.T) {
		db, svcs := setupServices(t)
		tx := testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "X", 100, testutil.Date(2025, 6, 3))

		amount := int64(250)
		_, err := svcs.Ledger.UpdateTransaction("07-2025", tx.ID, UpdateTransaction{Amount: &amount})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db, svcs := setupServices(t)
		tx := testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "X", 100, testutil.Date(2025, 6, 3))

		amount := int64(-5)
		_, err := svcs.Ledger.UpdateTransaction("06-2025", tx.ID, UpdateTransaction{Amount: &amount})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db, svcs := setupServices(t)
		tx := testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "X", 100, testutil.Date(2025, 6, 3))

		testutil.AssertNoError(t, svcs.Ledger.DeleteTransaction("06-2025", tx.ID))
		_, err := svcs.Ledger.GetTransaction("06-2025", tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		_, svcs := setupServices(t)

		err := svcs.Ledger.DeleteTransaction("06-2025", "missing")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestBalances(t *testing.T) {
	t.Run("monthly_and_by_method", func(t *testing.T) {
		db, svcs := setupServices(t)
		d := testutil.Date(2025, 6, 3)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeGain, "Salário", 500000, d)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "Mercado", 120000, d)
		testutil.CreateTestTransactionWithMethod(t, db, models.TransactionTypeExpense, "Lazer", 30000, d, models.PaymentMethodCash)

		total, err := svcs.Ledger.MonthlyBalance("06-2025")
		testutil.AssertNoError(t, err)
		if total.Gains != 500000 || total.Expenses != 150000 || total.Balance != 350000 {
			t.Errorf("unexpected totals: %+v", total)
		}

		account, err := svcs.Ledger.BalanceByMethod("06-2025", "Account")
		testutil.AssertNoError(t, err)
		testutil.AssertCents(t, "account balance", 380000, account.Balance)
	})

	t.Run("expenses_by_category_sorted", func(t *testing.T) {
		db, svcs := setupServices(t)
		d := testutil.Date(2025, 6, 3)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "B", 100, d)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "A", 100, d)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "C", 300, d)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeGain, "D", 900, d)

		got, err := svcs.Ledger.ExpensesByCategory("06-2025")
		testutil.AssertNoError(t, err)

		want := []string{"C", "A", "B"}
		if len(got) != len(want) {
			t.Fatalf("expected %d categories, got %+v", len(want), got)
		}
		for i, c := range want {
			if got[i].Category != c {
				t.Errorf("position %d: expected %s, got %s", i, c, got[i].Category)
			}
		}
	})
}
