package services

import (
	"reflect"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestSetLimit(t *testing.T) {
	t.Run("upsert_replaces_limit", func(t *testing.T) {
		db, svcs := setupServices(t)

		_, err := svcs.Budgets.SetLimit("06-2025", "Lazer", 50000)
		testutil.AssertNoError(t, err)
		_, err = svcs.Budgets.SetLimit("06-2025", "Lazer", 70000)
		testutil.AssertNoError(t, err)

		budgets, err := svcs.Budgets.GetForMonth("06-2025")
		testutil.AssertNoError(t, err)
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
		if budgets[0].Limit != 70000 {
			t.Errorf("expected limit 70000, got %d", budgets[0].Limit)
		}
		if n := countRows(t, db, &models.Budget{}); n != 1 {
			t.Errorf("expected 1 budget row, got %d", n)
		}
	})

	t.Run("zero_limit_allowed", func(t *testing.T) {
		_, svcs := setupServices(t)

		b, err := svcs.Budgets.SetLimit("06-2025", "Lazer", 0)
		testutil.AssertNoError(t, err)
		if b.Limit != 0 {
			t.Errorf("expected zero limit, got %d", b.Limit)
		}
	})

	t.Run("negative_limit", func(t *testing.T) {
		_, svcs := setupServices(t)

		_, err := svcs.Budgets.SetLimit("06-2025", "Lazer", -1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_month", func(t *testing.T) {
		_, svcs := setupServices(t)

		_, err := svcs.Budgets.SetLimit("13-2025", "Lazer", 100)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetForMonth(t *testing.T) {
	db, svcs := setupServices(t)
	testutil.CreateTestBudget(t, db, "06-2025", "A", 100)
	testutil.CreateTestBudget(t, db, "06-2025", "B", 200)
	testutil.CreateTestBudget(t, db, "07-2025", "A", 300)

	budgets, err := svcs.Budgets.GetForMonth("06-2025")
	testutil.AssertNoError(t, err)
	if len(budgets) != 2 {
		t.Errorf("expected 2 budgets for 06-2025, got %d", len(budgets))
	}
}

func TestCheckExceeded(t *testing.T) {
	t.Run("reports_overage_only_above_limit", func(t *testing.T) {
		db, svcs := setupServices(t)
		d := testutil.Date(2025, 6, 10)
		testutil.CreateTestBudget(t, db, "06-2025", "Lazer", 10000)
		testutil.CreateTestBudget(t, db, "06-2025", "Mercado", 50000)
		testutil.CreateTestBudget(t, db, "06-2025", "Saúde", 20000)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "Lazer", 12500, d)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "Mercado", 50000, d)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeGain, "Saúde", 90000, d)

		exceeded, err := svcs.Budgets.CheckExceeded("06-2025")
		testutil.AssertNoError(t, err)

		if len(exceeded) != 1 {
			t.Fatalf("expected 1 exceeded budget, got %+v", exceeded)
		}
		got := exceeded[0]
		if got.Category != "Lazer" || got.Limit != 10000 || got.CurrentExpense != 12500 || got.Overage != 2500 {
			t.Errorf("unexpected exceeded entry: %+v", got)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db, svcs := setupServices(t)
		testutil.CreateTestBudget(t, db, "06-2025", "Lazer", 100)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, "Lazer", 500, testutil.Date(2025, 6, 1))

		first, err := svcs.Budgets.CheckExceeded("06-2025")
		testutil.AssertNoError(t, err)
		second, err := svcs.Budgets.CheckExceeded("06-2025")
		testutil.AssertNoError(t, err)

		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected identical results, got %+v and %+v", first, second)
		}
	})

	t.Run("no_budgets", func(t *testing.T) {
		_, svcs := setupServices(t)

		exceeded, err := svcs.Budgets.CheckExceeded("06-2025")
		testutil.AssertNoError(t, err)
		if exceeded == nil || len(exceeded) != 0 {
			t.Errorf("expected empty result, got %v", exceeded)
		}
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db, svcs := setupServices(t)
		testutil.CreateTestBudget(t, db, "06-2025", "Lazer", 100)

		testutil.AssertNoError(t, svcs.Budgets.Delete("06-2025", "Lazer"))
		if n := countRows(t, db, &models.Budget{}); n != 0 {
			t.Errorf("expected no budgets, got %d", n)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, svcs := setupServices(t)

		err := svcs.Budgets.Delete("06-2025", "Lazer")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
