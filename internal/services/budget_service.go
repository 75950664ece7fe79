package services

import (
	"strings"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

// budgetService handles monthly category limits.
type budgetService struct {
	store  store.Store
	ledger LedgerServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(st store.Store, ledger LedgerServicer) BudgetServicer {
	return &budgetService{store: st, ledger: ledger}
}

// SetLimit creates or replaces the limit of a category in a month.
func (s *budgetService) SetLimit(monthYear, category string, limit int64) (*models.Budget, error) {
	if err := validateMonthYear(monthYear); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, invalid("category is required")
	}
	if limit < 0 {
		return nil, invalid("limit must not be negative")
	}

	budget := &models.Budget{MonthYear: monthYear, Category: category, Limit: limit}
	if err := s.store.UpsertBudget(budget); err != nil {
		return nil, storeErr(err, nil)
	}
	return budget, nil
}

// GetForMonth returns the limits defined for a month.
func (s *budgetService) GetForMonth(monthYear string) ([]models.Budget, error) {
	if err := validateMonthYear(monthYear); err != nil {
		return nil, err
	}
	budgets, err := s.store.ListBudgets(monthYear)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

// CheckExceeded lists the categories whose expenses in the month are
// strictly above their limit. It never writes.
func (s *budgetService) CheckExceeded(monthYear string) ([]models.BudgetExceeded, error) {
	budgets, err := s.GetForMonth(monthYear)
	if err != nil {
		return nil, err
	}
	exceeded := []models.BudgetExceeded{}
	if len(budgets) == 0 {
		return exceeded, nil
	}

	expenses, err := s.ledger.ExpensesByCategory(monthYear)
	if err != nil {
		return nil, err
	}
	spent := make(map[string]int64, len(expenses))
	for _, e := range expenses {
		spent[e.Category] = e.Amount
	}

	for _, b := range budgets {
		current := spent[b.Category]
		if current > b.Limit {
			exceeded = append(exceeded, models.BudgetExceeded{
				Category:       b.Category,
				Limit:          b.Limit,
				CurrentExpense: current,
				Overage:        current - b.Limit,
			})
		}
	}
	return exceeded, nil
}

// Delete removes the limit of a category in a month.
func (s *budgetService) Delete(monthYear, category string) error {
	if err := validateMonthYear(monthYear); err != nil {
		return err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return invalid("category is required")
	}
	return storeErr(s.store.DeleteBudget(monthYear, category), apperrors.ErrBudgetNotFound)
}
