package services

import (
	"sort"
	"strings"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/period"
	"fintrack/internal/store"
)

// debtService handles scheduled debts and bills.
type debtService struct {
	store      store.Store
	ledger     LedgerServicer
	categories CategoryServicer
	now        func() time.Time
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(st store.Store, ledger LedgerServicer, categories CategoryServicer) DebtServicer {
	return &debtService{
		store:      st,
		ledger:     ledger,
		categories: categories,
		now:        time.Now,
	}
}

// MaxRecurrenceCount bounds the occurrences a single debt may expand into.
const MaxRecurrenceCount = 1200

// ExpandDueDates returns the due dates of every occurrence of a debt that
// starts on start. Monthly occurrences clamp the day to the end of shorter
// months; yearly ones clamp Feb 29 to Feb 28.
func ExpandDueDates(start time.Time, recurrence models.Recurrence, months int) []time.Time {
	start = period.Date(start)
	months = max(0, min(months, MaxRecurrenceCount))
	switch recurrence {
	case models.RecurrenceMonthly:
		dates := make([]time.Time, 0, months)
		for i := 0; i < months; i++ {
			dates = append(dates, period.AddMonths(start, i))
		}
		return dates
	case models.RecurrenceYearly:
		dates := make([]time.Time, 0, months)
		for i := 0; i < months; i++ {
			dates = append(dates, period.AddYears(start, i))
		}
		return dates
	default:
		return []time.Time{start}
	}
}

func (in *NewDebt) normalize() error {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return invalid("description is required")
	}
	if in.Value <= 0 {
		return invalid("value must be greater than zero")
	}
	if in.DueDate.IsZero() {
		return invalid("due date is required")
	}
	if in.Status == "" {
		in.Status = models.DebtStatusOpen
	}
	if !in.Status.Valid() {
		return invalid("status must be open, paid or overdue")
	}
	if in.Recurrence == "" {
		in.Recurrence = models.RecurrenceOnce
	}
	if !in.Recurrence.Valid() {
		return invalid("recurrence must be once, monthly or yearly")
	}
	if in.Recurrence == models.RecurrenceOnce {
		in.RecurrenceMonths = 0
	} else if in.RecurrenceMonths <= 0 {
		return invalid("recurrence count must be greater than zero for recurring debts")
	} else if in.RecurrenceMonths > MaxRecurrenceCount {
		return invalid("recurrence count must not exceed 1200")
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return invalid("category is required")
	}
	return nil
}

// AddDebt schedules a debt, expanding recurring ones into one row per
// occurrence. Either every occurrence is stored or none is.
func (s *debtService) AddDebt(in NewDebt) ([]models.Debt, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	dates := ExpandDueDates(in.DueDate, in.Recurrence, in.RecurrenceMonths)
	debts := make([]models.Debt, 0, len(dates))
	err := s.store.Atomic(func(st store.Store) error {
		if err := s.categories.Ensure(st, in.Category); err != nil {
			return err
		}
		for _, due := range dates {
			debt := models.Debt{
				Description:      in.Description,
				Value:            in.Value,
				DueDate:          due,
				Status:           in.Status,
				Recurrence:       in.Recurrence,
				RecurrenceMonths: in.RecurrenceMonths,
				Category:         in.Category,
			}
			if err := st.InsertDebt(&debt); err != nil {
				return storeErr(err, nil)
			}
			debts = append(debts, debt)
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return debts, nil
}

// GetAll returns every debt ordered by due date. A non-empty filter keeps
// only the debts due in that "MM-YYYY" month.
func (s *debtService) GetAll(monthYearFilter string) ([]models.Debt, error) {
	var (
		year  int
		month time.Month
	)
	if monthYearFilter != "" {
		var err error
		year, month, err = period.ParseMonthYear(monthYearFilter)
		if err != nil {
			return nil, invalid(err.Error())
		}
	}

	debts, err := s.store.ListDebts()
	if err != nil {
		return nil, storeErr(err, nil)
	}

	result := make([]models.Debt, 0, len(debts))
	for _, d := range debts {
		if monthYearFilter != "" && (d.DueDate.IsZero() || !period.InMonth(d.DueDate.UTC(), year, month)) {
			continue
		}
		result = append(result, d)
	}
	sortByDueDate(result)
	return result, nil
}

// GetUpcomingOrOverdue marks past-due open debts as overdue, then returns
// every unpaid debt that is overdue or due within daysAhead days.
func (s *debtService) GetUpcomingOrOverdue(daysAhead int) ([]models.Debt, error) {
	if daysAhead < 0 {
		return nil, invalid("days ahead must not be negative")
	}
	today := period.Date(s.now())

	err := s.store.Atomic(func(st store.Store) error {
		debts, err := st.ListDebts()
		if err != nil {
			return storeErr(err, nil)
		}
		for _, d := range debts {
			if d.Status == models.DebtStatusOpen && !d.DueDate.IsZero() && period.Date(d.DueDate).Before(today) {
				if err := st.UpdateDebt(d.ID, map[string]any{"status": models.DebtStatusOverdue}); err != nil {
					return storeErr(err, apperrors.ErrDebtNotFound)
				}
				logger.Get().Infow("debt marked overdue", "debt_id", d.ID, "due_date", d.DueDate.Format(period.DateLayout))
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err, nil)
	}

	debts, err := s.store.ListDebts()
	if err != nil {
		return nil, storeErr(err, nil)
	}

	horizon := today.AddDate(0, 0, daysAhead)
	result := make([]models.Debt, 0)
	for _, d := range debts {
		if d.Status == models.DebtStatusPaid || d.DueDate.IsZero() {
			continue
		}
		due := period.Date(d.DueDate)
		if !due.After(horizon) || due.Before(today) {
			result = append(result, d)
		}
	}
	sortByDueDate(result)
	return result, nil
}

// MarkAsPaid settles a debt and records its value as an expense in the
// given ledger month.
func (s *debtService) MarkAsPaid(debtID, ledgerMonthYear string) (*models.Debt, error) {
	if err := validateMonthYear(ledgerMonthYear); err != nil {
		return nil, err
	}

	var result *models.Debt
	err := s.store.Atomic(func(st store.Store) error {
		debt, err := st.GetDebt(debtID)
		if err != nil {
			return storeErr(err, apperrors.ErrDebtNotFound)
		}
		if debt.Status == models.DebtStatusPaid {
			return apperrors.ErrDebtAlreadyPaid
		}

		if err := st.UpdateDebt(debt.ID, map[string]any{"status": models.DebtStatusPaid}); err != nil {
			return storeErr(err, apperrors.ErrDebtNotFound)
		}
		if _, err := s.ledger.Record(st, NewTransaction{
			MonthYear:     ledgerMonthYear,
			Date:          period.Date(s.now()),
			Type:          models.TransactionTypeExpense,
			Description:   "Debt Payment: " + debt.Description,
			Category:      debt.Category,
			Amount:        debt.Value,
			PaymentMethod: models.PaymentMethodAccount,
		}); err != nil {
			return err
		}

		debt.Status = models.DebtStatusPaid
		result = debt
		return nil
	})
	if err != nil {
		return nil, storeErr(err, nil)
	}

	logger.Get().Infow("debt paid", "debt_id", result.ID, "value", result.Value, "month_year", ledgerMonthYear)
	return result, nil
}

// UpdateDebt changes the given fields of one debt occurrence.
func (s *debtService) UpdateDebt(debtID string, in UpdateDebt) (*models.Debt, error) {
	updates := make(map[string]any)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return nil, invalid("description is required")
		}
		updates["description"] = d
	}
	if in.Value != nil {
		if *in.Value <= 0 {
			return nil, invalid("value must be greater than zero")
		}
		updates["value"] = *in.Value
	}
	if in.DueDate != nil {
		if in.DueDate.IsZero() {
			return nil, invalid("due date is required")
		}
		updates["due_date"] = period.Date(*in.DueDate)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, invalid("status must be open, paid or overdue")
		}
		updates["status"] = *in.Status
	}
	var category string
	if in.Category != nil {
		category = strings.TrimSpace(*in.Category)
		if category == "" {
			return nil, invalid("category is required")
		}
		updates["category"] = category
	}

	var result *models.Debt
	err := s.store.Atomic(func(st store.Store) error {
		if _, err := st.GetDebt(debtID); err != nil {
			return storeErr(err, apperrors.ErrDebtNotFound)
		}
		if category != "" {
			if err := s.categories.Ensure(st, category); err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			if err := st.UpdateDebt(debtID, updates); err != nil {
				return storeErr(err, apperrors.ErrDebtNotFound)
			}
		}
		var err error
		result, err = st.GetDebt(debtID)
		return storeErr(err, apperrors.ErrDebtNotFound)
	})
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return result, nil
}

// DeleteDebt removes one debt occurrence.
func (s *debtService) DeleteDebt(debtID string) error {
	return storeErr(s.store.DeleteDebt(debtID), apperrors.ErrDebtNotFound)
}

func sortByDueDate(debts []models.Debt) {
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].DueDate.Before(debts[j].DueDate)
	})
}
