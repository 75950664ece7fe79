package services

import (
	"strings"
	"time"

	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/period"
	"fintrack/internal/store"
)

// reportService builds period summaries across ledger partitions.
type reportService struct {
	store store.Store
	now   func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(st store.Store) ReportServicer {
	return &reportService{store: st, now: time.Now}
}

// allCategories are the filter values that disable the category filter.
var allCategories = []string{"", "todas", "all"}

func categoryFilterDisabled(category string) bool {
	category = strings.TrimSpace(category)
	for _, v := range allCategories {
		if strings.EqualFold(category, v) {
			return true
		}
	}
	return false
}

// Summary totals gains and expenses of every transaction dated between
// start and end inclusive, optionally restricted to one category.
func (s *reportService) Summary(start, end time.Time, category string) (*Summary, error) {
	if start.IsZero() || end.IsZero() {
		return nil, invalid("start and end dates are required")
	}
	start = period.Date(start)
	end = period.EndOfDay(end)
	if end.Before(start) {
		return nil, invalid("end date must not be before start date")
	}

	filter := ""
	if !categoryFilterDisabled(category) {
		filter = strings.TrimSpace(category)
	}

	txs, err := s.transactionsInRange(start, end)
	if err != nil {
		return nil, err
	}

	summary := &Summary{StartDate: start, EndDate: end, Category: filter}
	gains := make(map[string]int64)
	expenses := make(map[string]int64)
	for _, t := range txs {
		if filter != "" && !strings.EqualFold(t.Category, filter) {
			continue
		}
		switch t.Type {
		case models.TransactionTypeGain:
			summary.TotalGains += t.Amount
			gains[t.Category] += t.Amount
		case models.TransactionTypeExpense:
			summary.TotalExpenses += t.Amount
			expenses[t.Category] += t.Amount
		}
	}
	summary.NetBalance = summary.TotalGains - summary.TotalExpenses
	summary.GainsByCategory = sortedAmounts(gains)
	summary.ExpensesByCategory = sortedAmounts(expenses)
	return summary, nil
}

// transactionsInRange reads every partition whose month overlaps the range
// and keeps the transactions dated inside it.
func (s *reportService) transactionsInRange(start, end time.Time) ([]models.Transaction, error) {
	partitions, err := s.store.ListPartitions()
	if err != nil {
		return nil, storeErr(err, nil)
	}

	var result []models.Transaction
	for _, p := range partitions {
		monthStart, monthEnd, err := period.Bounds(p)
		if err != nil {
			logger.Get().Warnw("skipping unparseable ledger partition", "partition", p, "error", err)
			continue
		}
		if monthEnd.Before(start) || monthStart.After(end) {
			continue
		}

		txs, err := s.store.ListTransactions(p)
		if err != nil {
			return nil, storeErr(err, nil)
		}
		for _, t := range txs {
			d := t.Date.UTC()
			if !d.Before(start) && !d.After(end) {
				result = append(result, t)
			}
		}
	}
	return result, nil
}
