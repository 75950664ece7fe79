package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/period"
	"fintrack/internal/store"
	"fintrack/internal/uuid"
)

// ledgerService handles the month-partitioned transaction ledger.
type ledgerService struct {
	store      store.Store
	categories CategoryServicer
	now        func() time.Time
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(st store.Store, categories CategoryServicer) LedgerServicer {
	return &ledgerService{
		store:      st,
		categories: categories,
		now:        time.Now,
	}
}

func validateMonthYear(monthYear string) error {
	if !period.ValidMonthYear(monthYear) {
		return invalid(fmt.Sprintf("invalid month-year %q: expected MM-YYYY", monthYear))
	}
	return nil
}

// normalize validates in and fills defaults.
func (in *NewTransaction) normalize() error {
	if err := validateMonthYear(in.MonthYear); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return invalid("transaction date is required")
	}
	if !in.Type.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return invalid("description is required")
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return invalid("category is required")
	}
	if in.Amount <= 0 {
		return invalid("amount must be greater than zero")
	}
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PaymentMethodAccount
	}
	in.Date = period.Date(in.Date)
	return nil
}

// Record validates in and writes it through st.
func (s *ledgerService) Record(st store.Store, in NewTransaction) (*models.Transaction, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if err := s.categories.Ensure(st, in.Category); err != nil {
		return nil, err
	}
	return s.insert(st, in, nil)
}

func (s *ledgerService) insert(st store.Store, in NewTransaction, transferID *string) (*models.Transaction, error) {
	t := &models.Transaction{
		Date:          in.Date,
		Type:          in.Type,
		Description:   in.Description,
		Category:      in.Category,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		TransferID:    transferID,
	}
	if err := st.InsertTransaction(in.MonthYear, t); err != nil {
		return nil, storeErr(err, nil)
	}
	return t, nil
}

// AddTransaction records a single gain or expense.
func (s *ledgerService) AddTransaction(in NewTransaction) (*models.Transaction, error) {
	var result *models.Transaction
	err := s.store.Atomic(func(st store.Store) error {
		var err error
		result, err = s.Record(st, in)
		return err
	})
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return result, nil
}

// AddTransfer moves amount between two payment methods. It writes an
// expense at the source and a gain at the destination, both dated today.
func (s *ledgerService) AddTransfer(monthYear string, amount int64, from, to string) ([]models.Transaction, error) {
	if err := validateMonthYear(monthYear); err != nil {
		return nil, err
	}
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return nil, invalid("transfer source and destination are required")
	}
	if strings.EqualFold(from, to) {
		return nil, apperrors.ErrSamePaymentMethod
	}
	if amount <= 0 {
		return nil, invalid("amount must be greater than zero")
	}

	today := period.Date(s.now())
	transferID := uuid.New()
	legs := []NewTransaction{
		{
			MonthYear:     monthYear,
			Date:          today,
			Type:          models.TransactionTypeExpense,
			Description:   "Transfer to " + to,
			Category:      models.CategoryTransfer,
			Amount:        amount,
			PaymentMethod: from,
		},
		{
			MonthYear:     monthYear,
			Date:          today,
			Type:          models.TransactionTypeGain,
			Description:   "Transfer from " + from,
			Category:      models.CategoryTransfer,
			Amount:        amount,
			PaymentMethod: to,
		},
	}

	var result []models.Transaction
	err := s.store.Atomic(func(st store.Store) error {
		if err := s.categories.Ensure(st, models.CategoryTransfer); err != nil {
			return err
		}
		for _, leg := range legs {
			if err := leg.normalize(); err != nil {
				return err
			}
			t, err := s.insert(st, leg, &transferID)
			if err != nil {
				return err
			}
			result = append(result, *t)
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err, nil)
	}

	logger.Get().Infow("transfer recorded", "transfer_id", transferID, "from", from, "to", to, "amount", amount)
	return result, nil
}

// ListForMonth returns one page of a month's transactions, newest first.
func (s *ledgerService) ListForMonth(monthYear string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if err := validateMonthYear(monthYear); err != nil {
		return nil, err
	}
	page.Defaults()

	txs, total, err := s.store.PageTransactions(monthYear, page)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	result := pagination.NewPageResponse(txs, page.Page, page.PageSize, total)
	return &result, nil
}

// GetTransaction returns one transaction of a month.
func (s *ledgerService) GetTransaction(monthYear, id string) (*models.Transaction, error) {
	if err := validateMonthYear(monthYear); err != nil {
		return nil, err
	}
	t, err := s.store.GetTransaction(monthYear, id)
	if err != nil {
		return nil, storeErr(err, apperrors.ErrTransactionNotFound)
	}
	return t, nil
}

// UpdateTransaction changes the given fields of a transaction. The
// payment method is kept when in does not set it.
func (s *ledgerService) UpdateTransaction(monthYear, id string, in UpdateTransaction) (*models.Transaction, error) {
	if err := validateMonthYear(monthYear); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if in.Date != nil {
		if in.Date.IsZero() {
			return nil, invalid("transaction date is required")
		}
		updates["date"] = period.Date(*in.Date)
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		updates["type"] = *in.Type
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return nil, invalid("description is required")
		}
		updates["description"] = d
	}
	var category string
	if in.Category != nil {
		category = strings.TrimSpace(*in.Category)
		if category == "" {
			return nil, invalid("category is required")
		}
		updates["category"] = category
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, invalid("amount must be greater than zero")
		}
		updates["amount"] = *in.Amount
	}
	if in.PaymentMethod != nil {
		if m := strings.TrimSpace(*in.PaymentMethod); m != "" {
			updates["payment_method"] = m
		}
	}

	var result *models.Transaction
	err := s.store.Atomic(func(st store.Store) error {
		if _, err := st.GetTransaction(monthYear, id); err != nil {
			return storeErr(err, apperrors.ErrTransactionNotFound)
		}
		if category != "" {
			if err := s.categories.Ensure(st, category); err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			if err := st.UpdateTransaction(monthYear, id, updates); err != nil {
				return storeErr(err, apperrors.ErrTransactionNotFound)
			}
		}
		var err error
		result, err = st.GetTransaction(monthYear, id)
		return storeErr(err, apperrors.ErrTransactionNotFound)
	})
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return result, nil
}

// DeleteTransaction removes a transaction from its month.
func (s *ledgerService) DeleteTransaction(monthYear, id string) error {
	if err := validateMonthYear(monthYear); err != nil {
		return err
	}
	return storeErr(s.store.DeleteTransaction(monthYear, id), apperrors.ErrTransactionNotFound)
}

// MonthlyBalance sums the gains and expenses of a month.
func (s *ledgerService) MonthlyBalance(monthYear string) (*models.Totals, error) {
	return s.balance(monthYear, func(models.Transaction) bool { return true })
}

// BalanceByMethod sums the gains and expenses of a month for one payment
// method. The method is matched case-insensitively.
func (s *ledgerService) BalanceByMethod(monthYear, method string) (*models.Totals, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, invalid("payment method is required")
	}
	return s.balance(monthYear, func(t models.Transaction) bool {
		return strings.EqualFold(t.PaymentMethod, method)
	})
}

func (s *ledgerService) balance(monthYear string, keep func(models.Transaction) bool) (*models.Totals, error) {
	if err := validateMonthYear(monthYear); err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(monthYear)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	var totals models.Totals
	for _, t := range txs {
		if keep(t) {
			totals.Add(t)
		}
	}
	return &totals, nil
}

// ExpensesByCategory totals a month's expenses per category, largest first.
func (s *ledgerService) ExpensesByCategory(monthYear string) ([]models.CategoryAmount, error) {
	if err := validateMonthYear(monthYear); err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(monthYear)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return expensesByCategory(txs), nil
}

func expensesByCategory(txs []models.Transaction) []models.CategoryAmount {
	totals := make(map[string]int64)
	for _, t := range txs {
		if t.Type == models.TransactionTypeExpense {
			totals[t.Category] += t.Amount
		}
	}
	return sortedAmounts(totals)
}

// sortedAmounts orders per-category totals by amount descending, then name.
func sortedAmounts(totals map[string]int64) []models.CategoryAmount {
	out := make([]models.CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		out = append(out, models.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}
