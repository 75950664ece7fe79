package store

import (
	"errors"

	"fintrack/internal/models"
	"fintrack/internal/pagination"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// New returns a Store backed by db.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Atomic(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// affected turns a zero-row update or delete into ErrNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Loans

func (s *gormStore) InsertLoan(loan *models.Loan) error {
	return s.db.Create(loan).Error
}

func (s *gormStore) UpdateLoan(id string, fields map[string]any) error {
	return affected(s.db.Model(&models.Loan{}).Where("id = ?", id).Updates(fields))
}

func (s *gormStore) DeleteLoan(id string) error {
	return affected(s.db.Where("id = ?", id).Delete(&models.Loan{}))
}

func (s *gormStore) ListLoans() ([]models.Loan, error) {
	var loans []models.Loan
	err := s.db.Order("created_at ASC, id ASC").Find(&loans).Error
	return loans, err
}

func (s *gormStore) GetLoan(id string) (*models.Loan, error) {
	var loan models.Loan
	if err := s.db.Where("id = ?", id).First(&loan).Error; err != nil {
		return nil, notFound(err)
	}
	return &loan, nil
}

// Debts

func (s *gormStore) InsertDebt(debt *models.Debt) error {
	return s.db.Create(debt).Error
}

func (s *gormStore) UpdateDebt(id string, fields map[string]any) error {
	return affected(s.db.Model(&models.Debt{}).Where("id = ?", id).Updates(fields))
}

func (s *gormStore) DeleteDebt(id string) error {
	return affected(s.db.Where("id = ?", id).Delete(&models.Debt{}))
}

func (s *gormStore) ListDebts() ([]models.Debt, error) {
	var debts []models.Debt
	err := s.db.Order("due_date ASC, id ASC").Find(&debts).Error
	return debts, err
}

func (s *gormStore) GetDebt(id string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Where("id = ?", id).First(&debt).Error; err != nil {
		return nil, notFound(err)
	}
	return &debt, nil
}

// Transactions

func (s *gormStore) InsertTransaction(partition string, t *models.Transaction) error {
	t.MonthYear = partition
	return s.db.Create(t).Error
}

func (s *gormStore) ListTransactions(partition string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.Where("month_year = ?", partition).
		Order("date DESC, created_at DESC").
		Find(&txs).Error
	return txs, err
}

func (s *gormStore) PageTransactions(partition string, page pagination.PageRequest) ([]models.Transaction, int64, error) {
	page.Defaults()
	base := s.db.Model(&models.Transaction{}).Where("month_year = ?", partition)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []models.Transaction
	err := base.Order("date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&txs).Error
	return txs, total, err
}

func (s *gormStore) ListPartitions() ([]string, error) {
	var partitions []string
	err := s.db.Model(&models.Transaction{}).
		Distinct("month_year").
		Order("month_year").
		Pluck("month_year", &partitions).Error
	return partitions, err
}

func (s *gormStore) GetTransaction(partition, id string) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.db.Where("month_year = ? AND id = ?", partition, id).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (s *gormStore) UpdateTransaction(partition, id string, fields map[string]any) error {
	return affected(s.db.Model(&models.Transaction{}).
		Where("month_year = ? AND id = ?", partition, id).
		Updates(fields))
}

func (s *gormStore) DeleteTransaction(partition, id string) error {
	return affected(s.db.Where("month_year = ? AND id = ?", partition, id).Delete(&models.Transaction{}))
}

// Categories

func (s *gormStore) ListCategories() ([]string, error) {
	var names []string
	err := s.db.Model(&models.Category{}).Order("name").Pluck("name", &names).Error
	return names, err
}

func (s *gormStore) AddCategory(name string) error {
	return s.db.Create(&models.Category{Name: name}).Error
}

func (s *gormStore) RemoveCategory(name string) error {
	return affected(s.db.Where("name = ?", name).Delete(&models.Category{}))
}

func (s *gormStore) HasCategory(name string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// Budgets

func (s *gormStore) UpsertBudget(budget *models.Budget) error {
	var existing models.Budget
	err := s.db.Where("month_year = ? AND category = ?", budget.MonthYear, budget.Category).First(&existing).Error
	switch {
	case err == nil:
		if err := s.db.Model(&existing).Update("limit_amount", budget.Limit).Error; err != nil {
			return err
		}
		existing.Limit = budget.Limit
		*budget = existing
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.Create(budget).Error
	default:
		return err
	}
}

func (s *gormStore) ListBudgets(monthYear string) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.db.Where("month_year = ?", monthYear).Order("category").Find(&budgets).Error
	return budgets, err
}

func (s *gormStore) DeleteBudget(monthYear, category string) error {
	return affected(s.db.Where("month_year = ? AND category = ?", monthYear, category).Delete(&models.Budget{}))
}

// Audit

func (s *gormStore) InsertAuditLog(entry *models.AuditLog) error {
	return s.db.Create(entry).Error
}

// ListAuditLogs returns the newest entries first. An empty resourceType
// matches every entry.
func (s *gormStore) ListAuditLogs(resourceType string, limit int) ([]models.AuditLog, error) {
	q := s.db.Order("created_at DESC, id DESC").Limit(limit)
	if resourceType != "" {
		q = q.Where("resource_type = ?", resourceType)
	}
	var entries []models.AuditLog
	err := q.Find(&entries).Error
	return entries, err
}
