package services

import (
	"sort"
	"strings"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

// categoryService handles the category registry.
type categoryService struct {
	store store.Store
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(st store.Store) CategoryServicer {
	return &categoryService{store: st}
}

// List returns every category name in ascending order.
func (s *categoryService) List() ([]string, error) {
	names, err := s.store.ListCategories()
	if err != nil {
		return nil, storeErr(err, nil)
	}
	sort.Strings(names)
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Add registers a new category and returns its trimmed name.
func (s *categoryService) Add(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("category name is required")
	}

	exists, err := s.store.HasCategory(name)
	if err != nil {
		return "", storeErr(err, nil)
	}
	if exists {
		return "", apperrors.ErrCategoryExists
	}

	if err := s.store.AddCategory(name); err != nil {
		return "", storeErr(err, nil)
	}
	return name, nil
}

// Delete removes a category. Protected categories cannot be removed.
// Transactions, budgets and debts that use the name keep it.
func (s *categoryService) Delete(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("category name is required")
	}
	if models.IsProtectedCategory(name) {
		return apperrors.ErrCategoryProtected
	}
	return storeErr(s.store.RemoveCategory(name), apperrors.ErrCategoryNotFound)
}

// Ensure adds name to the registry through st when it is missing.
func (s *categoryService) Ensure(st store.Store, name string) error {
	exists, err := st.HasCategory(name)
	if err != nil {
		return storeErr(err, nil)
	}
	if exists {
		return nil
	}
	if err := st.AddCategory(name); err != nil {
		return storeErr(err, nil)
	}
	logger.Get().Infow("category auto-created", "category", name)
	return nil
}
