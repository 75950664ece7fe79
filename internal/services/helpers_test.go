package services

import (
	"errors"
	"testing"
	"time"

	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/testutil"

	"gorm.io/gorm"
)

func init() {
	logger.Init("test")
}

// setupServices opens a fresh database and wires every service over it.
func setupServices(t *testing.T) (*gorm.DB, *Services) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return db, New(store.New(db))
}

// fixClock makes every clock-dependent service see now.
func fixClock(svcs *Services, now time.Time) {
	clock := func() time.Time { return now }
	svcs.Ledger.(*ledgerService).now = clock
	svcs.Loans.(*loanService).now = clock
	svcs.Debts.(*debtService).now = clock
	svcs.Reports.(*reportService).now = clock
}

var errInjected = errors.New("injected storage failure")

// failingStore wraps a Store and fails selected writes. The wrapper is
// carried into units of work so failures happen mid-transaction.
type failingStore struct {
	store.Store
	failTransactionInsert bool
	failLoanInsert        bool
	failLoanUpdate        bool
	failDebtInsertAt      int // 1-based; 0 disables
	debtInserts           *int
}

func newFailingStore(db *gorm.DB) *failingStore {
	return &failingStore{Store: store.New(db), debtInserts: new(int)}
}

func (f *failingStore) Atomic(fn func(store.Store) error) error {
	return f.Store.Atomic(func(inner store.Store) error {
		wrapped := *f
		wrapped.Store = inner
		return fn(&wrapped)
	})
}

func (f *failingStore) InsertTransaction(partition string, t *models.Transaction) error {
	if f.failTransactionInsert {
		return errInjected
	}
	return f.Store.InsertTransaction(partition, t)
}

func (f *failingStore) InsertLoan(loan *models.Loan) error {
	if f.failLoanInsert {
		return errInjected
	}
	return f.Store.InsertLoan(loan)
}

func (f *failingStore) UpdateLoan(id string, fields map[string]any) error {
	if f.failLoanUpdate {
		return errInjected
	}
	return f.Store.UpdateLoan(id, fields)
}

func (f *failingStore) InsertDebt(debt *models.Debt) error {
	*f.debtInserts++
	if f.failDebtInsertAt > 0 && *f.debtInserts == f.failDebtInsertAt {
		return errInjected
	}
	return f.Store.InsertDebt(debt)
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
