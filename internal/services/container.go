package services

import "fintrack/internal/store"

// Services bundles every service wired over one store. The API server and
// the CLI both build it once at startup.
type Services struct {
	Categories CategoryServicer
	Ledger     LedgerServicer
	Budgets    BudgetServicer
	Loans      LoanServicer
	Debts      DebtServicer
	Reports    ReportServicer
	Audit      AuditServicer
}

// New wires the services over st.
func New(st store.Store) *Services {
	categories := NewCategoryService(st)
	ledger := NewLedgerService(st, categories)
	return &Services{
		Categories: categories,
		Ledger:     ledger,
		Budgets:    NewBudgetService(st, ledger),
		Loans:      NewLoanService(st, ledger),
		Debts:      NewDebtService(st, ledger, categories),
		Reports:    NewReportService(st),
		Audit:      NewAuditService(st),
	}
}
