package services

import (
	"math"
	"strings"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/period"
	"fintrack/internal/store"
)

// loanService handles the loan lifecycle. Every ledger entry it writes is
// committed together with the loan change that caused it.
type loanService struct {
	store  store.Store
	ledger LedgerServicer
	now    func() time.Time
}

// NewLoanService creates a new LoanServicer.
func NewLoanService(st store.Store, ledger LedgerServicer) LoanServicer {
	return &loanService{
		store:  st,
		ledger: ledger,
		now:    time.Now,
	}
}

// Register creates an open loan and records the money movement it causes:
// a gain when the loan was received, an expense when it was granted.
func (s *loanService) Register(
	loanType models.LoanType,
	party string,
	originalValue int64,
	interestRate float64,
	numInstallments int,
) (*models.Loan, error) {
	if !loanType.Valid() {
		return nil, invalid("loan type must be received or granted")
	}
	party = strings.TrimSpace(party)
	if party == "" {
		return nil, invalid("involved party is required")
	}
	if originalValue <= 0 {
		return nil, invalid("original value must be greater than zero")
	}
	if math.IsNaN(interestRate) || math.IsInf(interestRate, 0) {
		return nil, invalid("interest rate must be a finite number")
	}
	if interestRate < 0 {
		return nil, invalid("interest rate must not be negative")
	}
	if numInstallments <= 0 {
		return nil, invalid("number of installments must be greater than zero")
	}

	today := period.Date(s.now())
	loan := &models.Loan{
		Type:             loanType,
		InvolvedParty:    party,
		OriginalValue:    originalValue,
		InterestRate:     interestRate,
		NumInstallments:  numInstallments,
		InstallmentsPaid: 0,
		Status:           models.LoanStatusOpen,
	}

	err := s.store.Atomic(func(st store.Store) error {
		if _, err := s.ledger.Record(st, NewTransaction{
			MonthYear:   period.MonthYear(today),
			Date:        today,
			Type:        loanType.RegistrationType(),
			Description: "Loan " + loanType.Label() + " - " + party,
			Category:    models.CategoryLoans,
			Amount:      originalValue,
		}); err != nil {
			return err
		}
		return storeErr(st.InsertLoan(loan), nil)
	})
	if err != nil {
		return nil, storeErr(err, nil)
	}

	logger.Get().Infow("loan registered", "loan_id", loan.ID, "type", loanType, "value", originalValue)
	return loan, nil
}

// RecordInstallmentPayment applies one installment to an open loan. The
// payment must cover at least the minimum installment computed from the
// loan's current value. The loan closes once the last installment is paid
// or nothing is left to pay.
func (s *loanService) RecordInstallmentPayment(loanID, monthYear string, amountPaid int64) (*models.Loan, error) {
	if err := validateMonthYear(monthYear); err != nil {
		return nil, err
	}
	if amountPaid <= 0 {
		return nil, invalid("amount paid must be greater than zero")
	}

	var result *models.Loan
	err := s.store.Atomic(func(st store.Store) error {
		loan, err := st.GetLoan(loanID)
		if err != nil {
			return storeErr(err, apperrors.ErrLoanNotFound)
		}
		if loan.IsClosed() {
			return apperrors.ErrLoanClosed
		}

		minimum := money.MinInstallment(loan.OriginalValue, loan.InterestRate, loan.NumInstallments)
		if amountPaid < minimum {
			return apperrors.WithMessage(apperrors.ErrPaymentBelowMinimum,
				"payment of "+money.Format(amountPaid)+" is below the minimum installment of "+money.Format(minimum))
		}

		if _, err := s.ledger.Record(st, NewTransaction{
			MonthYear:   monthYear,
			Date:        period.Date(s.now()),
			Type:        loan.Type.PaymentType(),
			Description: "Loan Payment - " + loan.InvolvedParty,
			Category:    models.CategoryLoans,
			Amount:      amountPaid,
		}); err != nil {
			return err
		}

		applyPayment(loan, amountPaid)
		if err := st.UpdateLoan(loan.ID, map[string]any{
			"original_value":    loan.OriginalValue,
			"installments_paid": loan.InstallmentsPaid,
			"status":            loan.Status,
		}); err != nil {
			return storeErr(err, apperrors.ErrLoanNotFound)
		}
		result = loan
		return nil
	})
	if err != nil {
		return nil, storeErr(err, nil)
	}

	if result.IsClosed() {
		logger.Get().Infow("loan closed", "loan_id", result.ID, "party", result.InvolvedParty)
	}
	return result, nil
}

// applyPayment advances the installment counter and the outstanding value.
// Overpayment is accepted and closes the loan.
func applyPayment(loan *models.Loan, amountPaid int64) {
	paid := loan.InstallmentsPaid + 1
	remaining := loan.OriginalValue - amountPaid
	if paid >= loan.NumInstallments || remaining < 1 {
		loan.Status = models.LoanStatusClosed
		loan.OriginalValue = 0
		loan.InstallmentsPaid = loan.NumInstallments
		return
	}
	loan.OriginalValue = remaining
	loan.InstallmentsPaid = paid
}

// Delete removes a loan. Ledger entries it produced are kept.
func (s *loanService) Delete(loanID string) error {
	return storeErr(s.store.DeleteLoan(loanID), apperrors.ErrLoanNotFound)
}

// ListActive returns the open loans.
func (s *loanService) ListActive() ([]models.Loan, error) {
	loans, err := s.List()
	if err != nil {
		return nil, err
	}
	active := make([]models.Loan, 0, len(loans))
	for _, l := range loans {
		if l.Status == models.LoanStatusOpen {
			active = append(active, l)
		}
	}
	return active, nil
}

// List returns every loan, open or closed.
func (s *loanService) List() ([]models.Loan, error) {
	loans, err := s.store.ListLoans()
	if err != nil {
		return nil, storeErr(err, nil)
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	return loans, nil
}

// GetDetails returns one loan.
func (s *loanService) GetDetails(loanID string) (*models.Loan, error) {
	loan, err := s.store.GetLoan(loanID)
	if err != nil {
		return nil, storeErr(err, apperrors.ErrLoanNotFound)
	}
	return loan, nil
}
