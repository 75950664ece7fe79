package models

// LoanType tells whether money was borrowed or lent.
type LoanType string

const (
	LoanTypeReceived LoanType = "received"
	LoanTypeGranted  LoanType = "granted"
)

// Valid reports whether t is a known loan type.
func (t LoanType) Valid() bool {
	return t == LoanTypeReceived || t == LoanTypeGranted
}

// RegistrationType is the ledger direction written when the loan is created.
func (t LoanType) RegistrationType() TransactionType {
	if t == LoanTypeReceived {
		return TransactionTypeGain
	}
	return TransactionTypeExpense
}

// PaymentType is the ledger direction written for each installment.
func (t LoanType) PaymentType() TransactionType {
	if t == LoanTypeGranted {
		return TransactionTypeGain
	}
	return TransactionTypeExpense
}

// Label is the word used in ledger descriptions.
func (t LoanType) Label() string {
	if t == LoanTypeReceived {
		return "Received"
	}
	return "Granted"
}

// LoanStatus is the lifecycle state of a loan. Closed is terminal.
type LoanStatus string

const (
	LoanStatusOpen   LoanStatus = "open"
	LoanStatusClosed LoanStatus = "closed"
)

// Loan is money borrowed from or lent to another party and repaid in
// installments. OriginalValue is the outstanding value and decreases with
// every payment.
type Loan struct {
	Base
	Type             LoanType   `gorm:"size:16;not null" json:"type"`
	InvolvedParty    string     `gorm:"not null" json:"involved_party"`
	OriginalValue    int64      `gorm:"not null" json:"original_value"`
	InterestRate     float64    `gorm:"not null;default:0" json:"interest_rate"`
	NumInstallments  int        `gorm:"not null" json:"num_installments"`
	InstallmentsPaid int        `gorm:"not null;default:0" json:"installments_paid"`
	Status           LoanStatus `gorm:"size:16;not null;index" json:"status"`
}

// IsClosed reports whether the loan accepts no further payments.
func (l *Loan) IsClosed() bool {
	return l.Status == LoanStatusClosed
}
