// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"fintrack/internal/models"
	"fintrack/internal/period"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month_year", validateMonthYear)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("loan_type", validateLoanType)
		_ = v.RegisterValidation("debt_status", validateDebtStatus)
		_ = v.RegisterValidation("recurrence", validateRecurrence)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
	}
}

func validateMonthYear(fl validator.FieldLevel) bool {
	return period.ValidMonthYear(fl.Field().String())
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := period.ParseDate(fl.Field().String())
	return err == nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validateLoanType(fl validator.FieldLevel) bool {
	return models.LoanType(fl.Field().String()).Valid()
}

func validateDebtStatus(fl validator.FieldLevel) bool {
	return models.DebtStatus(fl.Field().String()).Valid()
}

func validateRecurrence(fl validator.FieldLevel) bool {
	return models.Recurrence(fl.Field().String()).Valid()
}

// Payment methods are free text in the ledger; this only rejects labels
// that are blank or too long to store.
func validatePaymentMethod(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) == 0 || len(s) > 50 {
		return false
	}
	for _, r := range s {
		if r != ' ' {
			return true
		}
	}
	return false
}
