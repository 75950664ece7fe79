package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	MonthYear  string `binding:"omitempty,month_year"`
	Date       string `binding:"omitempty,iso_date"`
	Type       string `binding:"omitempty,transaction_type"`
	LoanType   string `binding:"omitempty,loan_type"`
	Status     string `binding:"omitempty,debt_status"`
	Recurrence string `binding:"omitempty,recurrence"`
	Method     string `binding:"omitempty,payment_method"`
}

func TestRegister(t *testing.T) {
	Register()

	valid := sample{
		MonthYear:  "06-2025",
		Date:       "2025-06-10",
		Type:       "gain",
		LoanType:   "granted",
		Status:     "overdue",
		Recurrence: "monthly",
		Method:     "cash_in_hand",
	}
	if err := binding.Validator.ValidateStruct(valid); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	invalid := []sample{
		{MonthYear: "13-2025"},
		{Date: "10/06/2025"},
		{Type: "income"},
		{LoanType: "lent"},
		{Status: "late"},
		{Recurrence: "weekly"},
		{Method: "   "},
	}
	for _, s := range invalid {
		if err := binding.Validator.ValidateStruct(s); err == nil {
			t.Errorf("expected validation error for %+v", s)
		}
	}
}
