package models

// Budget is the spending limit of one category in one month.
type Budget struct {
	Base
	MonthYear string `gorm:"size:7;not null;uniqueIndex:idx_budget_month_category" json:"month_year"`
	Category  string `gorm:"size:100;not null;uniqueIndex:idx_budget_month_category" json:"category"`
	Limit     int64  `gorm:"column:limit_amount;not null" json:"limit"`
}

// BudgetExceeded describes a category whose expenses went over its limit.
type BudgetExceeded struct {
	Category       string `json:"category"`
	Limit          int64  `json:"limit"`
	CurrentExpense int64  `json:"current_expense"`
	Overage        int64  `json:"overage"`
}
