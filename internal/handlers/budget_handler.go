package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// SetBudgetRequest represents the request payload for setting a category limit.
type SetBudgetRequest struct {
	Category string `json:"category" binding:"required,max=100"`
	Limit    *int64 `json:"limit" binding:"required,gte=0"`
}

// SetBudget creates or replaces the limit of a category for a month.
// @Summary     Set a budget limit
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path string true "Partition key (MM-YYYY)"
// @Param       request body SetBudgetRequest true "Budget details"
// @Success     200 {object} models.Budget "Budget set"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budgets/{month_year} [post]
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	budget, err := h.budgetService.SetLimit(monthYear, req.Category, *req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("SET_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]any{"month_year": monthYear, "category": budget.Category, "limit": budget.Limit})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetBudgets lists the limits of a month.
// @Summary     List budgets of a month
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path string true "Partition key (MM-YYYY)"
// @Success     200 {array} models.Budget
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budgets/{month_year} [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.GetForMonth(monthYear)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// CheckBudgets reports the categories whose expenses passed their limit.
// @Summary     Check exceeded budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path string true "Partition key (MM-YYYY)"
// @Success     200 {array} models.BudgetExceeded
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budgets/{month_year}/check [get]
func (h *BudgetHandler) CheckBudgets(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	exceeded, err := h.budgetService.CheckExceeded(monthYear)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if exceeded == nil {
		exceeded = []models.BudgetExceeded{}
	}
	c.JSON(http.StatusOK, gin.H{"exceeded": exceeded})
}

// DeleteBudget removes the limit of a category for a month.
// @Summary     Delete a budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path string true "Partition key (MM-YYYY)"
// @Param       category   path string true "Category name"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{month_year}/{category} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	category := c.Param("category")
	if err := h.budgetService.Delete(monthYear, category); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_BUDGET", "budget", monthYear+"/"+category, c.ClientIP(), nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "Budget deleted"})
}
