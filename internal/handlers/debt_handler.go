package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/period"
	"fintrack/internal/services"
)

// DebtHandler handles debt-related requests.
type DebtHandler struct {
	debtService  services.DebtServicer
	auditService services.AuditServicer
	upcomingDays int
}

// NewDebtHandler creates a new DebtHandler. upcomingDays is the horizon
// used by the upcoming view when the request does not set days_ahead.
func NewDebtHandler(debtService services.DebtServicer, auditService services.AuditServicer, upcomingDays int) *DebtHandler {
	return &DebtHandler{debtService: debtService, auditService: auditService, upcomingDays: upcomingDays}
}

// CreateDebtRequest represents the request payload for scheduling a debt.
type CreateDebtRequest struct {
	Description      string            `json:"description" binding:"required,max=500"`
	Value            int64             `json:"value" binding:"required,gt=0"`
	DueDate          string            `json:"due_date" binding:"required,iso_date"`
	Status           models.DebtStatus `json:"status" binding:"omitempty,debt_status"`
	Recurrence       models.Recurrence `json:"recurrence" binding:"omitempty,recurrence"`
	RecurrenceMonths int               `json:"recurrence_months" binding:"gte=0,lte=1200"`
	Category         string            `json:"category" binding:"required,max=100"`
}

// UpdateDebtRequest represents the request payload for editing one debt occurrence.
type UpdateDebtRequest struct {
	Description *string            `json:"description" binding:"omitempty,max=500"`
	Value       *int64             `json:"value" binding:"omitempty,gt=0"`
	DueDate     *string            `json:"due_date" binding:"omitempty,iso_date"`
	Status      *models.DebtStatus `json:"status" binding:"omitempty,debt_status"`
	Category    *string            `json:"category" binding:"omitempty,max=100"`
}

// PayDebtRequest names the ledger partition that receives the payment.
type PayDebtRequest struct {
	MonthYear string `json:"month_year" binding:"required,month_year"`
}

// CreateDebt schedules a debt and, when recurring, its future occurrences.
// @Summary     Add a debt
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {array} models.Debt "Scheduled occurrences"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	due, err := period.ParseDate(req.DueDate)
	if err != nil {
		respondWithError(c, bindError(err))
		return
	}

	debts, err := h.debtService.AddDebt(services.NewDebt{
		Description:      req.Description,
		Value:            req.Value,
		DueDate:          due,
		Status:           req.Status,
		Recurrence:       req.Recurrence,
		RecurrenceMonths: req.RecurrenceMonths,
		Category:         req.Category,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	ids := make([]string, 0, len(debts))
	for _, d := range debts {
		ids = append(ids, d.ID)
	}
	var first string
	if len(ids) > 0 {
		first = ids[0]
	}
	h.auditService.Log("CREATE_DEBT", "debt", first, c.ClientIP(),
		map[string]any{"description": req.Description, "value": req.Value, "occurrences": ids})

	c.JSON(http.StatusCreated, gin.H{"debts": debts})
}

// GetDebts lists debts, optionally only those due in ?month_year=.
// @Summary     List debts
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       month_year query string false "Only debts due in this month (MM-YYYY)"
// @Success     200 {array} models.Debt
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /debts [get]
func (h *DebtHandler) GetDebts(c *gin.Context) {
	filter := c.Query("month_year")
	if filter != "" && !period.ValidMonthYear(filter) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month_year must be MM-YYYY"))
		return
	}

	debts, err := h.debtService.GetAll(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if debts == nil {
		debts = []models.Debt{}
	}
	c.JSON(http.StatusOK, gin.H{"debts": debts})
}

// GetUpcomingDebts lists unpaid debts that are overdue or due soon.
// Open debts past their due date are marked overdue first.
// @Summary     Upcoming or overdue debts
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       days_ahead query int false "Horizon in days"
// @Success     200 {array} models.Debt
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /debts/upcoming [get]
func (h *DebtHandler) GetUpcomingDebts(c *gin.Context) {
	days, err := parseIntQuery(c, "days_ahead", h.upcomingDays)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debts, err := h.debtService.GetUpcomingOrOverdue(days)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if debts == nil {
		debts = []models.Debt{}
	}
	c.JSON(http.StatusOK, gin.H{"debts": debts, "days_ahead": days})
}

// UpdateDebt edits one debt occurrence.
// @Summary     Update a debt
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Param       request body UpdateDebtRequest true "Fields to change"
// @Success     200 {object} models.Debt
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [put]
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	due, err := parseOptionalDate(req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	debt, err := h.debtService.UpdateDebt(id, services.UpdateDebt{
		Description: req.Description,
		Value:       req.Value,
		DueDate:     due,
		Status:      req.Status,
		Category:    req.Category,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_DEBT", "debt", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// PayDebt marks a debt as paid and books the payment as an expense.
// @Summary     Pay a debt
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Param       request body PayDebtRequest true "Ledger partition"
// @Success     200 {object} models.Debt
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     409 {object} ErrorResponse "Debt already paid"
// @Router      /debts/{id}/pay [post]
func (h *DebtHandler) PayDebt(c *gin.Context) {
	var req PayDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	id := c.Param("id")
	debt, err := h.debtService.MarkAsPaid(id, req.MonthYear)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("PAY_DEBT", "debt", id, c.ClientIP(),
		map[string]any{"month_year": req.MonthYear, "value": debt.Value})

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// DeleteDebt removes one debt occurrence.
// @Summary     Delete a debt
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Debt ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	id := c.Param("id")
	if err := h.debtService.DeleteDebt(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_DEBT", "debt", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "Debt deleted"})
}
