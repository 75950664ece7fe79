package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/period"
	"fintrack/internal/services"
)

// TransactionHandler handles requests against the month-partitioned ledger.
type TransactionHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for recording a transaction.
type CreateTransactionRequest struct {
	Date          string                 `json:"date" binding:"required,iso_date"`
	Type          models.TransactionType `json:"type" binding:"required,transaction_type"`
	Description   string                 `json:"description" binding:"required,max=500"`
	Category      string                 `json:"category" binding:"required,max=100"`
	Amount        int64                  `json:"amount" binding:"required,gt=0"`
	PaymentMethod string                 `json:"payment_method" binding:"omitempty,payment_method"`
}

// UpdateTransactionRequest represents the request payload for editing a transaction.
// Omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	Date          *string                 `json:"date" binding:"omitempty,iso_date"`
	Type          *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Description   *string                 `json:"description" binding:"omitempty,max=500"`
	Category      *string                 `json:"category" binding:"omitempty,max=100"`
	Amount        *int64                  `json:"amount" binding:"omitempty,gt=0"`
	PaymentMethod *string                 `json:"payment_method" binding:"omitempty,payment_method"`
}

// CreateTransferRequest represents the request payload for moving money between payment methods.
type CreateTransferRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	From   string `json:"from" binding:"required,payment_method"`
	To     string `json:"to" binding:"required,payment_method"`
}

// BalanceResponse carries the totals of a month, optionally for one payment method.
type BalanceResponse struct {
	MonthYear          string                  `json:"month_year"`
	PaymentMethod      string                  `json:"payment_method,omitempty"`
	Totals             models.Totals           `json:"totals"`
	ExpensesByCategory []models.CategoryAmount `json:"expenses_by_category"`
}

// CreateTransaction records a gain or expense in a month partition.
// @Summary     Record a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path string true "Partition key (MM-YYYY)"
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{month_year} [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	date, err := period.ParseDate(req.Date)
	if err != nil {
		respondWithError(c, bindError(err))
		return
	}

	tx, err := h.ledgerService.AddTransaction(services.NewTransaction{
		MonthYear:     monthYear,
		Date:          date,
		Type:          req.Type,
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", tx.ID, c.ClientIP(),
		map[string]any{"month_year": monthYear, "type": tx.Type, "amount": tx.Amount, "category": tx.Category})

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// GetTransactions lists one page of a month's transactions, newest first.
// @Summary     List transactions of a month
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path  string true  "Partition key (MM-YYYY)"
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions/{month_year} [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.ledgerService.ListForMonth(monthYear, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTransaction returns one transaction.
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path string true "Partition key (MM-YYYY)"
// @Param       id         path string true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{month_year}/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.ledgerService.GetTransaction(monthYear, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// UpdateTransaction edits a transaction. The payment method is kept unless sent.
// @Summary     Update a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path string true "Partition key (MM-YYYY)"
// @Param       id         path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{month_year}/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	tx, err := h.ledgerService.UpdateTransaction(monthYear, id, services.UpdateTransaction{
		Date:          date,
		Type:          req.Type,
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", "transaction", id, c.ClientIP(),
		map[string]any{"month_year": monthYear})

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// DeleteTransaction removes a transaction from its partition.
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path string true "Partition key (MM-YYYY)"
// @Param       id         path string true "Transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{month_year}/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.ledgerService.DeleteTransaction(monthYear, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", id, c.ClientIP(),
		map[string]any{"month_year": monthYear})

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted"})
}

// CreateTransfer moves money between two payment methods.
// @Summary     Transfer between payment methods
// @Description Records an expense at the source and a gain at the destination, both dated today
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month_year path string true "Partition key (MM-YYYY)"
// @Param       request body CreateTransferRequest true "Transfer details"
// @Success     201 {array} models.Transaction "Both legs of the transfer"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transfers/{month_year} [post]
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	legs, err := h.ledgerService.AddTransfer(monthYear, req.Amount, req.From, req.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var transferID string
	if len(legs) > 0 && legs[0].TransferID != nil {
		transferID = *legs[0].TransferID
	}
	h.auditService.Log("CREATE_TRANSFER", "transfer", transferID, c.ClientIP(),
		map[string]any{"month_year": monthYear, "amount": req.Amount, "from": req.From, "to": req.To})

	c.JSON(http.StatusCreated, gin.H{"transactions": legs})
}

// GetBalance returns a month's totals and its expenses by category. With
// ?payment_method= the totals cover that method only.
// @Summary     Monthly balance
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       month_year     path  string true  "Partition key (MM-YYYY)"
// @Param       payment_method query string false "Restrict the totals to one payment method"
// @Success     200 {object} BalanceResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /balances/{month_year} [get]
func (h *TransactionHandler) GetBalance(c *gin.Context) {
	monthYear, err := monthYearParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	method := c.Query("payment_method")
	var totals *models.Totals
	if method != "" {
		totals, err = h.ledgerService.BalanceByMethod(monthYear, method)
	} else {
		totals, err = h.ledgerService.MonthlyBalance(monthYear)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}
	byCategory, err := h.ledgerService.ExpensesByCategory(monthYear)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if byCategory == nil {
		byCategory = []models.CategoryAmount{}
	}

	c.JSON(http.StatusOK, BalanceResponse{
		MonthYear:          monthYear,
		PaymentMethod:      method,
		Totals:             *totals,
		ExpensesByCategory: byCategory,
	})
}
