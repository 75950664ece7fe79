package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/services"
)

// LoanHandler handles loan-related requests.
type LoanHandler struct {
	loanService  services.LoanServicer
	auditService services.AuditServicer
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanService services.LoanServicer, auditService services.AuditServicer) *LoanHandler {
	return &LoanHandler{loanService: loanService, auditService: auditService}
}

// RegisterLoanRequest represents the request payload for registering a loan.
type RegisterLoanRequest struct {
	Type            models.LoanType `json:"type" binding:"required,loan_type"`
	InvolvedParty   string          `json:"involved_party" binding:"required,max=200"`
	OriginalValue   int64           `json:"original_value" binding:"required,gt=0"`
	InterestRate    float64         `json:"interest_rate" binding:"gte=0"`
	NumInstallments int             `json:"num_installments" binding:"required,gt=0"`
}

// LoanPaymentRequest represents the request payload for paying an installment.
type LoanPaymentRequest struct {
	MonthYear string `json:"month_year" binding:"required,month_year"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

// RegisterLoan records a loan and its opening ledger entry.
// @Summary     Register a loan
// @Description A received loan books a gain and a granted loan books an expense, both under Empréstimos
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RegisterLoanRequest true "Loan details"
// @Success     201 {object} models.Loan "Loan registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /loans [post]
func (h *LoanHandler) RegisterLoan(c *gin.Context) {
	var req RegisterLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	loan, err := h.loanService.Register(req.Type, req.InvolvedParty, req.OriginalValue, req.InterestRate, req.NumInstallments)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("REGISTER_LOAN", "loan", loan.ID, c.ClientIP(),
		map[string]any{"type": loan.Type, "party": loan.InvolvedParty, "value": loan.OriginalValue})

	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// GetLoans lists open loans, or every loan with ?all=true.
// @Summary     List loans
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       all query bool false "Include closed loans"
// @Success     200 {array} models.Loan
// @Router      /loans [get]
func (h *LoanHandler) GetLoans(c *gin.Context) {
	var (
		loans []models.Loan
		err   error
	)
	if c.Query("all") == "true" {
		loans, err = h.loanService.List()
	} else {
		loans, err = h.loanService.ListActive()
	}
	if err != nil {
		respondWithError(c, err)
		return
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans})
}

// GetLoan returns one loan.
// @Summary     Get a loan
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Loan ID"
// @Success     200 {object} models.Loan
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Router      /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	loan, err := h.loanService.GetDetails(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// PayInstallment records an installment payment.
// @Summary     Pay a loan installment
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Loan ID"
// @Param       request body LoanPaymentRequest true "Payment details"
// @Success     200 {object} models.Loan "Updated loan"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     409 {object} ErrorResponse "Loan closed"
// @Failure     422 {object} ErrorResponse "Payment below the minimum installment"
// @Router      /loans/{id}/payments [post]
func (h *LoanHandler) PayInstallment(c *gin.Context) {
	var req LoanPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	id := c.Param("id")
	loan, err := h.loanService.RecordInstallmentPayment(id, req.MonthYear, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("PAY_LOAN_INSTALLMENT", "loan", id, c.ClientIP(),
		map[string]any{"month_year": req.MonthYear, "amount": req.Amount, "status": loan.Status})

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// DeleteLoan removes a loan. Its ledger entries are kept.
// @Summary     Delete a loan
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Loan ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Router      /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id := c.Param("id")
	if err := h.loanService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_LOAN", "loan", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "Loan deleted"})
}
