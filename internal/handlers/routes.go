package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

// RouterConfig holds the settings the router needs from the application config.
type RouterConfig struct {
	APIToken     string
	UpcomingDays int
}

// SetupRouter builds the gin engine with every API route mounted.
func SetupRouter(svcs *services.Services, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	categoryHandler := NewCategoryHandler(svcs.Categories, svcs.Audit)
	transactionHandler := NewTransactionHandler(svcs.Ledger, svcs.Audit)
	budgetHandler := NewBudgetHandler(svcs.Budgets, svcs.Audit)
	loanHandler := NewLoanHandler(svcs.Loans, svcs.Audit)
	debtHandler := NewDebtHandler(svcs.Debts, svcs.Audit, cfg.UpcomingDays)
	reportHandler := NewReportHandler(svcs.Reports)
	auditHandler := NewAuditHandler(svcs.Audit)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.BearerToken(cfg.APIToken))

	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.DELETE("/:name", categoryHandler.DeleteCategory)

	transactions := v1.Group("/transactions/:month_year")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	v1.POST("/transfers/:month_year", transactionHandler.CreateTransfer)
	v1.GET("/balances/:month_year", transactionHandler.GetBalance)

	budgets := v1.Group("/budgets/:month_year")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("", budgetHandler.SetBudget)
	budgets.GET("/check", budgetHandler.CheckBudgets)
	budgets.DELETE("/:category", budgetHandler.DeleteBudget)

	loans := v1.Group("/loans")
	loans.POST("", loanHandler.RegisterLoan)
	loans.GET("", loanHandler.GetLoans)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.POST("/:id/payments", loanHandler.PayInstallment)
	loans.DELETE("/:id", loanHandler.DeleteLoan)

	debts := v1.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/upcoming", debtHandler.GetUpcomingDebts)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.POST("/:id/pay", debtHandler.PayDebt)
	debts.DELETE("/:id", debtHandler.DeleteDebt)

	reports := v1.Group("/reports")
	reports.GET("/summary", reportHandler.GetSummary)
	reports.GET("/export/csv", reportHandler.ExportCSV)
	reports.GET("/export/pdf", reportHandler.ExportPDF)

	v1.GET("/audit", auditHandler.GetAuditLogs)

	return router
}
