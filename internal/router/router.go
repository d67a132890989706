package router

import (
	"github.com/mikehquan19/bettero-app/internal/config"
	"github.com/mikehquan19/bettero-app/internal/handler"
	"github.com/mikehquan19/bettero-app/internal/market"
	"github.com/mikehquan19/bettero-app/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and mounts the API.
func SetupRouter(cfg *config.Config, db *gorm.DB, provider market.Provider) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtSecret, db))

	protected.POST("/auth/logout", authHandler.Logout)

	accountHandler := handler.NewAccountHandler(db)
	protected.GET("/accounts", accountHandler.ListAccounts)
	protected.POST("/accounts", accountHandler.CreateAccount)
	protected.GET("/accounts/:id", accountHandler.GetAccount)
	protected.PUT("/accounts/:id", accountHandler.UpdateAccount)
	protected.DELETE("/accounts/:id", accountHandler.DeleteAccount)
	protected.GET("/accounts/:id/summary", accountHandler.AccountSummary)

	transactionHandler := handler.NewTransactionHandler(db)
	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.GET("/transactions/interval/:first/:last", transactionHandler.IntervalTransactions)
	protected.GET("/transactions/category/:category", transactionHandler.CategoryTransactions)
	protected.GET("/accounts/:id/transactions", transactionHandler.AccountTransactions)

	summaryHandler := handler.NewSummaryHandler(db)
	protected.GET("/summary", summaryHandler.UserSummary)
	protected.GET("/summary/full", summaryHandler.FullSummary)

	budgetHandler := handler.NewBudgetHandler(db)
	protected.GET("/budgets", budgetHandler.ListBudgets)
	protected.POST("/budgets", budgetHandler.CreateBudget)
	protected.GET("/budgets/:interval", budgetHandler.GetBudget)
	protected.PUT("/budgets/:interval", budgetHandler.UpdateBudget)
	protected.DELETE("/budgets/:interval", budgetHandler.DeleteBudget)

	billHandler := handler.NewBillHandler(db)
	protected.GET("/bills", billHandler.ListBills)
	protected.POST("/bills", billHandler.CreateBill)
	protected.DELETE("/bills/:id", billHandler.DeleteBill)
	protected.GET("/overdue_messages", billHandler.OverdueMessages)

	stockHandler := handler.NewStockHandler(db, provider)
	protected.GET("/stocks", stockHandler.ListStocks)
	protected.POST("/stocks", stockHandler.CreateStock)
	protected.GET("/stocks/:id/prices", stockHandler.StockPrices)
	protected.PUT("/stocks/:id", stockHandler.UpdateStock)
	protected.DELETE("/stocks/:id", stockHandler.DeleteStock)
	protected.GET("/portfolio_values", stockHandler.PortfolioValues)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
