package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/nishanthprakasan/Financial-Dashboard/handlers"
	"github.com/nishanthprakasan/Financial-Dashboard/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
	rg.POST("/auth/logout", authHandler.Logout)
}

// SetupTransactionRoutes sets up protected transaction CRUD and export routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.TransactionHandler{Store: services.NewTransactionStore(db)}

	rg.GET("/transactions", h.List)
	rg.POST("/transactions", h.Create)
	rg.GET("/transactions/export", h.Export)
	rg.PATCH("/transactions/:id", h.Update)
	rg.DELETE("/transactions/:id", h.Delete)
}

// SetupDashboardRoutes sets up the protected dashboard read endpoint.
func SetupDashboardRoutes(rg *gin.RouterGroup, db *sql.DB) {
	service := services.NewDashboardService(
		services.NewTransactionStore(db),
		services.NewSummaryStore(db),
	)
	h := &handlers.DashboardHandler{Service: service}

	rg.GET("/dashboard", h.GetDashboard)
}

// SetupUserRoutes sets up protected user profile and settings routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/complete-onboarding", userHandler.CompleteOnboarding)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}
