package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nishanthprakasan/Financial-Dashboard/middleware"
	"github.com/nishanthprakasan/Financial-Dashboard/models"
	"github.com/nishanthprakasan/Financial-Dashboard/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

// GetDashboard returns the aggregated metrics, trend series, category
// breakdown and recent transactions for the authenticated user. Any store
// failure fails the whole request; there is no partial-result mode.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	data, err := h.Service.BuildDashboard(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Dashboard data error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, models.DashboardResponse{Success: true, Data: data})
}
