package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nishanthprakasan/Financial-Dashboard/middleware"
	"github.com/nishanthprakasan/Financial-Dashboard/models"
	"github.com/nishanthprakasan/Financial-Dashboard/services"
	"github.com/nishanthprakasan/Financial-Dashboard/utils"
)

type TransactionHandler struct {
	Store services.TransactionStore
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	transactions, err := h.Store.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "transactions": transactions})
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid transaction type"})
		return
	}
	if !req.Category.ValidFor(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Invalid category %q for type %q", req.Category, req.Type)})
		return
	}
	if req.Status == "" {
		req.Status = models.StatusCompleted
	} else if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCard
	} else if !req.PaymentMethod.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment method"})
		return
	}

	occurredAt := time.Now()
	if req.Date != nil {
		occurredAt = *req.Date
	}

	transaction := models.Transaction{
		UserID:        userID,
		OccurredAt:    occurredAt,
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount,
		Type:          req.Type,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
	}

	if err := h.Store.Create(c.Request.Context(), &transaction); err != nil {
		log.Printf("Error adding transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding entry"})
		return
	}

	utils.LogTransactionAction("create", transaction.ID, userID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "transaction": transaction})
}

// Update applies a partial edit to an owned transaction. Editing a missing or
// foreign-owned transaction is a 404, not a server error.
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	id := c.Param("id")

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	transaction, err := h.Store.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		log.Printf("Error fetching transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating transaction"})
		return
	}
	if transaction == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Transaction not found or not authorized"})
		return
	}

	if req.Description != nil {
		transaction.Description = *req.Description
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.Category != nil {
		transaction.Category = *req.Category
	}
	if req.Date != nil {
		transaction.OccurredAt = *req.Date
	}
	if req.Status != nil {
		transaction.Status = *req.Status
	}
	if req.PaymentMethod != nil {
		transaction.PaymentMethod = *req.PaymentMethod
	}

	if !transaction.Type.Valid() || !transaction.Status.Valid() || !transaction.PaymentMethod.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid transaction fields"})
		return
	}
	if !transaction.Category.ValidFor(transaction.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Invalid category %q for type %q", transaction.Category, transaction.Type)})
		return
	}

	if err := h.Store.Update(c.Request.Context(), transaction); err != nil {
		log.Printf("Error updating transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating transaction"})
		return
	}

	utils.LogTransactionAction("update", transaction.ID, userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "transaction": transaction})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	id := c.Param("id")

	deleted, err := h.Store.Delete(c.Request.Context(), userID, id)
	if err != nil {
		log.Printf("Error deleting transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting entry"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Transaction not found"})
		return
	}

	utils.LogTransactionAction("delete", id, userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Transaction deleted successfully"})
}

// ============================================================================
// EXPORT
// ============================================================================

func (h *TransactionHandler) Export(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	format := c.DefaultQuery("format", "csv")

	transactions, err := h.Store.ListByDateDesc(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error exporting transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error exporting entries"})
		return
	}

	switch format {
	case "csv":
		h.exportCSV(c, transactions)
	case "json":
		h.exportJSON(c, transactions)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unsupported export format"})
	}
}

func (h *TransactionHandler) exportCSV(c *gin.Context, transactions []models.Transaction) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=transactions.csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Date", "Description", "Category", "Amount", "Type", "Payment Method", "Status"})
	for _, t := range transactions {
		_ = w.Write([]string{
			t.OccurredAt.UTC().Format("2006-01-02"),
			t.Description,
			string(t.Category),
			fmt.Sprintf("%.2f", absFloat(t.Amount)),
			string(t.Type),
			string(t.PaymentMethod),
			string(t.Status),
		})
	}
	w.Flush()
}

func (h *TransactionHandler) exportJSON(c *gin.Context, transactions []models.Transaction) {
	type exportedTransaction struct {
		ID            string    `json:"id"`
		Date          time.Time `json:"date"`
		Description   string    `json:"description"`
		Category      string    `json:"category"`
		Amount        float64   `json:"amount"`
		Type          string    `json:"type"`
		PaymentMethod string    `json:"paymentMethod"`
		Status        string    `json:"status"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	exported := make([]exportedTransaction, 0, len(transactions))
	for _, t := range transactions {
		exported = append(exported, exportedTransaction{
			ID:            t.ID,
			Date:          t.OccurredAt,
			Description:   t.Description,
			Category:      string(t.Category),
			Amount:        t.Amount,
			Type:          string(t.Type),
			PaymentMethod: string(t.PaymentMethod),
			Status:        string(t.Status),
			CreatedAt:     t.CreatedAt,
		})
	}

	body, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error exporting entries"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=transactions.json")
	c.Data(http.StatusOK, "application/json", body)
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
