package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/budget"
	"github.com/pocketledger/backend/internal/classify"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.GET("", GetTransactions)
	r.POST("", CreateTransaction)
	r.GET("/:id", GetTransaction)
	r.PATCH("/:id", UpdateTransaction)
	r.DELETE("/:id", DeleteTransaction)
}

// TransactionEditable contains all values the transaction entry flow can
// set.
type TransactionEditable struct {
	OwnerID       uuid.UUID              `json:"ownerId"`
	Kind          models.TransactionKind `json:"kind"`
	Amount        decimal.Decimal        `json:"amount"`
	Category      string                 `json:"category"`
	Date          types.Date             `json:"date"`
	PaymentMethod string                 `json:"paymentMethod"`
	Merchant      string                 `json:"merchant"`
	Description   string                 `json:"description"`
}

func (e TransactionEditable) model() models.Transaction {
	return models.Transaction{
		OwnerID:       e.OwnerID,
		Kind:          e.Kind,
		Amount:        e.Amount,
		Category:      e.Category,
		Date:          e.Date,
		PaymentMethod: e.PaymentMethod,
		Merchant:      e.Merchant,
		Description:   e.Description,
	}
}

// TransactionResponse is the response for a single transaction write.
type TransactionResponse struct {
	Data   models.Transaction  `json:"data"`
	Alerts []budget.AlertEvent `json:"alerts,omitempty"`
}

func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	transaction := editable.model()

	// Fill the category from the taxonomy when the caller left it empty
	if transaction.Category == "" {
		transaction.Category = classifyTransaction(transaction)
	}

	err := models.DB.Create(&transaction).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	events, err := newTracker().HandleTransaction(transaction)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: transaction, Alerts: events})
}

func GetTransactions(c *gin.Context) {
	ownerID, err := httputil.OwnerID(c)
	if err != nil {
		return
	}

	var transactions []models.Transaction
	q := models.DB.
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC")

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}

	err = q.Find(&transactions).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transactions})
}

func GetTransaction(c *gin.Context) {
	id, err := httputil.ParseUUID(c, "id")
	if err != nil {
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ?", id).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transaction})
}

func UpdateTransaction(c *gin.Context) {
	id, err := httputil.ParseUUID(c, "id")
	if err != nil {
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ?", id).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	before := transaction

	// All fields are pointers so that omitted fields keep their value
	update := struct {
		Kind          *models.TransactionKind `json:"kind"`
		Amount        *decimal.Decimal        `json:"amount"`
		Category      *string                 `json:"category"`
		Date          *types.Date             `json:"date"`
		PaymentMethod *string                 `json:"paymentMethod"`
		Merchant      *string                 `json:"merchant"`
		Description   *string                 `json:"description"`
	}{}
	if err := httputil.BindData(c, &update); err != nil {
		return
	}

	if update.Kind != nil {
		transaction.Kind = *update.Kind
	}

	if update.Amount != nil {
		transaction.Amount = *update.Amount
	}

	if update.Category != nil {
		transaction.Category = *update.Category
	}

	if update.Date != nil {
		transaction.Date = *update.Date
	}

	if update.PaymentMethod != nil {
		transaction.PaymentMethod = *update.PaymentMethod
	}

	if update.Merchant != nil {
		transaction.Merchant = *update.Merchant
	}

	if update.Description != nil {
		transaction.Description = *update.Description
	}

	err = models.DB.Save(&transaction).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	tracker := newTracker()

	// The budgets of the transaction's previous category and date still
	// cache the old spent total
	_, err = tracker.HandleTransaction(before)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	events, err := tracker.HandleTransaction(transaction)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction, Alerts: events})
}

func DeleteTransaction(c *gin.Context) {
	id, err := httputil.ParseUUID(c, "id")
	if err != nil {
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ?", id).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	err = models.DB.Unscoped().Delete(&transaction).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	// Recompute the spent caches the deleted transaction contributed to.
	// Spending only goes down here, so no alerts fire.
	_, err = newTracker().HandleTransaction(transaction)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// classifyTransaction matches the transaction against the owner's active
// categories, sorted by name for deterministic results.
func classifyTransaction(transaction models.Transaction) string {
	var categories []models.Category
	err := models.DB.
		Where("owner_id = ? AND active = ?", transaction.OwnerID, true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return ""
	}

	name, _ := classify.Classify(categories, transaction.Merchant, transaction.Description)
	return name
}
