package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/classify"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterCategoryRoutes registers the routes for the category taxonomy
// with the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.GET("", GetCategories)
	r.POST("", CreateCategory)
	r.POST("/classify", ClassifyText)
	r.DELETE("/:id", DeleteCategory)
}

// CategoryEditable contains all values the taxonomy flow can set.
type CategoryEditable struct {
	OwnerID  uuid.UUID       `json:"ownerId"`
	Name     string          `json:"name"`
	Keywords models.Keywords `json:"keywords"`
}

func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	category := models.Category{
		OwnerID:  editable.OwnerID,
		Name:     editable.Name,
		Keywords: editable.Keywords,
		Active:   true,
	}

	err := models.DB.Create(&category).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category})
}

func GetCategories(c *gin.Context) {
	ownerID, err := httputil.OwnerID(c)
	if err != nil {
		return
	}

	var categories []models.Category
	err = models.DB.
		Where("owner_id = ? AND active = ?", ownerID, true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func DeleteCategory(c *gin.Context) {
	id, err := httputil.ParseUUID(c, "id")
	if err != nil {
		return
	}

	var category models.Category
	err = models.DB.First(&category, "id = ?", id).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	err = models.DB.Model(&category).Update("active", false).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClassifyText matches free text against the owner's taxonomy. Used by
// entry flows to suggest a category before a transaction is created.
func ClassifyText(c *gin.Context) {
	var request struct {
		OwnerID     uuid.UUID `json:"ownerId"`
		Merchant    string    `json:"merchant"`
		Description string    `json:"description"`
	}
	if err := httputil.BindData(c, &request); err != nil {
		return
	}

	var categories []models.Category
	err := models.DB.
		Where("owner_id = ? AND active = ?", request.OwnerID, true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	name, matched := classify.Classify(categories, request.Merchant, request.Description)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"category": name, "matched": matched}})
}
