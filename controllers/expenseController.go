package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"harvestbook-api/config"
	"harvestbook-api/models"
)

func parseDateOrNow(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

func CreateExpense(c *gin.Context) {
	userID := currentUserID(c)

	var input struct {
		Category    string  `json:"category" binding:"required"`
		Amount      float64 `json:"amount" binding:"required,gt=0"`
		MachineID   *uint   `json:"machine_id,omitempty"`
		Description *string `json:"description,omitempty"`
		SpentAt     string  `json:"spent_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.MachineID != nil {
		var machine models.Machine
		if err := config.DB.Where("id = ? AND user_id = ?", *input.MachineID, userID).
			First(&machine).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
			return
		}
	}

	expense := models.Expense{
		UserID:      userID,
		Category:    input.Category,
		Amount:      input.Amount,
		MachineID:   input.MachineID,
		Description: input.Description,
		SpentAt:     parseDateOrNow(input.SpentAt),
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GET /expenses?category=diesel&from=2026-01-01&to=2026-01-31
func GetExpenses(c *gin.Context) {
	userID := currentUserID(c)

	db := config.DB.Where("user_id = ?", userID)

	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if machineID := c.Query("machine_id"); machineID != "" {
		db = db.Where("machine_id = ?", machineID)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			db = db.Where("spent_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			db = db.Where("spent_at < ?", t.Add(24*time.Hour))
		}
	}

	var expenses []models.Expense
	if err := db.Preload("Machine").Order("spent_at DESC, id DESC").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func GetExpenseByID(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var expense models.Expense
	if err := config.DB.Preload("Machine").
		Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	c.JSON(http.StatusOK, expense)
}

func UpdateExpense(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var expense models.Expense
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	var input struct {
		Category    *string  `json:"category,omitempty"`
		Amount      *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
		MachineID   *uint    `json:"machine_id,omitempty"`
		Description *string  `json:"description,omitempty"`
		SpentAt     *string  `json:"spent_at,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Category != nil && *input.Category != "" {
		expense.Category = *input.Category
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.MachineID != nil {
		var machine models.Machine
		if err := config.DB.Where("id = ? AND user_id = ?", *input.MachineID, userID).
			First(&machine).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
			return
		}
		expense.MachineID = input.MachineID
	}
	if input.Description != nil {
		expense.Description = input.Description
	}
	if input.SpentAt != nil {
		expense.SpentAt = parseDateOrNow(*input.SpentAt)
	}

	if err := config.DB.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, expense)
}

func DeleteExpense(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var expense models.Expense
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	if err := config.DB.Delete(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
