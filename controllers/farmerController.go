package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"harvestbook-api/config"
	"harvestbook-api/models"
)

func currentUserID(c *gin.Context) uint {
	return c.MustGet("user_id").(uint)
}

func CreateFarmer(c *gin.Context) {
	userID := currentUserID(c)

	var input struct {
		Name   string `json:"name" binding:"required"`
		Mobile string `json:"mobile"`
		Place  string `json:"place"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	farmer := models.Farmer{
		UserID: userID,
		Name:   strings.TrimSpace(input.Name),
		Mobile: input.Mobile,
		Place:  input.Place,
	}

	if err := config.DB.Create(&farmer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, farmer)
}

// GET /farmers?name=ra
func GetFarmers(c *gin.Context) {
	userID := currentUserID(c)

	query := config.DB.Where("user_id = ?", userID)

	if name := strings.TrimSpace(c.Query("name")); name != "" {
		for _, term := range strings.Fields(strings.ToLower(name)) {
			query = query.Where("LOWER(name) LIKE ?", "%"+term+"%")
		}
	}

	var farmers []models.Farmer
	if err := query.Order("name ASC").Find(&farmers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, farmers)
}

func GetFarmerByID(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var farmer models.Farmer
	if err := config.DB.Preload("Jobs", func(db *gorm.DB) *gorm.DB {
		return db.Order("job_date DESC")
	}).Where("id = ? AND user_id = ?", id, userID).First(&farmer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Farmer not found"})
		return
	}

	c.JSON(http.StatusOK, farmer)
}

func UpdateFarmer(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var farmer models.Farmer
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&farmer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Farmer not found"})
		return
	}

	var input struct {
		Name   *string `json:"name,omitempty"`
		Mobile *string `json:"mobile,omitempty"`
		Place  *string `json:"place,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		farmer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Mobile != nil {
		farmer.Mobile = *input.Mobile
	}
	if input.Place != nil {
		farmer.Place = *input.Place
	}

	if err := config.DB.Save(&farmer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, farmer)
}
