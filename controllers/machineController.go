package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"harvestbook-api/config"
	"harvestbook-api/models"
)

func CreateMachine(c *gin.Context) {
	userID := currentUserID(c)

	var input struct {
		Name               string `json:"name" binding:"required"`
		RegistrationNumber string `json:"registration_number"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	machine := models.Machine{
		UserID:             userID,
		Name:               strings.TrimSpace(input.Name),
		RegistrationNumber: strings.ToUpper(strings.TrimSpace(input.RegistrationNumber)),
	}

	if machine.RegistrationNumber != "" {
		var count int64
		config.DB.Model(&models.Machine{}).
			Where("user_id = ? AND registration_number = ?", userID, machine.RegistrationNumber).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Registration number already exists"})
			return
		}
	}

	if err := config.DB.Create(&machine).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, machine)
}

func GetMachines(c *gin.Context) {
	userID := currentUserID(c)

	var machines []models.Machine
	if err := config.DB.Where("user_id = ?", userID).Order("name ASC").Find(&machines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, machines)
}

func GetMachineByID(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var machine models.Machine
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&machine).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}

	c.JSON(http.StatusOK, machine)
}

func UpdateMachine(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var machine models.Machine
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&machine).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}

	var input struct {
		Name               *string `json:"name,omitempty"`
		RegistrationNumber *string `json:"registration_number,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		machine.Name = strings.TrimSpace(*input.Name)
	}
	if input.RegistrationNumber != nil {
		machine.RegistrationNumber = strings.ToUpper(strings.TrimSpace(*input.RegistrationNumber))
	}

	if err := config.DB.Save(&machine).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, machine)
}

// DeleteMachine refuses while jobs or expenses still reference the
// machine, mirroring the referential constraint in storage.
func DeleteMachine(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var machine models.Machine
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&machine).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Machine not found"})
		return
	}

	var jobCount, expenseCount int64
	config.DB.Model(&models.Job{}).Where("machine_id = ?", machine.ID).Count(&jobCount)
	config.DB.Model(&models.Expense{}).Where("machine_id = ?", machine.ID).Count(&expenseCount)

	if jobCount > 0 || expenseCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Machine is still referenced by jobs or expenses",
		})
		return
	}

	if err := config.DB.Delete(&machine).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Machine deleted"})
}
