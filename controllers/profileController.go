package controllers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"harvestbook-api/config"
	"harvestbook-api/models"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

func GetMe(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"phone":   user.Phone,
		"has_pin": user.PinHash != nil,
	})
}

func UpdateMe(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.Name = strings.TrimSpace(input.Name)
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// SetPin stores the 4-digit app-lock PIN, hashed like a password.
func SetPin(c *gin.Context) {
	userID := currentUserID(c)

	var input struct {
		Pin string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !pinPattern.MatchString(input.Pin) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PIN must be exactly 4 digits"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Pin), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash PIN"})
		return
	}

	hashStr := string(hash)
	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("pin_hash", &hashStr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "PIN set"})
}

func VerifyPin(c *gin.Context) {
	userID := currentUserID(c)

	var input struct {
		Pin string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.PinHash == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PIN set"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PinHash), []byte(input.Pin)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect PIN"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}
