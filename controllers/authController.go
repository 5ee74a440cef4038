package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"harvestbook-api/config"
	"harvestbook-api/dtos"
	"harvestbook-api/services"
	"harvestbook-api/utils"
)

func Login(c *gin.Context) {
	var input dtos.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authService := services.NewAuthService(config.DB, utils.NewOTPClient())
	resp, err := authService.Login(input)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// BridgeLogin exchanges a phone-OTP identity token for email/password
// credentials the client immediately uses on /login.
func BridgeLogin(c *gin.Context) {
	var input dtos.BridgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idToken is required"})
		return
	}

	authService := services.NewAuthService(config.DB, utils.NewOTPClient())
	resp, err := authService.BridgePhoneLogin(input.IDToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
