package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"harvestbook-api/config"
	"harvestbook-api/dtos"
	"harvestbook-api/ledger"
	"harvestbook-api/models"
	"harvestbook-api/services"
	"harvestbook-api/utils"
)

// RecordPayment handles POST /jobs/:id/payments. A body without an
// amount is a force-sync call that repairs a drifted paid_amount/status
// from the ledger.
func RecordPayment(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	var input dtos.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paymentService := services.NewPaymentService(config.DB)
	result, err := paymentService.Record(userID, uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAmountInvalid),
			errors.Is(err, services.ErrAmountRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	response := gin.H{
		"paid_sum":        result.PaidSum,
		"pending_balance": result.PendingBalance,
		"status":          result.Status,
	}
	if result.Payment != nil {
		response["payment"] = result.Payment
	}
	if result.Duplicate {
		response["message"] = "Duplicate submission, existing payment returned"
	}
	if result.Overpaid {
		response["warnings"] = []string{"Payment exceeds the pending balance"}
	}

	if result.Payment != nil && !result.Duplicate {
		uid := userID
		_ = utils.CreatePaymentAuditLog(config.DB, "create", result.Payment, &uid, c.ClientIP(), "payment recorded")

		go notifyFarmer(uint(id), result)
	}

	statusCode := http.StatusOK
	if result.Payment != nil && !result.Duplicate {
		statusCode = http.StatusCreated
	}
	c.JSON(statusCode, response)
}

// notifyFarmer sends the WhatsApp receipt best-effort; a failure never
// blocks the recording flow.
func notifyFarmer(jobID uint, result *services.PaymentResult) {
	var job models.Job
	if err := config.DB.Preload("Farmer").First(&job, jobID).Error; err != nil {
		return
	}
	if job.Farmer.Mobile == "" {
		return
	}

	message := utils.FormatPaymentMessage(
		job.Farmer.Name,
		result.Payment.ReceiptNumber,
		result.Payment.Amount,
		result.PendingBalance,
		result.Status,
	)
	if err := utils.SendPaymentReceipt(job.Farmer.Mobile, message); err != nil {
		log.Printf("payment receipt notification failed: %v", err)
	}
}

// GetJobPayments lists the ledger for a job, most recent first.
func GetJobPayments(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var job models.Job
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("job_id = ?", job.ID).
		Order("paid_at DESC, id DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":        payments,
		"paid_amount":     job.PaidAmount,
		"total_amount":    job.TotalAmount,
		"pending_balance": ledger.PendingBalance(job.TotalAmount, job.PaidAmount),
		"status":          job.Status,
	})
}
