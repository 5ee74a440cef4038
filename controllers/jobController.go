package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"harvestbook-api/config"
	"harvestbook-api/dtos"
	"harvestbook-api/models"
	"harvestbook-api/services"
	"harvestbook-api/utils"
)

func CreateJob(c *gin.Context) {
	userID := currentUserID(c)

	var input dtos.CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobService := services.NewJobService(config.DB)
	job, paymentResult, err := jobService.Create(userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFarmerRequired),
			errors.Is(err, services.ErrAmountInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrFarmerNotFound),
			errors.Is(err, services.ErrMachineNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if err := config.DB.Preload("Farmer").First(job, job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	uid := userID
	_ = utils.CreateJobAuditLog(config.DB, "create", job.ID, nil, job, &uid, c.ClientIP(), "job created")

	response := gin.H{"job": job}
	if paymentResult != nil {
		response["payment"] = paymentResult
	}

	c.JSON(http.StatusCreated, response)
}

// GET /jobs?status=Pending&farmer_id=3&from=2026-01-01&to=2026-01-31
func GetJobs(c *gin.Context) {
	userID := currentUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := config.DB.Model(&models.Job{}).Where("user_id = ?", userID)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if farmerID := c.Query("farmer_id"); farmerID != "" {
		db = db.Where("farmer_id = ?", farmerID)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			db = db.Where("job_date >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			db = db.Where("job_date < ?", t.Add(24*time.Hour))
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var jobs []models.Job
	if err := db.Preload("Farmer").
		Order("job_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func GetJobByID(c *gin.Context) {
	userID := currentUserID(c)
	id := c.Param("id")

	var job models.Job
	if err := config.DB.Preload("Farmer").Preload("Machine").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at DESC, id DESC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func UpdateJob(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	var input dtos.UpdateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var oldJob models.Job
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&oldJob).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	jobService := services.NewJobService(config.DB)
	job, err := jobService.Update(userID, uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrMachineNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	uid := userID
	_ = utils.CreateJobAuditLog(config.DB, "update", job.ID, &oldJob, job, &uid, c.ClientIP(), "job updated")

	c.JSON(http.StatusOK, job)
}

func DeleteJob(c *gin.Context) {
	userID := currentUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}

	var oldJob models.Job
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&oldJob).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	jobService := services.NewJobService(config.DB)
	if err := jobService.Delete(userID, uint(id)); err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	uid := userID
	_ = utils.CreateJobAuditLog(config.DB, "delete", oldJob.ID, &oldJob, nil, &uid, c.ClientIP(), "job deleted with its payments")

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
