package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"harvestbook-api/config"
	"harvestbook-api/models"
)

func dateRange(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	// default: last 30 days including today
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -29)
	end := today.AddDate(0, 0, 1)

	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			start = t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end = t.Add(24 * time.Hour)
		}
	}
	return start, end
}

// GET /reports/summary?from=2026-01-01&to=2026-01-31
func GetSummaryReport(c *gin.Context) {
	userID := currentUserID(c)
	start, end := dateRange(c)

	var jobTotals struct {
		Revenue     float64
		Collected   float64
		Outstanding float64
		Jobs        int64
	}
	config.DB.Model(&models.Job{}).
		Select(`
			COALESCE(SUM(total_amount), 0) as revenue,
			COALESCE(SUM(paid_amount), 0) as collected,
			COALESCE(SUM(total_amount - paid_amount), 0) as outstanding,
			COUNT(*) as jobs
		`).
		Where("user_id = ? AND job_date >= ? AND job_date < ?", userID, start, end).
		Scan(&jobTotals)

	var expenseTotal float64
	config.DB.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND spent_at >= ? AND spent_at < ?", userID, start, end).
		Scan(&expenseTotal)

	var statusCounts []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	config.DB.Model(&models.Job{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ? AND job_date >= ? AND job_date < ?", userID, start, end).
		Group("status").
		Scan(&statusCounts)

	c.JSON(http.StatusOK, gin.H{
		"from":        start.Format("2006-01-02"),
		"to":          end.AddDate(0, 0, -1).Format("2006-01-02"),
		"revenue":     jobTotals.Revenue,
		"collected":   jobTotals.Collected,
		"outstanding": jobTotals.Outstanding,
		"expenses":    expenseTotal,
		"net":         jobTotals.Collected - expenseTotal,
		"jobs":        jobTotals.Jobs,
		"by_status":   statusCounts,
	})
}

// GET /reports/farmers — per-farmer totals, biggest dues first.
func GetFarmerReport(c *gin.Context) {
	userID := currentUserID(c)

	var rows []struct {
		FarmerID    uint    `json:"farmer_id"`
		Name        string  `json:"name"`
		Place       string  `json:"place"`
		Jobs        int64   `json:"jobs"`
		TotalAmount float64 `json:"total_amount"`
		PaidAmount  float64 `json:"paid_amount"`
		Due         float64 `json:"due"`
	}

	if err := config.DB.Model(&models.Job{}).
		Select(`
			jobs.farmer_id,
			farmers.name,
			farmers.place,
			COUNT(jobs.id) as jobs,
			COALESCE(SUM(jobs.total_amount), 0) as total_amount,
			COALESCE(SUM(jobs.paid_amount), 0) as paid_amount,
			COALESCE(SUM(jobs.total_amount - jobs.paid_amount), 0) as due
		`).
		Joins("JOIN farmers ON farmers.id = jobs.farmer_id").
		Where("jobs.user_id = ?", userID).
		Group("jobs.farmer_id, farmers.name, farmers.place").
		Order("due DESC").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"farmers": rows})
}
