package utils

import (
	"encoding/json"

	"gorm.io/gorm"

	"harvestbook-api/models"
)

func toJSONString(v interface{}) *string {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func CreateJobAuditLog(
	db *gorm.DB,
	action string,
	entityID uint,
	oldJob, newJob *models.Job,
	userID *uint,
	ipAddress string,
	description string,
) error {
	auditLog := models.AuditLog{
		EntityType:  "job",
		EntityID:    entityID,
		Action:      action,
		UserID:      userID,
		OldValue:    toJSONString(oldJob),
		NewValue:    toJSONString(newJob),
		Changes:     calculateJobChanges(action, oldJob, newJob),
		IPAddress:   &ipAddress,
		Description: description,
	}

	return db.Create(&auditLog).Error
}

func CreatePaymentAuditLog(
	db *gorm.DB,
	action string,
	payment *models.Payment,
	userID *uint,
	ipAddress string,
	description string,
) error {
	auditLog := models.AuditLog{
		EntityType:  "payment",
		EntityID:    payment.ID,
		Action:      action,
		UserID:      userID,
		NewValue:    toJSONString(payment),
		IPAddress:   &ipAddress,
		Description: description,
	}

	return db.Create(&auditLog).Error
}

func calculateJobChanges(action string, oldJob, newJob *models.Job) *string {
	if action != "update" || oldJob == nil || newJob == nil {
		return nil
	}

	changes := make(map[string]interface{})

	if oldJob.Status != newJob.Status {
		changes["status"] = map[string]string{
			"old": oldJob.Status,
			"new": newJob.Status,
		}
	}

	if oldJob.TotalAmount != newJob.TotalAmount {
		changes["total_amount"] = map[string]float64{
			"old": oldJob.TotalAmount,
			"new": newJob.TotalAmount,
		}
	}

	if oldJob.PaidAmount != newJob.PaidAmount {
		changes["paid_amount"] = map[string]float64{
			"old": oldJob.PaidAmount,
			"new": newJob.PaidAmount,
		}
	}

	if oldJob.Quantity != newJob.Quantity {
		changes["quantity"] = map[string]float64{
			"old": oldJob.Quantity,
			"new": newJob.Quantity,
		}
	}

	if oldJob.Rate != newJob.Rate {
		changes["rate"] = map[string]float64{
			"old": oldJob.Rate,
			"new": newJob.Rate,
		}
	}

	if oldJob.Crop != newJob.Crop {
		changes["crop"] = map[string]string{
			"old": oldJob.Crop,
			"new": newJob.Crop,
		}
	}

	if len(changes) == 0 {
		return nil
	}

	return toJSONString(changes)
}
