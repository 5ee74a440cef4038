package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"harvestbook-api/models"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// unique name per call: a test may open several isolated databases
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// a single connection keeps the named in-memory database alive
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Farmer{},
		&models.Machine{},
		&models.Job{},
		&models.Payment{},
		&models.Expense{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func seedOperator(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	user := models.User{
		Email:    "919900112233@phone.harvestbook.app",
		Password: "x",
		Phone:    "919900112233",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedJob(t *testing.T, db *gorm.DB, userID uint, total float64) models.Job {
	t.Helper()

	farmer := models.Farmer{UserID: userID, Name: "Ramesh", Mobile: "919845012345"}
	if err := db.Create(&farmer).Error; err != nil {
		t.Fatalf("seed farmer: %v", err)
	}

	job := models.Job{
		UserID:      userID,
		FarmerID:    farmer.ID,
		Crop:        "paddy",
		BillingMode: "acre",
		Quantity:    1,
		Rate:        total,
		TotalAmount: total,
		Status:      "Pending",
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}
