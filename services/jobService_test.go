package services

import (
	"errors"
	"testing"

	"harvestbook-api/dtos"
	"harvestbook-api/ledger"
	"harvestbook-api/models"
)

func TestCreateJob_WithInlineFarmer(t *testing.T) {
	db := newTestDB(t)
	user := seedOperator(t, db)

	svc := NewJobService(db)
	job, _, err := svc.Create(user.ID, dtos.CreateJobInput{
		Farmer:      &dtos.NewFarmerInput{Name: "Shivanna", Mobile: "919845067890", Place: "Maddur"},
		Crop:        "ragi",
		BillingMode: "acre",
		Quantity:    3,
		Rate:        1400,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if job.TotalAmount != 4200 {
		t.Errorf("TotalAmount = %v, want 4200", job.TotalAmount)
	}
	if job.Status != ledger.StatusPending {
		t.Errorf("Status = %q, want Pending", job.Status)
	}

	var farmer models.Farmer
	if err := db.First(&farmer, job.FarmerID).Error; err != nil {
		t.Fatalf("farmer not registered on first job entry: %v", err)
	}
	if farmer.Name != "Shivanna" {
		t.Errorf("farmer name = %q, want Shivanna", farmer.Name)
	}
}

func TestCreateJob_WithAdvancePayment(t *testing.T) {
	db := newTestDB(t)
	user := seedOperator(t, db)

	svc := NewJobService(db)
	advance := 5000.0
	job, result, err := svc.Create(user.ID, dtos.CreateJobInput{
		Farmer:        &dtos.NewFarmerInput{Name: "Ramesh"},
		BillingMode:   "acre",
		Quantity:      5,
		Rate:          1000,
		PaymentAmount: &advance,
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if result == nil {
		t.Fatal("expected a payment result for the advance")
	}
	if result.PaidSum != 5000 || result.Status != ledger.StatusPaid {
		t.Errorf("advance result = (%v, %q), want (5000, Paid)", result.PaidSum, result.Status)
	}
	if job.Status != ledger.StatusPaid {
		t.Errorf("job status = %q, want Paid", job.Status)
	}
}

func TestCreateJob_RequiresFarmer(t *testing.T) {
	db := newTestDB(t)
	user := seedOperator(t, db)

	svc := NewJobService(db)
	_, _, err := svc.Create(user.ID, dtos.CreateJobInput{
		BillingMode: "hour",
		Quantity:    2,
		Rate:        900,
	})
	if !errors.Is(err, ErrFarmerRequired) {
		t.Errorf("error = %v, want ErrFarmerRequired", err)
	}
}

func TestUpdateJob_RederivesStatusFromLedger(t *testing.T) {
	db := newTestDB(t)
	user := seedOperator(t, db)
	job := seedJob(t, db, user.ID, 5000)

	paySvc := NewPaymentService(db)
	if _, err := paySvc.Record(user.ID, job.ID, dtos.RecordPaymentInput{Amount: f64(5000)}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// halving the rate drops the total below what was paid
	svc := NewJobService(db)
	newRate := 2500.0
	updated, err := svc.Update(user.ID, job.ID, dtos.UpdateJobInput{Rate: &newRate})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.TotalAmount != 2500 {
		t.Errorf("TotalAmount = %v, want 2500", updated.TotalAmount)
	}
	if updated.PaidAmount != 5000 {
		t.Errorf("PaidAmount = %v, want 5000 (from ledger, not cache)", updated.PaidAmount)
	}
	if updated.Status != ledger.StatusPaid {
		t.Errorf("Status = %q, want Paid", updated.Status)
	}
}

func TestUpdateJob_RaisedTotalReopensJob(t *testing.T) {
	db := newTestDB(t)
	user := seedOperator(t, db)
	job := seedJob(t, db, user.ID, 1000)

	paySvc := NewPaymentService(db)
	if _, err := paySvc.Record(user.ID, job.ID, dtos.RecordPaymentInput{Amount: f64(1000)}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	svc := NewJobService(db)
	newQty := 3.0
	updated, err := svc.Update(user.ID, job.ID, dtos.UpdateJobInput{Quantity: &newQty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.TotalAmount != 3000 {
		t.Errorf("TotalAmount = %v, want 3000", updated.TotalAmount)
	}
	if updated.Status != ledger.StatusPartial {
		t.Errorf("Status = %q, want Partial after total raised above paid sum", updated.Status)
	}
}

func TestUpdateJob_IgnoresDriftedCache(t *testing.T) {
	db := newTestDB(t)
	user := seedOperator(t, db)
	job := seedJob(t, db, user.ID, 1000)

	// ledger has the money, cache does not
	if err := db.Create(&models.Payment{JobID: job.ID, Amount: 1000, Method: "cash", ReceiptNumber: "r-2"}).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	svc := NewJobService(db)
	crop := "maize"
	updated, err := svc.Update(user.ID, job.ID, dtos.UpdateJobInput{Crop: &crop})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.PaidAmount != 1000 || updated.Status != ledger.StatusPaid {
		t.Errorf("edit kept drifted cache: (%v, %q), want (1000, Paid)", updated.PaidAmount, updated.Status)
	}
}

func TestDeleteJob_RemovesPayments(t *testing.T) {
	db := newTestDB(t)
	user := seedOperator(t, db)
	job := seedJob(t, db, user.ID, 1000)

	paySvc := NewPaymentService(db)
	if _, err := paySvc.Record(user.ID, job.ID, dtos.RecordPaymentInput{Amount: f64(400)}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	svc := NewJobService(db)
	if err := svc.Delete(user.ID, job.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int64
	db.Model(&models.Payment{}).Where("job_id = ?", job.ID).Count(&count)
	if count != 0 {
		t.Errorf("orphaned payment rows = %d, want 0", count)
	}
}
