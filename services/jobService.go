package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"harvestbook-api/dtos"
	"harvestbook-api/ledger"
	"harvestbook-api/models"
)

var (
	ErrFarmerRequired  = errors.New("farmer_id or an inline farmer is required")
	ErrFarmerNotFound  = errors.New("farmer not found")
	ErrMachineNotFound = errors.New("machine not found")
)

type JobService interface {
	Create(userID uint, input dtos.CreateJobInput) (*models.Job, *PaymentResult, error)
	Update(userID, jobID uint, input dtos.UpdateJobInput) (*models.Job, error)
	Delete(userID, jobID uint) error
}

type jobService struct {
	db       *gorm.DB
	payments PaymentService
}

func NewJobService(db *gorm.DB) JobService {
	return &jobService{db: db, payments: NewPaymentService(db)}
}

// totalOf computes quantity × rate in decimal; the result is persisted
// on the job row, not recomputed by the store.
func totalOf(quantity, rate float64) float64 {
	f, _ := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(rate)).Float64()
	return f
}

func parseJobDate(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

func (s *jobService) resolveFarmer(tx *gorm.DB, userID uint, input dtos.CreateJobInput) (uint, error) {
	if input.FarmerID != nil {
		var farmer models.Farmer
		if err := tx.Where("id = ? AND user_id = ?", *input.FarmerID, userID).
			First(&farmer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrFarmerNotFound
			}
			return 0, err
		}
		return farmer.ID, nil
	}

	if input.Farmer == nil {
		return 0, ErrFarmerRequired
	}

	// Register the farmer on first job entry.
	farmer := models.Farmer{
		UserID: userID,
		Name:   input.Farmer.Name,
		Mobile: input.Farmer.Mobile,
		Place:  input.Farmer.Place,
	}
	if err := tx.Create(&farmer).Error; err != nil {
		return 0, err
	}
	return farmer.ID, nil
}

func (s *jobService) checkMachine(userID uint, machineID *uint) error {
	if machineID == nil {
		return nil
	}
	var machine models.Machine
	if err := s.db.Where("id = ? AND user_id = ?", *machineID, userID).
		First(&machine).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMachineNotFound
		}
		return err
	}
	return nil
}

func (s *jobService) Create(userID uint, input dtos.CreateJobInput) (*models.Job, *PaymentResult, error) {
	if err := s.checkMachine(userID, input.MachineID); err != nil {
		return nil, nil, err
	}

	var job models.Job
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		farmerID, err := s.resolveFarmer(tx, userID, input)
		if err != nil {
			return err
		}

		total := totalOf(input.Quantity, input.Rate)
		job = models.Job{
			UserID:      userID,
			FarmerID:    farmerID,
			MachineID:   input.MachineID,
			Crop:        input.Crop,
			BillingMode: input.BillingMode,
			Quantity:    input.Quantity,
			Rate:        input.Rate,
			TotalAmount: total,
			PaidAmount:  0,
			Status:      ledger.ResolveStatus(total, 0),
			JobDate:     parseJobDate(input.JobDate),
		}
		return tx.Create(&job).Error
	}); err != nil {
		return nil, nil, err
	}

	// Advance collected at entry time goes through the same recording
	// path; a failure here leaves a valid unpaid job behind.
	var result *PaymentResult
	if input.PaymentAmount != nil {
		var err error
		result, err = s.payments.Record(userID, job.ID, dtos.RecordPaymentInput{
			Amount: input.PaymentAmount,
			Method: input.PaymentMethod,
		})
		if err != nil {
			return &job, nil, err
		}
		job.PaidAmount = result.PaidSum
		job.Status = result.Status
	}

	return &job, result, nil
}

// Update recomputes the total from the edited quantity/rate and then
// re-derives paid_amount/status from a fresh ledger read rather than the
// cached paid_amount, so an edit can never resurrect stale money.
func (s *jobService) Update(userID, jobID uint, input dtos.UpdateJobInput) (*models.Job, error) {
	var job models.Job
	if err := s.db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if input.MachineID != nil {
		if err := s.checkMachine(userID, input.MachineID); err != nil {
			return nil, err
		}
		job.MachineID = input.MachineID
	}
	if input.Crop != nil {
		job.Crop = *input.Crop
	}
	if input.BillingMode != nil {
		job.BillingMode = *input.BillingMode
	}
	if input.Quantity != nil {
		job.Quantity = *input.Quantity
	}
	if input.Rate != nil {
		job.Rate = *input.Rate
	}
	if input.JobDate != nil {
		job.JobDate = parseJobDate(*input.JobDate)
	}

	job.TotalAmount = totalOf(job.Quantity, job.Rate)

	paidSum, err := s.payments.LedgerSum(job.ID)
	if err != nil {
		return nil, err
	}
	job.PaidAmount = paidSum
	job.Status = ledger.ResolveStatus(job.TotalAmount, paidSum)

	if err := s.db.Save(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Delete removes the job together with its payment rows so no orphaned
// ledger entries survive.
func (s *jobService) Delete(userID, jobID uint) error {
	var job models.Job
	if err := s.db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
}
