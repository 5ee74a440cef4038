package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"harvestbook-api/dtos"
	"harvestbook-api/ledger"
	"harvestbook-api/models"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrAmountInvalid  = errors.New("payment amount must be greater than zero")
	ErrAmountRequired = errors.New("payment amount is required while a balance is outstanding")
)

// PaymentResult is returned to the caller for an optimistic UI update;
// an authoritative refresh from storage is expected to follow.
type PaymentResult struct {
	Payment        *models.Payment `json:"payment,omitempty"`
	PaidSum        float64         `json:"paid_sum"`
	PendingBalance float64         `json:"pending_balance"`
	Status         string          `json:"status"`
	Overpaid       bool            `json:"overpaid"`
	Duplicate      bool            `json:"duplicate"`
}

type PaymentService interface {
	Record(userID, jobID uint, input dtos.RecordPaymentInput) (*PaymentResult, error)
	LedgerSum(jobID uint) (float64, error)
}

type paymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) PaymentService {
	return &paymentService{db: db}
}

// LedgerSum re-fetches the payment ledger and computes the paid total.
// The ledger is the source of truth; job.paid_amount is only a cache.
func (s *paymentService) LedgerSum(jobID uint) (float64, error) {
	amounts, err := s.ledgerAmounts(s.db, jobID)
	if err != nil {
		return 0, err
	}
	return ledger.Sum(amounts), nil
}

func (s *paymentService) ledgerAmounts(db *gorm.DB, jobID uint) ([]float64, error) {
	var amounts []float64
	err := db.Model(&models.Payment{}).
		Where("job_id = ?", jobID).
		Pluck("amount", &amounts).Error
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// Record runs the payment recording procedure:
//  1. re-fetch the ledger and recompute the paid sum (cached values on
//     the job row are never trusted),
//  2. insert the new payment row when an amount is given,
//  3. with no amount, repair a drifted job row if the ledger already
//     settles the balance,
//  4. write back paid_amount/status derived from the ledger including
//     the new row.
//
// The payment insert and the job update share one transaction here, but
// the correction path in step 3 stays as the compensating action for
// rows written by older clients without that guarantee.
func (s *paymentService) Record(userID, jobID uint, input dtos.RecordPaymentInput) (*PaymentResult, error) {
	var job models.Job
	if err := s.db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	amounts, err := s.ledgerAmounts(s.db, jobID)
	if err != nil {
		return nil, err
	}
	paidSum := ledger.Sum(amounts)

	// Correction / force-sync: no new money, just re-derive the cached
	// fields from the ledger. Valid only once the ledger settles the
	// balance; otherwise the caller forgot the amount.
	if input.Amount == nil {
		if ledger.PendingBalance(job.TotalAmount, paidSum) > 0 && job.TotalAmount > 0 {
			return nil, ErrAmountRequired
		}

		job.PaidAmount = paidSum
		job.Status = ledger.ResolveStatus(job.TotalAmount, paidSum)
		if err := s.db.Model(&models.Job{}).Where("id = ?", job.ID).
			Updates(map[string]interface{}{
				"paid_amount": job.PaidAmount,
				"status":      job.Status,
			}).Error; err != nil {
			return nil, err
		}

		return &PaymentResult{
			PaidSum:        paidSum,
			PendingBalance: ledger.PendingBalance(job.TotalAmount, paidSum),
			Status:         job.Status,
		}, nil
	}

	if *input.Amount <= 0 {
		return nil, ErrAmountInvalid
	}

	// Idempotent retry: a request_id we have already stored means the
	// operator double-submitted; hand back the existing row.
	if input.RequestID != nil && *input.RequestID != "" {
		var existing models.Payment
		err := s.db.Where("job_id = ? AND request_id = ?", jobID, *input.RequestID).
			First(&existing).Error
		if err == nil {
			return &PaymentResult{
				Payment:        &existing,
				PaidSum:        paidSum,
				PendingBalance: ledger.PendingBalance(job.TotalAmount, paidSum),
				Status:         ledger.ResolveStatus(job.TotalAmount, paidSum),
				Duplicate:      true,
			}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	method := input.Method
	if method == "" {
		method = "cash"
	}

	payment := models.Payment{
		JobID:         jobID,
		Amount:        *input.Amount,
		Method:        method,
		ReceiptNumber: uuid.NewString(),
		RequestID:     input.RequestID,
		PaidAt:        time.Now(),
	}

	newPaidSum := ledger.Sum(append(amounts, *input.Amount))
	newStatus := ledger.ResolveStatus(job.TotalAmount, newPaidSum)

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).Where("id = ?", job.ID).
			Updates(map[string]interface{}{
				"paid_amount": newPaidSum,
				"status":      newStatus,
			}).Error
	}); err != nil {
		return nil, err
	}

	pending := ledger.PendingBalance(job.TotalAmount, newPaidSum)
	return &PaymentResult{
		Payment:        &payment,
		PaidSum:        newPaidSum,
		PendingBalance: pending,
		Status:         newStatus,
		Overpaid:       pending < 0,
	}, nil
}
