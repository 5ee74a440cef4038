package models

import (
	"time"

	"gorm.io/gorm"
)

type Job struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	UserID    uint  `gorm:"not null;index" json:"user_id"`
	FarmerID  uint  `gorm:"not null;index" json:"farmer_id"`
	MachineID *uint `gorm:"index" json:"machine_id,omitempty"`

	Crop        string  `json:"crop"`
	BillingMode string  `gorm:"size:8;default:'acre'" json:"billing_mode"`
	Quantity    float64 `gorm:"not null;default:0" json:"quantity"`
	Rate        float64 `gorm:"not null;default:0" json:"rate"`
	TotalAmount float64 `gorm:"not null;default:0" json:"total_amount"`

	// PaidAmount and Status are a cache over the payments ledger. The
	// ledger is authoritative; these are re-derived on every
	// payment-affecting write.
	PaidAmount float64 `gorm:"not null;default:0" json:"paid_amount"`
	Status     string  `gorm:"size:16;default:'Pending'" json:"status"`

	JobDate time.Time `json:"job_date"`

	Farmer   Farmer    `json:"farmer,omitempty"`
	Machine  *Machine  `json:"machine,omitempty"`
	Payments []Payment `json:"payments,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
