package models

import (
	"time"

	"gorm.io/gorm"
)

type Expense struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	Category    string  `gorm:"not null" json:"category"`
	Amount      float64 `gorm:"not null" json:"amount"`
	MachineID   *uint   `gorm:"index" json:"machine_id,omitempty"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	Machine *Machine `json:"machine,omitempty"`

	SpentAt   time.Time      `json:"spent_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
