package models

import (
	"time"

	"gorm.io/gorm"
)

type Machine struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	UserID             uint   `gorm:"not null;index" json:"user_id"`
	Name               string `gorm:"not null" json:"name"`
	RegistrationNumber string `gorm:"size:32;index" json:"registration_number"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
