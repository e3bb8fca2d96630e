package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Offer struct {
	ID          int     `gorm:"primary_key"`
	UUID        string  `gorm:"type:varchar(64);unique;not null"`
	URL         string  `gorm:"type:text;not null"`
	IsActive    bool    `gorm:"not null;default:false"`
	Name        string  `gorm:"not null;index"`
	SumTo       float64 `gorm:"not null"`
	TermTo      int     `gorm:"not null"`
	PercentRate float64 `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (offer *Offer) BeforeCreate(tx *gorm.DB) (err error) {
	if offer.UUID == "" {
		offer.UUID = uuid.New().String()
	}
	return
}
