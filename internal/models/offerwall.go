package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferWall struct {
	ID          int     `gorm:"primary_key"`
	Token       string  `gorm:"type:varchar(64);unique;not null"`
	Name        string  `gorm:"not null"`
	URL         string  `gorm:"not null"`
	Description *string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Token is generated once here and never updated afterwards; it is the only
// external lookup key for a wall.
func (wall *OfferWall) BeforeCreate(tx *gorm.DB) (err error) {
	if wall.Token == "" {
		wall.Token = uuid.New().String()
	}
	return
}

// OfferWallOffer links a wall to an offer for the primary display. Order is
// administrator-controlled and duplicates are allowed.
type OfferWallOffer struct {
	ID          int `gorm:"primary_key"`
	OfferWallID int `gorm:"not null;index"`
	OfferID     int `gorm:"not null;index"`
	Offer       Offer
	Order       int `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OfferWallPopupOffer links a wall to an offer for the popup display.
type OfferWallPopupOffer struct {
	ID          int `gorm:"primary_key"`
	OfferWallID int `gorm:"not null;index"`
	OfferID     int `gorm:"not null;index"`
	Offer       Offer
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
