package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'TimelinePhoto' is one entry of the couple's shared photo timeline.
 */
type TimelinePhoto struct {
	ID            string    `gorm:"primaryKey;size:36;not null"`
	OwnerUsername string    `gorm:"size:50;not null;index"`
	Caption       string    `gorm:"size:255"`
	URL           string    `gorm:"size:512;not null"`
	TakenAt       time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UploadedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	Owner PlayerProfile `gorm:"foreignKey:OwnerUsername;constraint:OnDelete:CASCADE"`
}

func (p *TimelinePhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
