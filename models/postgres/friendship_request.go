package postgres

import (
	"time"
)

type FriendshipRequest struct {
	Sender    string    `gorm:"primaryKey;size:50;not null"`
	Recipient string    `gorm:"primaryKey;size:50;not null"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	SenderProfile    PlayerProfile `gorm:"foreignKey:Sender;constraint:OnDelete:CASCADE"`
	RecipientProfile PlayerProfile `gorm:"foreignKey:Recipient;constraint:OnDelete:CASCADE"`
}
