package postgres

import (
	"time"
)

// Invitation status values. Terminal once accepted or declined.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

/*
 * 'LobbyInvitation' represents an invitation to a Pairly game lobby. It
 * contains references to GameLobby and PlayerProfile
 */
type LobbyInvitation struct {
	LobbyID         string    `gorm:"primaryKey;size:50;not null"`
	SenderUsername  string    `gorm:"size:50;not null"`
	InvitedUsername string    `gorm:"primaryKey;size:50;not null"`
	Status          string    `gorm:"size:20;default:'pending'"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	GameLobby      GameLobby     `gorm:"foreignKey:LobbyID;constraint:OnDelete:CASCADE"`
	SenderProfile  PlayerProfile `gorm:"foreignKey:SenderUsername;constraint:OnDelete:CASCADE"`
	InvitedProfile PlayerProfile `gorm:"foreignKey:InvitedUsername;constraint:OnDelete:CASCADE"`
}
