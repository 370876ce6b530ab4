package postgres

import (
	"time"
)

/*
 * 'LobbyParticipant' links a user to a lobby. A user appears at most once per
 * lobby (composite primary key). It contains references to GameLobby and
 * PlayerProfile
 */
type LobbyParticipant struct {
	// NOTE: composite primary key definition
	LobbyID  string    `gorm:"primaryKey;size:50;not null"`
	Username string    `gorm:"primaryKey;size:50;not null;index"`
	IsReady  bool      `gorm:"default:false"`
	JoinedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the lobby and the user's profile
	GameLobby     GameLobby     `gorm:"foreignKey:LobbyID;constraint:OnDelete:CASCADE"`
	PlayerProfile PlayerProfile `gorm:"foreignKey:Username"`
}
