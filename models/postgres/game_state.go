package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'GameState' holds the shared game-state document of a lobby: one logical
 * row per lobby, upserted as a whole on every state-machine transition. The
 * document is always fully self-describing, so a client that missed every
 * intermediate write can rebuild its entire view from the latest row.
 * CurrentTurnUsername is nil when no one needs to act (reveals, results).
 */
type GameState struct {
	LobbyID             string         `gorm:"primaryKey;size:50;not null"`
	GameData            datatypes.JSON `gorm:"type:jsonb"`
	CurrentTurnUsername *string        `gorm:"size:50"`
	UpdatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the lobby
	GameLobby GameLobby `gorm:"foreignKey:LobbyID;constraint:OnDelete:CASCADE"`
}
