package postgres

import (
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// Game types supported by the lobby system
const (
	GameTypeGuessAnswer     = "guess_answer"
	GameTypeTwentyQuestions = "twenty_questions"
)

// Lobby lifecycle. Status only moves forward, never backward.
const (
	LobbyStatusWaiting  = "waiting"
	LobbyStatusPlaying  = "playing"
	LobbyStatusFinished = "finished"
)

/*
 * 'GameLobby' defines the structure of a Pairly game lobby. It contains
 * references to PlayerProfile and LobbyParticipant
 */
type GameLobby struct {
	ID             string    `gorm:"primaryKey;size:50;not null"`
	HostUsername   string    `gorm:"size:50;index:idx_game_lobbies_host"`
	GameType       string    `gorm:"size:30;not null"`
	MaxPlayers     int       `gorm:"default:2"`
	CurrentPlayers int       `gorm:"default:0"`
	Status         string    `gorm:"size:20;default:'waiting';index:idx_game_lobbies_status"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Host PlayerProfile `gorm:"foreignKey:HostUsername"`
	// Relationship with the participants of the lobby
	Participants []*LobbyParticipant `gorm:"foreignKey:LobbyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// StatusRank maps each lobby status to its position in the lifecycle, so that
// transitions can be checked for going forward only.
func StatusRank(status string) int {
	switch status {
	case LobbyStatusWaiting:
		return 0
	case LobbyStatusPlaying:
		return 1
	case LobbyStatusFinished:
		return 2
	}
	return -1
}

// Random lobby id generation
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateLobbyID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// Ensure the id is truly unique. We wont have problems, reduced number of ids
func (l *GameLobby) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID != "" {
		return nil
	}
	for {
		newID := generateLobbyID(4)
		var existing GameLobby
		if err := tx.Where("id = ?", newID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				l.ID = newID
				return nil
			}
			return err
		}
		// Otherwise, loop again to generate a new unique ID
	}
}
