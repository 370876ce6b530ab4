package utils

import (
	models "Pairly/models/postgres"
	"fmt"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

// ErrorHandler handles global errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// Function to check if a lobby exists
func CheckLobbyExists(db *gorm.DB, lobbyID string) (*models.GameLobby, error) {
	var lobby models.GameLobby
	result := db.Where("id = ?", lobbyID).First(&lobby)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("lobby not found")
		}
		return nil, result.Error
	}

	return &lobby, nil
}

func IsPlayerInLobby(db *gorm.DB, lobbyID string, username string) (bool, error) {
	var count int64
	err := db.Model(&models.LobbyParticipant{}).
		Where("lobby_id = ? AND username = ?", lobbyID, username).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Returns the icon of the user
func UserIcon(db *gorm.DB, username string) int {
	var icon int
	err := db.Model(&models.PlayerProfile{}).
		Select("user_icon").
		Where("username = ?", username).
		Find(&icon).Error
	if err != nil {
		return 0
	}

	return icon
}
