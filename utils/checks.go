package utils

import (
	models "Pairly/models/postgres"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/zishang520/socket.io/v2/socket"

	"github.com/gin-gonic/gin"
)

// Check that the connecting user exists
func UserExists(db *gorm.DB, username string) error {
	var profile models.PlayerProfile
	err := db.Where("username = ?", username).First(&profile).Error
	return err
}

func UserIsInLobby(db *gorm.DB, lobbyid string, username string, client *socket.Socket) error {
	inLobby, err := IsPlayerInLobby(db, lobbyid, username)
	if err == nil && !inLobby {
		err = errors.New("user not in lobby")
	}
	if err != nil {
		fmt.Println("User is NOT in lobby:", username, "Lobby:", lobbyid)
		client.Emit("error", gin.H{"error": "You must join the lobby first"})
	}
	return err
}

func LobbyExists(db *gorm.DB, lobbyid string, client *socket.Socket) error {
	_, err := CheckLobbyExists(db, lobbyid)
	if err != nil {
		fmt.Println("Lobby does not exist:", lobbyid)
		client.Emit("error", gin.H{"error": "Lobby does not exist"})
	}
	return err
}

func GetUsernameFromClient(client *socket.Socket) (string, error) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No username provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing username"})
		return "", errors.New("authentication data missing")
	}

	username, exists := authData["username"].(string)
	if !exists {
		return "", errors.New("username not found in authentication")
	}

	return username, nil
}
