package socket_io

import (
	"Pairly/utils"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyUserConnection authenticates a fresh socket connection from its
// handshake data and checks the user exists.
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (bool, string) {
	username, err := utils.GetUsernameFromClient(client)
	if err != nil {
		client.Emit("error", gin.H{"error": "Authentication failed"})
		client.Disconnect(true)
		return false, ""
	}

	if err := utils.UserExists(db, username); err != nil {
		fmt.Println("Unknown user tried to connect:", username)
		client.Emit("error", gin.H{"error": "Unknown user"})
		client.Disconnect(true)
		return false, ""
	}

	return true, username
}
