package controllers

import (
	models "Pairly/models/postgres"
	"net/http"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"
)

// @Summary Get a list of a user friends
// @Description Returns a list of the user's friends
// @Tags friends
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{username=string,icon=integer}
// @Failure 500 {object} object{error=string}
// @Router /auth/friends [get]
// @Security ApiKeyAuth
func ListFriends(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		var friendships []models.Friendship
		result := db.Where("username1 = ? OR username2 = ?", username, username).Find(&friendships)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friendships"})
			return
		}

		friendsUsernames := []string{}
		for _, friendship := range friendships {
			if friendship.Username1 == username {
				friendsUsernames = append(friendsUsernames, friendship.Username2)
			} else {
				friendsUsernames = append(friendsUsernames, friendship.Username1)
			}
		}

		// Fetch friend profiles
		var friends []models.PlayerProfile
		if len(friendsUsernames) > 0 {
			result = db.Where("username IN (?)", friendsUsernames).Find(&friends)
			if result.Error != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friends data"})
				return
			}
		}

		simplifiedFriends := make([]gin.H, len(friends))
		for i, friend := range friends {
			simplifiedFriends[i] = gin.H{
				"username":     friend.Username,
				"display_name": friend.DisplayName,
				"icon":         friend.UserIcon,
			}
		}

		c.JSON(http.StatusOK, simplifiedFriends)
	}
}

// @Summary Send a friend request
// @Description Sends a friend request from the sender to another user
// @Tags friends
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friendUsername formData string true "Username of the recipient"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/sendFriendRequest [post]
func SendFriendRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		senderUsername, err := currentUsername(c, db)
		if err != nil {
			return
		}

		receiverUsername := c.PostForm("friendUsername")

		if receiverUsername == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both usernames are required"})
			return
		}

		if senderUsername == receiverUsername {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a friend request to yourself"})
			return
		}

		// Check if recipient exists
		var receiver models.PlayerProfile
		result := db.Where("username = ?", receiverUsername).First(&receiver)
		if result.Error != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Receiver user not found"})
			return
		}

		// Check if they are already friends
		var existingFriendship models.Friendship
		result = db.Where(
			"(username1 = ? AND username2 = ?) OR (username1 = ? AND username2 = ?)",
			senderUsername, receiverUsername, receiverUsername, senderUsername,
		).First(&existingFriendship)

		if result.RowsAffected > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You are already friends"})
			return
		}

		// Check if a friend request already exists
		var existingRequest models.FriendshipRequest
		result = db.Where(
			"sender = ? AND recipient = ?",
			senderUsername, receiverUsername,
		).First(&existingRequest)

		if result.RowsAffected > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request already sent"})
			return
		}

		// Create and save the new friend request
		friendRequest := models.FriendshipRequest{
			Sender:    senderUsername,
			Recipient: receiverUsername,
		}

		result = db.Create(&friendRequest)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending friend request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Friend request sent successfully"})
	}
}

// @Summary List incoming friend requests
// @Tags friends
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{sender=string}
// @Failure 500 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/friendship_requests [get]
func GetAllFriendshipRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		var requests []models.FriendshipRequest
		if err := db.Preload("SenderProfile").
			Where("recipient = ?", username).
			Order("created_at DESC").
			Find(&requests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friend requests"})
			return
		}

		out := make([]gin.H, len(requests))
		for i, request := range requests {
			out[i] = gin.H{
				"sender":       request.Sender,
				"sender_icon":  request.SenderProfile.UserIcon,
				"requested_at": request.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Accept a friend request
// @Description Accepts the request and creates the friendship
// @Tags friends
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friendUsername formData string true "Username of the sender"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/acceptFriendRequest [post]
func AcceptFriendRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		friendUsername := c.PostForm("friendUsername")
		if friendUsername == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both usernames are required"})
			return
		}

		var request models.FriendshipRequest
		result := db.Where("sender = ? AND recipient = ?", friendUsername, username).First(&request)
		if result.RowsAffected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request does not exist"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			friendship := models.Friendship{Username1: friendUsername, Username2: username}
			if err := tx.Create(&friendship).Error; err != nil {
				return err
			}
			return tx.Delete(&request).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error accepting friend request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
	}
}

// @Summary Decline a friend request
// @Tags friends
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friendUsername formData string true "Username of the sender"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/declineFriendRequest [delete]
func DeclineFriendRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		friendUsername := c.PostForm("friendUsername")

		var request models.FriendshipRequest
		result := db.Where("sender = ? AND recipient = ?", friendUsername, username).First(&request)
		if result.RowsAffected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request does not exist"})
			return
		}

		if err := db.Delete(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error declining friend request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend request declined"})
	}
}

// @Summary Remove a friend
// @Description Removes a friend from the user's friend list
// @Tags friends
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friendUsername formData string true "Username of the friend to be removed"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/deleteFriend [delete]
func DeleteFriend(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		friendUsername := c.PostForm("friendUsername")

		if friendUsername == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both usernames are required"})
			return
		}

		// Check if the friendship exists
		var friendship models.Friendship
		result := db.Where(
			"(username1 = ? AND username2 = ?) OR (username1 = ? AND username2 = ?)",
			username, friendUsername, friendUsername, username,
		).First(&friendship)

		if result.RowsAffected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friendship does not exist"})
			return
		}

		// Delete the friendship
		result = db.Delete(&friendship)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting friend"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
	}
}
