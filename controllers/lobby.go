package controllers

import (
	lobby_service "Pairly/services/lobby"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"
)

// statusForLobbyError maps the lobby service's precondition errors to HTTP
// status codes. They are surfaced verbatim as dismissible messages.
func statusForLobbyError(err error) int {
	switch err {
	case lobby_service.ErrLobbyNotFound, lobby_service.ErrInvitationNotFound:
		return http.StatusNotFound
	case lobby_service.ErrNotHost:
		return http.StatusForbidden
	case lobby_service.ErrLobbyNotWaiting, lobby_service.ErrLobbyFull,
		lobby_service.ErrAlreadyMember, lobby_service.ErrNotMember,
		lobby_service.ErrDuplicateInvitation, lobby_service.ErrInvitationNotPending,
		lobby_service.ErrStatusBackward:
		return http.StatusConflict
	case lobby_service.ErrBadGameType, lobby_service.ErrBadStatus:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// @Summary Creates a new lobby
// @Description Creates a lobby for the given game type and joins the creator as host
// @Tags lobby
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_type formData string true "guess_answer or twenty_questions"
// @Param max_players formData integer false "Maximum players (default 2)"
// @Success 200 {object} object{message=string,lobby_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/createLobby [post]
// @Security ApiKeyAuth
func CreateLobby(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		gameType := c.PostForm("game_type")
		maxPlayers, _ := strconv.Atoi(c.PostForm("max_players"))

		newLobby, err := svc.CreateLobby(username, gameType, maxPlayers)
		if err != nil {
			c.JSON(statusForLobbyError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"lobby_id": newLobby.ID, "message": "Lobby created successfully"})
	}
}

// @Summary Gives info of a lobby
// @Description Given a lobby id, returns the lobby with its participants and their profile snapshots
// @Tags lobby
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "Id of the lobby wanted"
// @Success 200 {object} object{lobby_id=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/lobbyInfo/{lobby_id} [get]
// @Security ApiKeyAuth
func GetLobbyInfo(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		lobbyID := c.Param("lobby_id")

		info, err := svc.GetLobby(lobbyID)
		if err != nil {
			c.JSON(statusForLobbyError(err), gin.H{"error": err.Error()})
			return
		}

		participants := make([]gin.H, len(info.Participants))
		for i, p := range info.Participants {
			participants[i] = gin.H{
				"username":     p.Username,
				"display_name": p.DisplayName,
				"icon":         p.UserIcon,
				"is_ready":     p.IsReady,
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"lobby_id":        info.Lobby.ID,
			"host_username":   info.Lobby.HostUsername,
			"game_type":       info.Lobby.GameType,
			"max_players":     info.Lobby.MaxPlayers,
			"current_players": info.Lobby.CurrentPlayers,
			"status":          info.Lobby.Status,
			"created_at":      info.Lobby.CreatedAt,
			"participants":    participants,
		})
	}
}

// @Summary Inserts a user into a lobby
// @Description Adds the user to the relation user-lobby
// @Tags lobby
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/joinLobby/{lobby_id} [post]
func JoinLobby(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		lobbyID := c.Param("lobby_id")
		if err := svc.JoinLobby(lobbyID, username); err != nil {
			c.JSON(statusForLobbyError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "joined lobby successfully"})
	}
}

// @Summary Removes the user from the lobby
// @Description Removes the user from the relation user-lobby; the last member to leave deletes the lobby
// @Tags lobby
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/exitLobby/{lobby_id} [post]
func ExitLobby(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		lobbyID := c.Param("lobby_id")
		if err := svc.LeaveLobby(lobbyID, username); err != nil {
			c.JSON(statusForLobbyError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Exited lobby successfully"})
	}
}

// @Summary Set the caller's ready flag
// @Tags lobby
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Param ready formData boolean true "Ready flag"
// @Success 200 {object} object{message=string}
// @Failure 409 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/setReady/{lobby_id} [post]
func SetReadyStatus(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		lobbyID := c.Param("lobby_id")
		ready := c.PostForm("ready") == "true"

		if err := svc.SetReadyStatus(lobbyID, username, ready); err != nil {
			c.JSON(statusForLobbyError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Ready status updated"})
	}
}

// @Summary Update the lobby status (host only)
// @Description Moves the lobby forward through waiting -> playing -> finished
// @Tags lobby
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Param status formData string true "waiting, playing or finished"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/lobbyStatus/{lobby_id} [patch]
func UpdateLobbyStatus(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		lobbyID := c.Param("lobby_id")
		status := c.PostForm("status")

		if err := svc.UpdateLobbyStatus(lobbyID, username, status); err != nil {
			c.JSON(statusForLobbyError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Lobby status updated"})
	}
}

// @Summary Invite a friend to a lobby
// @Tags lobby
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Param friendUsername formData string true "Username of the friend to invite"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/inviteToLobby/{lobby_id} [post]
func InviteFriendToLobby(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		lobbyID := c.Param("lobby_id")
		friendUsername := c.PostForm("friendUsername")
		if friendUsername == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "friendUsername is required"})
			return
		}

		if err := svc.InviteFriendToLobby(lobbyID, username, friendUsername); err != nil {
			c.JSON(statusForLobbyError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invitation sent"})
	}
}

// @Summary Accept a lobby invitation
// @Description Marks the invitation accepted and joins the lobby
// @Tags lobby
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/acceptInvitation/{lobby_id} [post]
func AcceptLobbyInvitation(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		lobbyID := c.Param("lobby_id")
		if err := svc.AcceptLobbyInvitation(lobbyID, username); err != nil {
			c.JSON(statusForLobbyError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invitation accepted"})
	}
}

// @Summary Decline a lobby invitation
// @Tags lobby
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param lobby_id path string true "lobby_id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/declineInvitation/{lobby_id} [post]
func DeclineLobbyInvitation(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		lobbyID := c.Param("lobby_id")
		if err := svc.DeclineLobbyInvitation(lobbyID, username); err != nil {
			c.JSON(statusForLobbyError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invitation declined"})
	}
}

// @Summary List the caller's pending lobby invitations
// @Tags lobby
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{lobby_id=string,sender=string}
// @Failure 500 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/lobby_invitations [get]
func GetAllLobbyInvitations(db *gorm.DB, svc *lobby_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := currentUsername(c, db)
		if err != nil {
			return
		}

		invitations, err := svc.ListPendingInvitations(username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching invitations"})
			return
		}

		out := make([]gin.H, len(invitations))
		for i, inv := range invitations {
			out[i] = gin.H{
				"lobby_id":    inv.LobbyID,
				"game_type":   inv.GameLobby.GameType,
				"sender":      inv.SenderUsername,
				"sender_icon": inv.SenderProfile.UserIcon,
				"sent_at":     inv.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}
