package routes

import (
	"Pairly/controllers"
	"Pairly/middleware"
	lobby_service "Pairly/services/lobby"
	"Pairly/services/redis"
	state_sync "Pairly/services/sync"
	utils "Pairly/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	// Lobby operations go through the service so REST and socket.io share
	// the same rules and change notifications
	lobbies := lobby_service.NewService(db, state_sync.NewRedisNotifier(redisClient))

	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/users/:username", controllers.GetUserPublicInfo(db))

	api.POST("/login", controllers.Login(db))

	api.POST("/signup", controllers.SignUp(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))

		authentication.PATCH("/update", controllers.UpdateUserInfo(db))

		// Friends
		authentication.GET("/friends", controllers.ListFriends(db))

		authentication.POST("/sendFriendRequest", controllers.SendFriendRequest(db))

		authentication.GET("/friendship_requests", controllers.GetAllFriendshipRequests(db))

		authentication.POST("/acceptFriendRequest", controllers.AcceptFriendRequest(db))

		authentication.DELETE("/declineFriendRequest", controllers.DeclineFriendRequest(db))

		authentication.DELETE("/deleteFriend", controllers.DeleteFriend(db))

		// Lobbies
		authentication.POST("/createLobby", controllers.CreateLobby(db, lobbies))

		authentication.GET("/lobbyInfo/:lobby_id", controllers.GetLobbyInfo(db, lobbies))

		authentication.POST("/joinLobby/:lobby_id", controllers.JoinLobby(db, lobbies))

		authentication.POST("/exitLobby/:lobby_id", controllers.ExitLobby(db, lobbies))

		authentication.POST("/setReady/:lobby_id", controllers.SetReadyStatus(db, lobbies))

		authentication.PATCH("/lobbyStatus/:lobby_id", controllers.UpdateLobbyStatus(db, lobbies))

		// Lobby invitations
		authentication.POST("/inviteToLobby/:lobby_id", controllers.InviteFriendToLobby(db, lobbies))

		authentication.POST("/acceptInvitation/:lobby_id", controllers.AcceptLobbyInvitation(db, lobbies))

		authentication.POST("/declineInvitation/:lobby_id", controllers.DeclineLobbyInvitation(db, lobbies))

		authentication.GET("/lobby_invitations", controllers.GetAllLobbyInvitations(db, lobbies))

		// Timeline photos
		authentication.GET("/photos", controllers.ListTimelinePhotos(db))

		authentication.POST("/photos", controllers.AddTimelinePhoto(db))

		authentication.DELETE("/photos/:photo_id", controllers.DeleteTimelinePhoto(db))
	}
}
