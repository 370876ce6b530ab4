package socket_io

import (
	lobby_service "Pairly/services/lobby"
	"Pairly/services/redis"
	"Pairly/services/socket_io/handlers"
	state_sync "Pairly/services/sync"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	socketio_types "Pairly/services/socket_io/types"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: initialize the maps, otherwise it panics
	sio.UserConnections = make(map[string]*socket.Socket)
	sio.Engines = make(map[string]*state_sync.Engine)

	notifier := state_sync.NewRedisNotifier(redisClient)
	env := &handlers.Env{
		DB:       db,
		Redis:    redisClient,
		Store:    state_sync.NewGormStore(db),
		Notifier: notifier,
		Lobbies:  lobby_service.NewService(db, notifier),
		Sio:      (*socketio_types.SocketServer)(sio),
	}

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, username := VerifyUserConnection(client, db)
		if !success {
			return
		}

		// Add connection to map
		(*socketio_types.SocketServer)(sio).AddConnection(username, client)

		fmt.Println("An individual just connected!: ", username)

		// Join the user to a room corresponding to a Pairly game lobby
		client.On("join_lobby", handlers.HandleJoinLobby(env, client, username))

		// Exit a lobby voluntarily
		client.On("exit_lobby", handlers.HandleExitLobby(env, client, username))

		// Toggle the ready flag inside a waiting lobby
		client.On("set_ready", handlers.HandleSetReady(env, client, username))

		// Start game (host only, everyone ready)
		client.On("start_game", handlers.HandleStartGame(env, client, username))

		// Shared game actions, dispatched on the lobby's game type
		client.On("select_category", handlers.HandleSelectCategory(env, client, username))
		client.On("submit_guess", handlers.HandleSubmitGuess(env, client, username))
		client.On("play_again", handlers.HandlePlayAgain(env, client, username))
		client.On("get_game_state", handlers.HandleGetGameState(env, client, username))

		// Guess-My-Answer actions
		client.On("submit_answer", handlers.HandleSubmitAnswer(env, client, username))
		client.On("advance_question", handlers.HandleAdvanceQuestion(env, client, username))

		// Twenty Questions actions
		client.On("select_secret_item", handlers.HandleSelectSecretItem(env, client, username))
		client.On("ask_question", handlers.HandleAskQuestion(env, client, username))
		client.On("answer_question", handlers.HandleAnswerQuestion(env, client, username))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(env, username))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
