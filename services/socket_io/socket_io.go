package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shapekeeper/services/game"
	"shapekeeper/services/socket_io/handlers"
	"shapekeeper/services/sync"

	socketio_types "shapekeeper/services/socket_io/types"
	socketio_utils "shapekeeper/services/socket_io/utils"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB,
	engine *game.Engine, syncManager *sync.SyncManager) {
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

	sio.SessionConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, sessionID := socketio_utils.VerifyConnection(client)
		if !success {
			return
		}

		(*socketio_types.SocketServer)(sio).AddConnection(sessionID, client)
		fmt.Println("An individual just connected!: ", sessionID)

		sioT := (*socketio_types.SocketServer)(sio)

		// Lobby lifecycle
		client.On("join_room", handlers.HandleJoinRoom(engine, client, db, sessionID, sioT))
		client.On("leave_room", handlers.HandleLeaveRoom(engine, client, db, sessionID, sioT))
		client.On("toggle_ready", handlers.HandleToggleReady(engine, client, sessionID, sioT))
		client.On("update_player", handlers.HandleUpdatePlayer(engine, client, sessionID, sioT))
		client.On("update_grid_size", handlers.HandleUpdateGridSize(engine, client, sessionID, sioT))
		client.On("update_party_mode", handlers.HandleUpdatePartyMode(engine, client, sessionID, sioT))

		// Game flow
		client.On("start_game", handlers.HandleStartGame(engine, client, sessionID, sioT, syncManager))
		client.On("draw_line", handlers.HandleDrawLine(engine, client, sessionID, sioT, syncManager))
		client.On("populate_lines", handlers.HandlePopulateLines(engine, client, sessionID, sioT))
		client.On("end_game", handlers.HandleEndGame(engine, client, sessionID, sioT, syncManager))
		client.On("reset_game", handlers.HandleResetGame(engine, client, sessionID, sioT, syncManager))
		client.On("get_game_state", handlers.HandleGetGameState(engine, client, db, sessionID))

		// Multipliers and tile effects
		client.On("reveal_multiplier", handlers.HandleRevealMultiplier(engine, client, sessionID, sioT))
		client.On("reveal_effect", handlers.HandleRevealEffect(engine, client, sessionID, sioT))
		client.On("activate_effect", handlers.HandleActivateEffect(engine, client, sessionID, sioT))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(sessionID, sioT))
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
