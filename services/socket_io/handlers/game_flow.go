package handlers

import (
	"log"
	"math/rand"

	"shapekeeper/services/game"
	socketio_types "shapekeeper/services/socket_io/types"
	"shapekeeper/services/sync"
	"shapekeeper/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleStartGame starts the match (host only) and deals the board to the
// whole room.
func HandleStartGame(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer,
	syncManager *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, _ := args[0].(string)

		st, err := engine.StartGame(roomID, sessionID)
		if err != nil {
			emitError(client, err)
			return
		}

		if err := syncManager.SyncRoomState(roomID); err != nil {
			log.Printf("[SYNC] Error mirroring room %s: %v", roomID, err)
		}
		broadcastGameUpdate(sio, st)
	}
}

// HandleDrawLine plays one move. On completion of the board the room gets a
// game_over and the match is archived.
func HandleDrawLine(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer,
	syncManager *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing room id or line key"})
			return
		}
		roomID, _ := args[0].(string)
		lineKey, ok := args[1].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid line key"})
			return
		}

		st, res, err := engine.DrawLine(roomID, sessionID, lineKey)
		if err != nil {
			emitError(client, err)
			return
		}

		client.Emit("line_result", gin.H{
			"completed_squares": res.CompletedSquares,
			"keep_turn":         res.KeepTurn,
			"game_over":         res.GameOver,
		})
		broadcastGameUpdate(sio, st)

		if res.GameOver {
			finishGame(sio, syncManager, st)
		}
	}
}

// HandlePopulateLines fills the board with non-scoring lines (host only).
// Args: room id, count. The server picks the keys: only edges that complete
// no square are candidates, so populate never hands anyone a free square.
func HandlePopulateLines(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing room id or count"})
			return
		}
		roomID, _ := args[0].(string)
		count, ok := args[1].(float64)
		if !ok || count <= 0 {
			client.Emit("error", gin.H{"error": "Invalid count"})
			return
		}

		st, err := engine.GetRoom(roomID)
		if err != nil {
			emitError(client, err)
			return
		}

		safe := game.SafeLines(st)
		rand.Shuffle(len(safe), func(i, j int) { safe[i], safe[j] = safe[j], safe[i] })
		if int(count) < len(safe) {
			safe = safe[:int(count)]
		}

		after, inserted, err := engine.PopulateLines(roomID, sessionID, safe)
		if err != nil {
			emitError(client, err)
			return
		}

		log.Printf("[POPULATE] Room %s: host filled %d lines", roomID, inserted)
		client.Emit("lines_populated", gin.H{"inserted": inserted})
		broadcastGameUpdate(sio, after)
	}
}

// HandleEndGame finishes the game early (host only).
func HandleEndGame(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer,
	syncManager *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, _ := args[0].(string)

		st, err := engine.EndGame(roomID, sessionID)
		if err != nil {
			emitError(client, err)
			return
		}
		finishGame(sio, syncManager, st)
	}
}

// HandleResetGame sends the room back to the lobby (host only).
func HandleResetGame(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer,
	syncManager *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, _ := args[0].(string)

		st, err := engine.ResetGame(roomID, sessionID)
		if err != nil {
			emitError(client, err)
			return
		}
		if err := syncManager.SyncRoomState(roomID); err != nil {
			log.Printf("[SYNC] Error mirroring room %s: %v", roomID, err)
		}
		broadcastRoomUpdate(sio, st)
	}
}

// HandleGetGameState sends the caller a private snapshot, for reconciling
// after a reconnect. The caller must hold a seat row for the room.
func HandleGetGameState(engine *game.Engine, client *socket.Socket,
	db *gorm.DB, sessionID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, _ := args[0].(string)

		if err := utils.SessionInRoom(db, roomID, sessionID, client); err != nil {
			return
		}

		st, err := engine.GetRoom(roomID)
		if err != nil {
			emitError(client, err)
			return
		}
		client.Emit("game_state", gin.H{"room": st})
	}
}

// finishGame broadcasts the standings and archives the match.
func finishGame(sio *socketio_types.SocketServer, syncManager *sync.SyncManager, st *game.RoomState) {
	broadcastGameOver(sio, st)
	if err := syncManager.ArchiveMatch(st); err != nil {
		log.Printf("[SYNC] Error archiving match for room %s: %v", st.ID, err)
	}
	if err := syncManager.SyncRoomState(st.ID); err != nil {
		log.Printf("[SYNC] Error mirroring room %s: %v", st.ID, err)
	}
}
