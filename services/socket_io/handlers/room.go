package handlers

import (
	"log"

	"shapekeeper/models/postgres"
	"shapekeeper/services/game"
	socketio_types "shapekeeper/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleJoinRoom joins the caller to a room by code: the engine seats (or
// reconnects) the player, the socket joins the room channel, and everyone in
// the room gets the updated roster.
func HandleJoinRoom(engine *game.Engine, client *socket.Socket,
	db *gorm.DB, sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinRoom - Session: %s, Args: %v, Socket ID: %s",
			sessionID, args, client.Id())

		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing room code or player name"})
			return
		}
		code, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room code"})
			return
		}
		name, _ := args[1].(string)

		st, res, err := engine.JoinRoom(code, sessionID, name)
		if err != nil {
			emitError(client, err)
			return
		}

		if !res.Rejoined {
			p := st.PlayerBySession(sessionID)
			seat := postgres.RoomPlayer{
				RoomID:    st.ID,
				SessionID: sessionID,
				Name:      name,
				Color:     p.Color,
			}
			if err := db.Create(&seat).Error; err != nil {
				log.Printf("[JOIN] Error persisting seat row: %v", err)
			}
		}

		client.Join(socket.Room(st.ID))
		log.Printf("[JOIN-SUCCESS] Session %s joined room %s (rejoined=%v)", sessionID, st.ID, res.Rejoined)

		client.Emit("room_joined", gin.H{
			"room":      st,
			"player_id": res.PlayerID,
			"rejoined":  res.Rejoined,
		})
		broadcastRoomUpdate(sio, st)

		// A mid-game rejoin needs the board too.
		if st.Status == game.StatusPlaying {
			broadcastGameUpdate(sio, st)
		}
	}
}

// HandleLeaveRoom removes the caller from a room (or marks them disconnected
// mid-game) and tells the survivors. Lobby departures drop the seat row; the
// last departure drops the room row too.
func HandleLeaveRoom(engine *game.Engine, client *socket.Socket,
	db *gorm.DB, sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room id"})
			return
		}

		st, res, err := engine.LeaveRoom(roomID, sessionID)
		if err != nil {
			emitError(client, err)
			return
		}

		client.Leave(socket.Room(roomID))
		client.Emit("room_left", gin.H{"room_id": roomID})

		if !res.Disconnected {
			if err := db.Where("room_id = ? AND session_id = ?", roomID, sessionID).
				Delete(&postgres.RoomPlayer{}).Error; err != nil {
				log.Printf("[LEAVE] Error deleting seat row: %v", err)
			}
		}

		if res.RoomDeleted {
			if err := db.Where("id = ?", roomID).Delete(&postgres.GameRoom{}).Error; err != nil {
				log.Printf("[LEAVE] Error deleting room row: %v", err)
			}
			log.Printf("[LEAVE] Room %s deleted after last player left", roomID)
			return
		}
		broadcastRoomUpdate(sio, st)
	}
}

// HandleToggleReady flips the caller's ready flag.
func HandleToggleReady(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, _ := args[0].(string)

		st, ready, err := engine.ToggleReady(roomID, sessionID)
		if err != nil {
			emitError(client, err)
			return
		}
		client.Emit("ready_toggled", gin.H{"ready": ready})
		broadcastRoomUpdate(sio, st)
	}
}

// HandleUpdatePlayer changes the caller's name and/or color.
// Args: room id, name (may be ""), color (may be "").
func HandleUpdatePlayer(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 3 {
			client.Emit("error", gin.H{"error": "Missing room id, name or color"})
			return
		}
		roomID, _ := args[0].(string)
		name, _ := args[1].(string)
		color, _ := args[2].(string)

		st, err := engine.UpdatePlayer(roomID, sessionID, name, color)
		if err != nil {
			emitError(client, err)
			return
		}
		broadcastRoomUpdate(sio, st)
	}
}

// HandleUpdateGridSize changes the board size (host only).
func HandleUpdateGridSize(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing room id or grid size"})
			return
		}
		roomID, _ := args[0].(string)
		size, ok := args[1].(float64) // JSON numbers arrive as float64
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid grid size"})
			return
		}

		st, err := engine.UpdateGridSize(roomID, sessionID, int(size))
		if err != nil {
			emitError(client, err)
			return
		}
		broadcastRoomUpdate(sio, st)
	}
}

// HandleUpdatePartyMode toggles tile effects (host only).
func HandleUpdatePartyMode(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing room id or party mode flag"})
			return
		}
		roomID, _ := args[0].(string)
		partyMode, ok := args[1].(bool)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid party mode flag"})
			return
		}

		st, err := engine.UpdatePartyMode(roomID, sessionID, partyMode)
		if err != nil {
			emitError(client, err)
			return
		}
		broadcastRoomUpdate(sio, st)
	}
}
