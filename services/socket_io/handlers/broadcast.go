package handlers

import (
	socketio_types "shapekeeper/services/socket_io/types"
	socketio_utils "shapekeeper/services/socket_io/utils"
	"shapekeeper/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// broadcastRoomUpdate pushes the lobby view of a room to everyone in it.
func broadcastRoomUpdate(sio *socketio_types.SocketServer, st *game.RoomState) {
	sio.BroadcastToRoom(st.ID, "room_updated", gin.H{
		"room":   st,
		"digest": socketio_utils.StateDigest(st),
	})
}

// broadcastGameUpdate pushes the full game state to everyone in the room.
// The digest lets clients skip renders when nothing they show has changed.
func broadcastGameUpdate(sio *socketio_types.SocketServer, st *game.RoomState) {
	sio.BroadcastToRoom(st.ID, "game_updated", gin.H{
		"room":   st,
		"digest": socketio_utils.StateDigest(st),
	})
}

// broadcastGameOver announces the final standings.
func broadcastGameOver(sio *socketio_types.SocketServer, st *game.RoomState) {
	winner := ""
	best := -1
	scores := make(map[string]int, len(st.Players))
	for _, p := range st.Players {
		scores[p.Name] = p.Score
		if p.Score > best {
			best = p.Score
			winner = p.Name
		}
	}
	sio.BroadcastToRoom(st.ID, "game_over", gin.H{
		"room":   st,
		"winner": winner,
		"scores": scores,
	})
}

// emitError reports an engine error back to the acting client only.
func emitError(client *socket.Socket, err error) {
	client.Emit("error", gin.H{"error": err.Error()})
}
