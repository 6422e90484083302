package handlers

import (
	"log"

	socketio_types "shapekeeper/services/socket_io/types"
)

// HandleDisconnecting drops the connection from the session map. Seats are
// not touched: a dropped player can rejoin and pick their game back up.
func HandleDisconnecting(sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] Session %s disconnecting", sessionID)
		sio.RemoveConnection(sessionID)
	}
}
