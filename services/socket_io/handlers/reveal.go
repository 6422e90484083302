package handlers

import (
	"shapekeeper/services/game"
	socketio_types "shapekeeper/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleRevealMultiplier applies the hidden multiplier under a square the
// caller owns. The engine enforces single use; clients that double-tap just
// get an error back.
func HandleRevealMultiplier(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing room id or square key"})
			return
		}
		roomID, _ := args[0].(string)
		squareKey, _ := args[1].(string)

		st, res, err := engine.RevealMultiplier(roomID, sessionID, squareKey)
		if err != nil {
			emitError(client, err)
			return
		}

		sio.BroadcastToRoom(st.ID, "multiplier_revealed", gin.H{
			"square_key": squareKey,
			"multiplier": res.Multiplier,
			"new_score":  res.NewScore,
			"prompt":     res.Prompt,
		})
		broadcastGameUpdate(sio, st)
	}
}

// HandleRevealEffect uncovers the tile effect on a square the caller owns.
func HandleRevealEffect(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing room id or square key"})
			return
		}
		roomID, _ := args[0].(string)
		squareKey, _ := args[1].(string)

		st, def, err := engine.RevealEffect(roomID, sessionID, squareKey)
		if err != nil {
			emitError(client, err)
			return
		}

		sio.BroadcastToRoom(st.ID, "effect_revealed", gin.H{
			"square_key":  squareKey,
			"effect_id":   def.ID,
			"effect_type": def.Type,
			"name":        def.Name,
			"description": def.Description,
		})
		broadcastGameUpdate(sio, st)
	}
}

// HandleActivateEffect runs a revealed effect. Args: room id, square key and
// an optional target (square key or player id, depending on the effect).
func HandleActivateEffect(engine *game.Engine, client *socket.Socket,
	sessionID string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing room id or square key"})
			return
		}
		roomID, _ := args[0].(string)
		squareKey, _ := args[1].(string)
		target := ""
		if len(args) > 2 {
			target, _ = args[2].(string)
		}

		st, res, err := engine.ActivateEffect(roomID, sessionID, squareKey, target)
		if err != nil {
			emitError(client, err)
			return
		}

		sio.BroadcastToRoom(st.ID, "effect_activated", gin.H{
			"square_key": squareKey,
			"result":     res,
		})
		broadcastGameUpdate(sio, st)
	}
}
