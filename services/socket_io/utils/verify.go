package socketio_utils

import (
	"log"

	"shapekeeper/middleware"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// VerifyConnection authenticates a socket handshake. Clients send a signed
// token minted by POST /session; a raw session_id is accepted as a fallback
// for local development.
func VerifyConnection(client *socket.Socket) (bool, string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		log.Println("[SOCKET-AUTH] No auth data in handshake")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		client.Disconnect(true)
		return false, ""
	}

	if tokenString, ok := authData["token"].(string); ok && tokenString != "" {
		sessionID, err := middleware.DecodeSocketToken(tokenString)
		if err != nil {
			log.Printf("[SOCKET-AUTH] Invalid token: %v", err)
			client.Emit("error", gin.H{"error": "Authentication failed: invalid token"})
			client.Disconnect(true)
			return false, ""
		}
		return true, sessionID
	}

	if sessionID, ok := authData["session_id"].(string); ok && sessionID != "" {
		return true, sessionID
	}

	log.Println("[SOCKET-AUTH] Handshake carried neither token nor session_id")
	client.Emit("error", gin.H{"error": "Authentication failed: missing session"})
	client.Disconnect(true)
	return false, ""
}
