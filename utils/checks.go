package utils

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// RoomExists checks the durable row and tells the client when it is missing.
func RoomExists(db *gorm.DB, roomID string, client *socket.Socket) error {
	_, err := CheckRoomExists(db, roomID)
	if err != nil {
		fmt.Println("Room does not exist:", roomID)
		client.Emit("error", gin.H{"error": "Room does not exist"})
	}
	return err
}

// SessionInRoom checks the seat row and tells the client when it is missing.
func SessionInRoom(db *gorm.DB, roomID string, sessionID string, client *socket.Socket) error {
	ok, err := IsPlayerInRoom(db, roomID, sessionID)
	if err != nil {
		client.Emit("error", gin.H{"error": "Database error"})
		return err
	}
	if !ok {
		fmt.Println("Session is NOT in room:", sessionID, "Room:", roomID)
		client.Emit("error", gin.H{"error": "You must join the room first"})
		return errors.New("session not in room")
	}
	return nil
}

// GetSessionIDFromClient pulls the session id out of the socket handshake
// auth payload. Clients send either a raw session_id or a signed token (the
// token path is verified by the connection gate before handlers run).
func GetSessionIDFromClient(client *socket.Socket) (string, error) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No session provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing session"})
		return "", errors.New("authentication data missing")
	}

	sessionID, exists := authData["session_id"].(string)
	if !exists || sessionID == "" {
		return "", errors.New("session id not found in authentication")
	}

	return sessionID, nil
}
