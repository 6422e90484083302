package utils

import (
	"fmt"

	"shapekeeper/models/postgres"

	"gorm.io/gorm"
)

// CheckRoomExists returns the durable room row, or an error if there is none.
func CheckRoomExists(db *gorm.DB, roomID string) (*postgres.GameRoom, error) {
	var room postgres.GameRoom
	result := db.Where("id = ?", roomID).First(&room)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("room not found")
		}
		return nil, result.Error
	}

	return &room, nil
}

// IsPlayerInRoom reports whether a session has a seat row in the room.
func IsPlayerInRoom(db *gorm.DB, roomID string, sessionID string) (bool, error) {
	var count int64
	err := db.Model(&postgres.RoomPlayer{}).
		Where("room_id = ? AND session_id = ?", roomID, sessionID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
