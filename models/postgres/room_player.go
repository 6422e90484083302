package postgres

import (
	"time"
)

/*
 * 'RoomPlayer' records a session's seat in a room. One row per
 * (room, session); rejoining reuses the row.
 */
type RoomPlayer struct {
	// NOTE: composite primary key definition
	RoomID    string    `gorm:"primaryKey;size:50;not null"`
	SessionID string    `gorm:"primaryKey;size:64;not null;index"`
	Name      string    `gorm:"size:50"`
	Color     string    `gorm:"size:8"`
	JoinedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	GameRoom GameRoom `gorm:"foreignKey:RoomID"`
}
