package postgres

import (
	"time"
)

/*
 * 'GameRoom' is the durable row behind a room. The live state lives in Redis;
 * this row is what room listings and match history hang off.
 */
type GameRoom struct {
	ID            string    `gorm:"primaryKey;size:50;not null"`
	Code          string    `gorm:"size:8;not null;uniqueIndex:idx_game_rooms_code"`
	HostSessionID string    `gorm:"size:64;index:idx_game_rooms_host"`
	GridSize      int       `gorm:"default:10"`
	PartyMode     bool      `gorm:"default:false"`
	Status        string    `gorm:"size:16;default:'lobby';index:idx_game_rooms_status"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with players seated in the room
	RoomPlayers []*RoomPlayer `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
