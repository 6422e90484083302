package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'MatchResult' archives a finished game: final scores and winner, written by
 * the sync manager when a room reaches the finished state.
 */
type MatchResult struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`
	RoomID      string         `gorm:"size:50;not null;index:idx_match_results_room"`
	GridSize    int            `gorm:"default:10"`
	PartyMode   bool           `gorm:"default:false"`
	WinnerName  string         `gorm:"size:50"`
	FinalScores datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	SquareCount int            `gorm:"default:0"`
	FinishedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	GameRoom GameRoom `gorm:"foreignKey:RoomID"`
}
