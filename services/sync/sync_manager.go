package sync

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"shapekeeper/services/game"
	"shapekeeper/services/redis"
)

type SyncManager struct {
	store *redis.GameStore
	db    *sql.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(store *redis.GameStore, db *sql.DB) *SyncManager {
	return &SyncManager{
		store: store,
		db:    db,
	}
}

// SyncRoomState mirrors the live room status onto the durable row.
func (sm *SyncManager) SyncRoomState(roomID string) error {
	st, err := sm.store.GetRoom(roomID)
	if err != nil {
		return fmt.Errorf("error getting room state from Redis: %v", err)
	}

	query := `
		UPDATE game_rooms
		SET
			status = $1,
			grid_size = $2,
			party_mode = $3,
			host_session_id = $4
		WHERE id = $5
	`

	_, err = sm.db.Exec(query,
		string(st.Status),
		st.GridSize,
		st.PartyMode,
		st.HostSessionID,
		st.ID)

	if err != nil {
		return fmt.Errorf("error updating room state in PostgreSQL: %v", err)
	}

	return nil
}

// ArchiveMatch writes a finished game into match_results: winner, per-player
// final scores as JSON, and board size for history screens.
func (sm *SyncManager) ArchiveMatch(st *game.RoomState) error {
	if st.Status != game.StatusFinished {
		return fmt.Errorf("room %s is not finished", st.ID)
	}

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

	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("error marshaling final scores: %v", err)
	}

	query := `
		INSERT INTO match_results (room_id, grid_size, party_mode, winner_name, final_scores, square_count)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = sm.db.Exec(query,
		st.ID,
		st.GridSize,
		st.PartyMode,
		winner,
		scoresJSON,
		len(st.Squares))

	if err != nil {
		return fmt.Errorf("error archiving match in PostgreSQL: %v", err)
	}

	return nil
}

// CleanupRoomData archives the final state and removes the live Redis keys.
// Called when a finished room is torn down rather than reset.
func (sm *SyncManager) CleanupRoomData(st *game.RoomState) error {
	if err := sm.ArchiveMatch(st); err != nil {
		return fmt.Errorf("error syncing final room state: %v", err)
	}

	query := `UPDATE game_rooms SET status = $1 WHERE id = $2`
	if _, err := sm.db.Exec(query, string(game.StatusFinished), st.ID); err != nil {
		return fmt.Errorf("error updating room row: %v", err)
	}

	if err := sm.store.DeleteRoom(st); err != nil {
		return fmt.Errorf("error cleaning Redis room data: %v", err)
	}

	return nil
}
