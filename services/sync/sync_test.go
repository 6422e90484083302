package sync

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapekeeper/services/game"
)

func finishedRoom() *game.RoomState {
	return &game.RoomState{
		ID:        "room_abc",
		Code:      "AB12CD",
		GridSize:  5,
		PartyMode: true,
		Status:    game.StatusFinished,
		Players: []game.Player{
			{ID: "p0", Name: "Ana", Score: 10},
			{ID: "p1", Name: "Bea", Score: 6},
		},
		Squares: map[string]game.Square{
			"0,0": {}, "0,1": {},
		},
	}
}

func TestArchiveMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sm := NewSyncManager(nil, db)

	mock.ExpectExec(`INSERT INTO match_results`).
		WithArgs("room_abc", 5, true, "Ana", sqlmock.AnyArg(), 2).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, sm.ArchiveMatch(finishedRoom()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveMatchRejectsUnfinished(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sm := NewSyncManager(nil, db)

	st := finishedRoom()
	st.Status = game.StatusPlaying
	assert.Error(t, sm.ArchiveMatch(st))
}
