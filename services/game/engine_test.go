package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	game_constants "shapekeeper/constants/game"
)

func newTestEngine() *Engine {
	return NewEngine(NewMemoryStore())
}

// startedRoom creates a two-player room on a 5x5 grid and starts the game.
// Player sessions are "host" and "guest"; the host moves first.
func startedRoom(t *testing.T, e *Engine, partyMode bool) *RoomState {
	t.Helper()
	st, err := e.CreateRoom("host", "Ana", 5, partyMode)
	require.NoError(t, err)

	_, _, err = e.JoinRoom(st.Code, "guest", "Bea")
	require.NoError(t, err)
	_, _, err = e.ToggleReady(st.ID, "guest")
	require.NoError(t, err)

	st, err = e.StartGame(st.ID, "host")
	require.NoError(t, err)
	return st
}

func TestCreateRoom(t *testing.T) {
	e := newTestEngine()
	st, err := e.CreateRoom("host", "Ana", 10, false)
	require.NoError(t, err)

	assert.Equal(t, StatusLobby, st.Status)
	assert.Equal(t, "host", st.HostSessionID)
	assert.Len(t, st.Code, game_constants.RoomCodeLength)
	assert.Len(t, st.Players, 1)
	assert.Equal(t, 0, st.Players[0].PlayerIndex)
	assert.True(t, st.Players[0].IsConnected)

	_, err = e.CreateRoom("host", "Ana", 7, false)
	assert.ErrorIs(t, err, ErrInvalidGridSize)
}

func TestJoinRoom(t *testing.T) {
	e := newTestEngine()
	st, err := e.CreateRoom("host", "Ana", 5, false)
	require.NoError(t, err)

	joined, res, err := e.JoinRoom(st.Code, "guest", "Bea")
	require.NoError(t, err)
	assert.False(t, res.Rejoined)
	assert.Len(t, joined.Players, 2)
	assert.Equal(t, 1, joined.Players[1].PlayerIndex)
	// Second player gets the next free palette color.
	assert.NotEqual(t, joined.Players[0].Color, joined.Players[1].Color)

	_, _, err = e.JoinRoom("ZZZZZZ", "x", "Nobody")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinRoomFull(t *testing.T) {
	e := newTestEngine()
	st, err := e.CreateRoom("s0", "P0", 5, false)
	require.NoError(t, err)
	for i := 1; i < game_constants.MaxPlayersPerRoom; i++ {
		_, _, err = e.JoinRoom(st.Code, string(rune('a'+i)), "P")
		require.NoError(t, err)
	}
	_, _, err = e.JoinRoom(st.Code, "overflow", "P7")
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestRejoinDuringGame(t *testing.T) {
	e := newTestEngine()
	st := startedRoom(t, e, false)

	// A new session cannot join mid-game.
	_, _, err := e.JoinRoom(st.Code, "stranger", "Cleo")
	assert.ErrorIs(t, err, ErrGameInProgress)

	// A known session reconnects, even mid-game.
	_, res, err := e.LeaveRoom(st.ID, "guest")
	require.NoError(t, err)
	assert.True(t, res.Disconnected)

	back, jres, err := e.JoinRoom(st.Code, "guest", "")
	require.NoError(t, err)
	assert.True(t, jres.Rejoined)
	assert.True(t, back.PlayerBySession("guest").IsConnected)
	assert.Len(t, back.Players, 2)
}

func TestLeaveRoomLobby(t *testing.T) {
	e := newTestEngine()
	st, err := e.CreateRoom("host", "Ana", 5, false)
	require.NoError(t, err)
	_, _, err = e.JoinRoom(st.Code, "guest", "Bea")
	require.NoError(t, err)
	_, _, err = e.JoinRoom(st.Code, "third", "Cleo")
	require.NoError(t, err)

	// Host leaves: role transfers to the oldest remaining player and the
	// survivors are re-indexed contiguously.
	after, res, err := e.LeaveRoom(st.ID, "host")
	require.NoError(t, err)
	assert.False(t, res.RoomDeleted)
	assert.Equal(t, "guest", after.HostSessionID)
	require.Len(t, after.Players, 2)
	assert.Equal(t, 0, after.Players[0].PlayerIndex)
	assert.Equal(t, 1, after.Players[1].PlayerIndex)

	_, _, err = e.LeaveRoom(st.ID, "guest")
	require.NoError(t, err)
	_, res, err = e.LeaveRoom(st.ID, "third")
	require.NoError(t, err)
	assert.True(t, res.RoomDeleted)

	_, err = e.GetRoom(st.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestStartGameValidation(t *testing.T) {
	e := newTestEngine()
	st, err := e.CreateRoom("host", "Ana", 5, false)
	require.NoError(t, err)

	_, err = e.StartGame(st.ID, "host")
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	_, _, err = e.JoinRoom(st.Code, "guest", "Bea")
	require.NoError(t, err)

	_, err = e.StartGame(st.ID, "guest")
	assert.ErrorIs(t, err, ErrNotHost)

	_, err = e.StartGame(st.ID, "host")
	assert.ErrorIs(t, err, ErrNotAllReady)

	_, _, err = e.ToggleReady(st.ID, "guest")
	require.NoError(t, err)
	started, err := e.StartGame(st.ID, "host")
	require.NoError(t, err)
	assert.Equal(t, StatusPlaying, started.Status)
	assert.Equal(t, 0, started.CurrentPlayerIndex)
	// Every square carries a hidden multiplier from the start.
	assert.Len(t, started.Multipliers, started.TotalSquares())
	assert.Empty(t, started.TileEffects)

	_, err = e.StartGame(st.ID, "host")
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestDrawLineTurnAndDuplicates(t *testing.T) {
	e := newTestEngine()
	st := startedRoom(t, e, false)

	_, _, err := e.DrawLine(st.ID, "guest", "0,0-0,1")
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, _, err = e.DrawLine(st.ID, "host", "0,0-0,2")
	assert.ErrorIs(t, err, ErrInvalidLineKey)

	after, res, err := e.DrawLine(st.ID, "host", "0,0-0,1")
	require.NoError(t, err)
	assert.Empty(t, res.CompletedSquares)
	assert.False(t, res.KeepTurn)
	assert.Equal(t, 1, after.CurrentPlayerIndex)

	_, _, err = e.DrawLine(st.ID, "guest", "0,0-0,1")
	assert.ErrorIs(t, err, ErrLineAlreadyDrawn)
}

func TestDrawLineCompletesSquareAndKeepsTurn(t *testing.T) {
	e := newTestEngine()
	st := startedRoom(t, e, false)

	// host, guest, host set up three sides of square (0,0); guest closes it.
	moves := []struct {
		session string
		key     string
	}{
		{"host", "0,0-0,1"},
		{"guest", "1,0-1,1"},
		{"host", "0,0-1,0"},
	}
	for _, m := range moves {
		_, _, err := e.DrawLine(st.ID, m.session, m.key)
		require.NoError(t, err)
	}

	after, res, err := e.DrawLine(st.ID, "guest", "0,1-1,1")
	require.NoError(t, err)
	assert.Equal(t, []string{"0,0"}, res.CompletedSquares)
	assert.True(t, res.KeepTurn)
	assert.Equal(t, 1, after.CurrentPlayerIndex, "completing a square keeps the turn")

	sq := after.Squares["0,0"]
	guest := after.PlayerBySession("guest")
	assert.Equal(t, guest.ID, sq.OwnerID)
	assert.Equal(t, 1, guest.Score)
	require.NotNil(t, sq.Multiplier, "square records its hidden multiplier at completion")
	assert.False(t, sq.Revealed)
}

func TestDrawLineDoubleSquare(t *testing.T) {
	e := newTestEngine()
	st := startedRoom(t, e, false)

	// One vertical line in the middle closes two squares at once when both
	// neighbors are otherwise complete.
	setup := []struct {
		session string
		key     string
	}{
		{"host", "0,0-0,1"},  // top of (0,0)
		{"guest", "0,1-0,2"}, // top of (0,1)
		{"host", "1,0-1,1"},  // bottom of (0,0)
		{"guest", "1,1-1,2"}, // bottom of (0,1)
		{"host", "0,0-1,0"},  // left of (0,0)
		{"guest", "0,2-1,2"}, // right of (0,1)
	}
	for _, m := range setup {
		_, _, err := e.DrawLine(st.ID, m.session, m.key)
		require.NoError(t, err)
	}

	after, res, err := e.DrawLine(st.ID, "host", "0,1-1,1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"0,0", "0,1"}, res.CompletedSquares)
	assert.Equal(t, 2, after.PlayerBySession("host").Score)
	assert.True(t, res.KeepTurn)
}

func TestFullGameScoreConservation(t *testing.T) {
	e := newTestEngine()
	st := startedRoom(t, e, false)

	keys := AllLineKeys(5)
	var gameOver bool
	for !gameOver {
		cur := st.CurrentPlayer()
		require.NotNil(t, cur)
		moved := false
		for _, key := range keys {
			if st.HasLine(key) {
				continue
			}
			next, res, err := e.DrawLine(st.ID, cur.SessionID, key)
			require.NoError(t, err)
			st = next
			gameOver = res.GameOver
			moved = true
			break
		}
		require.True(t, moved, "no legal move left but game not over")
	}

	assert.Equal(t, StatusFinished, st.Status)
	assert.Len(t, st.Squares, st.TotalSquares())
	total := 0
	for _, p := range st.Players {
		total += p.Score
	}
	assert.Equal(t, st.TotalSquares(), total, "one point per square, nothing lost or minted")

	// Moves are rejected once the game is over.
	_, _, err := e.DrawLine(st.ID, "host", "0,0-0,1")
	assert.ErrorIs(t, err, ErrGameNotInProgress)
}

func TestRevealMultiplierSingleUse(t *testing.T) {
	e := newTestEngine()
	st := startedRoom(t, e, false)

	moves := []struct {
		session string
		key     string
	}{
		{"host", "0,0-0,1"},
		{"guest", "1,0-1,1"},
		{"host", "0,0-1,0"},
		{"guest", "0,1-1,1"}, // guest closes (0,0)
	}
	for _, m := range moves {
		var err error
		st, _, err = e.DrawLine(st.ID, m.session, m.key)
		require.NoError(t, err)
	}

	_, _, err := e.RevealMultiplier(st.ID, "host", "0,0")
	assert.ErrorIs(t, err, ErrNotYourSquare)

	_, _, err = e.RevealMultiplier(st.ID, "guest", "9,9")
	assert.ErrorIs(t, err, ErrSquareNotFound)

	after, res, err := e.RevealMultiplier(st.ID, "guest", "0,0")
	require.NoError(t, err)
	guest := after.PlayerBySession("guest")
	switch res.Multiplier.Type {
	case MultiplierScore:
		assert.Equal(t, 1*res.Multiplier.Value, guest.Score)
	case MultiplierSocial:
		assert.NotEmpty(t, res.Prompt)
		assert.Equal(t, 1, guest.Score)
	}
	assert.True(t, after.Squares["0,0"].Revealed)

	// A second reveal must not multiply again.
	_, _, err = e.RevealMultiplier(st.ID, "guest", "0,0")
	assert.ErrorIs(t, err, ErrAlreadyRevealed)
	check, err := e.GetRoom(st.ID)
	require.NoError(t, err)
	assert.Equal(t, guest.Score, check.PlayerBySession("guest").Score)
}

func TestPopulateLines(t *testing.T) {
	e := newTestEngine()
	st := startedRoom(t, e, false)

	st, _, err := e.DrawLine(st.ID, "host", "0,0-0,1")
	require.NoError(t, err)
	turnBefore := st.CurrentPlayerIndex
	scoreBefore := st.Players[0].Score + st.Players[1].Score

	_, _, err = e.PopulateLines(st.ID, "guest", []string{"2,2-2,3"})
	assert.ErrorIs(t, err, ErrNotHost)

	after, n, err := e.PopulateLines(st.ID, "host",
		[]string{"2,2-2,3", "0,0-0,1", "bogus", "3,3-4,3"})
	require.NoError(t, err)
	assert.Equal(t, 2, n, "duplicates and invalid keys are skipped")

	// Filler lines belong to nobody, score nothing, and leave the turn alone.
	line := after.Lines["2,2-2,3"]
	assert.Equal(t, PopulateOwnerIndex, line.OwnerIndex)
	assert.Empty(t, line.OwnerID)
	assert.Equal(t, turnBefore, after.CurrentPlayerIndex)
	assert.Equal(t, scoreBefore, after.Players[0].Score+after.Players[1].Score)
}

func TestUpdatePlayerColor(t *testing.T) {
	e := newTestEngine()
	st, err := e.CreateRoom("host", "Ana", 5, false)
	require.NoError(t, err)
	_, _, err = e.JoinRoom(st.Code, "guest", "Bea")
	require.NoError(t, err)

	hostColor := st.Players[0].Color
	_, err = e.UpdatePlayer(st.ID, "guest", "", hostColor)
	assert.ErrorIs(t, err, ErrColorInUse)

	_, err = e.UpdatePlayer(st.ID, "guest", "", "#123456")
	assert.ErrorIs(t, err, ErrInvalidColor)

	after, err := e.UpdatePlayer(st.ID, "guest", "Beatriz", game_constants.DefaultColors[3])
	require.NoError(t, err)
	p := after.PlayerBySession("guest")
	assert.Equal(t, "Beatriz", p.Name)
	assert.Equal(t, game_constants.DefaultColors[3], p.Color)
}

func TestUpdateGridSizeAndPartyMode(t *testing.T) {
	e := newTestEngine()
	st, err := e.CreateRoom("host", "Ana", 5, false)
	require.NoError(t, err)

	_, err = e.UpdateGridSize(st.ID, "host", 7)
	assert.ErrorIs(t, err, ErrInvalidGridSize)

	after, err := e.UpdateGridSize(st.ID, "host", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, after.GridSize)

	after, err = e.UpdatePartyMode(st.ID, "host", true)
	require.NoError(t, err)
	assert.True(t, after.PartyMode)

	// Locked once the game starts.
	_, _, err = e.JoinRoom(st.Code, "guest", "Bea")
	require.NoError(t, err)
	_, _, err = e.ToggleReady(st.ID, "guest")
	require.NoError(t, err)
	_, err = e.StartGame(st.ID, "host")
	require.NoError(t, err)
	_, err = e.UpdateGridSize(st.ID, "host", 5)
	assert.ErrorIs(t, err, ErrGameInProgress)
	_, err = e.UpdatePartyMode(st.ID, "host", false)
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestEndAndResetGame(t *testing.T) {
	e := newTestEngine()
	st := startedRoom(t, e, false)

	st, _, err := e.DrawLine(st.ID, "host", "0,0-0,1")
	require.NoError(t, err)

	_, err = e.EndGame(st.ID, "guest")
	assert.ErrorIs(t, err, ErrNotHost)

	ended, err := e.EndGame(st.ID, "host")
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, ended.Status)

	reset, err := e.ResetGame(st.ID, "host")
	require.NoError(t, err)
	assert.Equal(t, StatusLobby, reset.Status)
	assert.Empty(t, reset.Lines)
	assert.Empty(t, reset.Squares)
	assert.Empty(t, reset.Multipliers)
	for _, p := range reset.Players {
		assert.Zero(t, p.Score)
		assert.False(t, p.IsReady)
	}
}

func TestPartyModeStartSeedsEffects(t *testing.T) {
	e := newTestEngine()
	st := startedRoom(t, e, true)

	want := int(float64(st.TotalSquares()) * game_constants.EffectChance)
	assert.Len(t, st.TileEffects, want)
	for _, eff := range st.TileEffects {
		_, known := e.Effects().Get(eff.ID)
		assert.True(t, known, "seeded effect %q must be registered", eff.ID)
		assert.False(t, eff.Revealed)
		assert.False(t, eff.Activated)
	}
}

func TestGetRoomByCode(t *testing.T) {
	e := newTestEngine()
	st, err := e.CreateRoom("host", "Ana", 5, false)
	require.NoError(t, err)

	found, err := e.GetRoomByCode(st.Code)
	require.NoError(t, err)
	assert.Equal(t, st.ID, found.ID)

	_, err = e.GetRoomByCode("NOPE42")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
