package game

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	game_constants "shapekeeper/constants/game"
)

// Engine owns the rules. It is the single codepath for both authoritative
// (redis-backed) and local (in-memory) play: validation and mutation happen
// inside one per-room critical section, so no two mutations on the same room
// ever interleave. Mutations on different rooms run in parallel.
type Engine struct {
	store   Store
	effects *EffectRegistry
	locks   sync.Map // roomID -> *sync.Mutex

	mu  sync.Mutex // guards rng
	rng *rand.Rand
	now func() int64
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store:   store,
		effects: DefaultEffects(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     func() int64 { return time.Now().UnixMilli() },
	}
}

// Effects exposes the registry so surfaces can describe revealed effects.
func (e *Engine) Effects() *EffectRegistry { return e.effects }

func (e *Engine) lockRoom(roomID string) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(roomID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// mutateRoom is the serialization point: load, validate+mutate via fn, stamp
// updatedAt, save. fn returning an error aborts with no partial effects.
func (e *Engine) mutateRoom(roomID string, fn func(st *RoomState) error) (*RoomState, error) {
	mu := e.lockRoom(roomID)
	mu.Lock()
	defer mu.Unlock()

	st, err := e.store.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	if err := fn(st); err != nil {
		return nil, err
	}
	st.UpdatedAt = e.now()
	if err := e.store.SaveRoom(st); err != nil {
		return nil, fmt.Errorf("error saving room %s: %w", roomID, err)
	}
	return st, nil
}

func (e *Engine) randInt63() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Int63()
}

func (e *Engine) newPlayerID() string {
	const hex = "0123456789abcdef"
	e.mu.Lock()
	defer e.mu.Unlock()
	b := make([]byte, 16)
	for i := range b {
		b[i] = hex[e.rng.Intn(len(hex))]
	}
	return string(b)
}

func (e *Engine) generateRoomCode() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	b := make([]byte, game_constants.RoomCodeLength)
	for i := range b {
		b[i] = game_constants.RoomCodeAlphabet[e.rng.Intn(len(game_constants.RoomCodeAlphabet))]
	}
	return string(b)
}

func validGridSize(size int) bool {
	for _, s := range game_constants.ValidGridSizes {
		if s == size {
			return true
		}
	}
	return false
}

// CreateRoom opens a lobby with the caller as host and first player.
func (e *Engine) CreateRoom(sessionID, playerName string, gridSize int, partyMode bool) (*RoomState, error) {
	if !validGridSize(gridSize) {
		return nil, ErrInvalidGridSize
	}

	// Retry on the rare code collision.
	code := e.generateRoomCode()
	for {
		if _, err := e.store.GetRoomIDByCode(code); err != nil {
			break
		}
		code = e.generateRoomCode()
	}

	now := e.now()
	st := &RoomState{
		ID:            "room_" + e.newPlayerID(),
		Code:          code,
		HostSessionID: sessionID,
		GridSize:      gridSize,
		PartyMode:     partyMode,
		Status:        StatusLobby,
		Direction:     1,
		Players: []Player{{
			ID:          e.newPlayerID(),
			SessionID:   sessionID,
			Name:        playerName,
			Color:       game_constants.DefaultColors[0],
			IsConnected: true,
			PlayerIndex: 0,
			JoinedAt:    now,
		}},
		Lines:       make(map[string]Line),
		Squares:     make(map[string]Square),
		Multipliers: make(map[string]Multiplier),
		TileEffects: make(map[string]TileEffect),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.store.SaveRoom(st); err != nil {
		return nil, fmt.Errorf("error creating room: %w", err)
	}
	log.Printf("[ROOM] Created room %s (code %s, grid %d, party %v)", st.ID, st.Code, gridSize, partyMode)
	return st, nil
}

// JoinResult reports how a join resolved.
type JoinResult struct {
	PlayerID string `json:"player_id"`
	Rejoined bool   `json:"rejoined"`
}

// JoinRoom adds a player to a lobby, or reconnects a known session (which is
// also allowed mid-game, so a dropped player can come back).
func (e *Engine) JoinRoom(roomCode, sessionID, playerName string) (*RoomState, *JoinResult, error) {
	roomID, err := e.store.GetRoomIDByCode(strings.ToUpper(roomCode))
	if err != nil {
		return nil, nil, ErrRoomNotFound
	}

	var res JoinResult
	st, err := e.mutateRoom(roomID, func(st *RoomState) error {
		if p := st.PlayerBySession(sessionID); p != nil {
			p.IsConnected = true
			if playerName != "" {
				p.Name = playerName
			}
			res = JoinResult{PlayerID: p.ID, Rejoined: true}
			return nil
		}
		if st.Status != StatusLobby {
			return ErrGameInProgress
		}
		if len(st.Players) >= game_constants.MaxPlayersPerRoom {
			return ErrRoomFull
		}

		used := make(map[string]bool, len(st.Players))
		for _, p := range st.Players {
			used[p.Color] = true
		}
		color := game_constants.DefaultColors[0]
		for _, c := range game_constants.DefaultColors {
			if !used[c] {
				color = c
				break
			}
		}

		p := Player{
			ID:          e.newPlayerID(),
			SessionID:   sessionID,
			Name:        playerName,
			Color:       color,
			IsConnected: true,
			PlayerIndex: len(st.Players),
			JoinedAt:    e.now(),
		}
		st.Players = append(st.Players, p)
		res = JoinResult{PlayerID: p.ID}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[ROOM] Session %s joined room %s (rejoined=%v)", sessionID, roomID, res.Rejoined)
	return st, &res, nil
}

// LeaveResult reports how a departure resolved.
type LeaveResult struct {
	Disconnected bool `json:"disconnected"`
	RoomDeleted  bool `json:"room_deleted"`
}

// LeaveRoom removes a lobby player (re-indexing the rest and transferring the
// host role if needed) or flags a mid-game player disconnected so turn order
// is preserved. The room is deleted when its last player leaves the lobby.
func (e *Engine) LeaveRoom(roomID, sessionID string) (*RoomState, *LeaveResult, error) {
	mu := e.lockRoom(roomID)
	mu.Lock()
	defer mu.Unlock()

	st, err := e.store.GetRoom(roomID)
	if err != nil {
		return nil, nil, err
	}
	p := st.PlayerBySession(sessionID)
	if p == nil {
		return nil, nil, ErrPlayerNotFound
	}

	if st.Status == StatusPlaying {
		p.IsConnected = false
		st.UpdatedAt = e.now()
		if err := e.store.SaveRoom(st); err != nil {
			return nil, nil, err
		}
		return st, &LeaveResult{Disconnected: true}, nil
	}

	idx := p.PlayerIndex
	st.Players = append(st.Players[:idx], st.Players[idx+1:]...)

	if len(st.Players) == 0 {
		if err := e.store.DeleteRoom(st); err != nil {
			return nil, nil, err
		}
		log.Printf("[ROOM] Deleted empty room %s", roomID)
		return nil, &LeaveResult{RoomDeleted: true}, nil
	}

	if st.HostSessionID == sessionID {
		st.HostSessionID = st.Players[0].SessionID
		log.Printf("[ROOM] Host left room %s, transferred to %s", roomID, st.HostSessionID)
	}
	st.reindexPlayers()
	st.UpdatedAt = e.now()
	if err := e.store.SaveRoom(st); err != nil {
		return nil, nil, err
	}
	return st, &LeaveResult{}, nil
}

// ToggleReady flips the caller's ready flag (lobby only concern, but
// harmless elsewhere).
func (e *Engine) ToggleReady(roomID, sessionID string) (*RoomState, bool, error) {
	var ready bool
	st, err := e.mutateRoom(roomID, func(st *RoomState) error {
		p := st.PlayerBySession(sessionID)
		if p == nil {
			return ErrPlayerNotFound
		}
		p.IsReady = !p.IsReady
		ready = p.IsReady
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return st, ready, nil
}

// UpdatePlayer changes the caller's name and/or color. Colors come from the
// fixed palette and must be unique within the room.
func (e *Engine) UpdatePlayer(roomID, sessionID, name, color string) (*RoomState, error) {
	return e.mutateRoom(roomID, func(st *RoomState) error {
		p := st.PlayerBySession(sessionID)
		if p == nil {
			return ErrPlayerNotFound
		}
		if color != "" {
			inPalette := false
			for _, c := range game_constants.DefaultColors {
				if c == color {
					inPalette = true
					break
				}
			}
			if !inPalette {
				return ErrInvalidColor
			}
			for i := range st.Players {
				if st.Players[i].ID != p.ID && st.Players[i].Color == color {
					return ErrColorInUse
				}
			}
			p.Color = color
		}
		if name != "" {
			p.Name = name
		}
		return nil
	})
}

// UpdateGridSize changes the board size (host only, lobby only).
func (e *Engine) UpdateGridSize(roomID, sessionID string, gridSize int) (*RoomState, error) {
	return e.mutateRoom(roomID, func(st *RoomState) error {
		if !st.IsHost(sessionID) {
			return ErrNotHost
		}
		if st.Status != StatusLobby {
			return ErrGameInProgress
		}
		if !validGridSize(gridSize) {
			return ErrInvalidGridSize
		}
		st.GridSize = gridSize
		return nil
	})
}

// UpdatePartyMode toggles tile effects (host only, lobby only).
func (e *Engine) UpdatePartyMode(roomID, sessionID string, partyMode bool) (*RoomState, error) {
	return e.mutateRoom(roomID, func(st *RoomState) error {
		if !st.IsHost(sessionID) {
			return ErrNotHost
		}
		if st.Status != StatusLobby {
			return ErrGameInProgress
		}
		st.PartyMode = partyMode
		return nil
	})
}

// StartGame moves Lobby -> Playing. Requires the host, at least 2 players and
// every non-host player ready (the host is implicitly ready). The hidden
// multiplier board (and the tile-effect board in party mode) is seeded here.
func (e *Engine) StartGame(roomID, sessionID string) (*RoomState, error) {
	st, err := e.mutateRoom(roomID, func(st *RoomState) error {
		if !st.IsHost(sessionID) {
			return ErrNotHost
		}
		if st.Status != StatusLobby {
			return ErrAlreadyStarted
		}
		if len(st.Players) < game_constants.MinPlayersToStart {
			return ErrNotEnoughPlayers
		}
		for _, p := range st.Players {
			if p.SessionID != st.HostSessionID && !p.IsReady {
				return ErrNotAllReady
			}
		}

		st.Status = StatusPlaying
		st.CurrentPlayerIndex = 0
		st.Direction = 1
		st.Seed = e.randInt63()
		st.Lines = make(map[string]Line)
		st.Squares = make(map[string]Square)
		st.Multipliers = AssignMultipliers(st.GridSize, st.Seed)
		if st.PartyMode {
			st.TileEffects = AssignTileEffects(st.GridSize, st.Seed, e.effects, game_constants.EffectChance)
		} else {
			st.TileEffects = make(map[string]TileEffect)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[GAME] Room %s started (grid %d, %d players)", roomID, st.GridSize, len(st.Players))
	return st, nil
}

// DrawResult is the outcome of a successful drawLine.
type DrawResult struct {
	CompletedSquares []string `json:"completed_squares"`
	KeepTurn         bool     `json:"keep_turn"`
	GameOver         bool     `json:"game_over"`
}

// DrawLine validates and applies a move: turn check, duplicate check, square
// completion, scoring, then turn retention or advance. Completing the board
// finishes the game regardless of whose turn it would be.
func (e *Engine) DrawLine(roomID, sessionID, lineKey string) (*RoomState, *DrawResult, error) {
	var res DrawResult
	st, err := e.mutateRoom(roomID, func(st *RoomState) error {
		if st.Status != StatusPlaying {
			return ErrGameNotInProgress
		}
		cur := st.CurrentPlayer()
		if cur == nil || cur.SessionID != sessionID {
			return ErrNotYourTurn
		}
		if err := ValidateLineKey(lineKey, st.GridSize); err != nil {
			return ErrInvalidLineKey
		}
		if st.HasLine(lineKey) {
			return ErrLineAlreadyDrawn
		}

		now := e.now()
		st.Lines[lineKey] = Line{
			LineKey:    lineKey,
			OwnerID:    cur.ID,
			OwnerIndex: cur.PlayerIndex,
			CreatedAt:  now,
		}

		var completed []string
		for _, sq := range PotentialSquares(lineKey, st.GridSize) {
			row, col := sq[0], sq[1]
			key := SquareKey(row, col)
			if !IsSquareComplete(st.Lines, row, col) {
				continue
			}
			if _, exists := st.Squares[key]; exists {
				continue
			}
			var mult *Multiplier
			if m, ok := st.Multipliers[key]; ok {
				mc := m
				mult = &mc
			}
			st.Squares[key] = Square{
				SquareKey:  key,
				OwnerID:    cur.ID,
				OwnerIndex: cur.PlayerIndex,
				Multiplier: mult,
				CreatedAt:  now,
			}
			completed = append(completed, key)
		}

		// 1 point per square at completion time; the double-points powerup
		// consumes one charge per square. Multiplier reveals are a separate,
		// player-triggered step.
		for range completed {
			pts := 1
			if cur.Effects.DoubleSquares > 0 {
				cur.Effects.DoubleSquares--
				pts = 2
			}
			cur.Score += pts
		}

		res = DrawResult{CompletedSquares: completed, KeepTurn: len(completed) > 0}

		if len(st.Squares) >= st.TotalSquares() {
			st.Status = StatusFinished
			res.GameOver = true
			return nil
		}

		if len(completed) == 0 {
			if cur.Effects.ExtraTurns > 0 {
				cur.Effects.ExtraTurns--
				res.KeepTurn = true
			} else {
				advanceTurn(st)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[DRAW] Room %s: %s drew %s (completed=%d keepTurn=%v gameOver=%v)",
		roomID, sessionID, lineKey, len(res.CompletedSquares), res.KeepTurn, res.GameOver)
	return st, &res, nil
}

// advanceTurn passes the turn in the current direction, skipping (and
// thawing) frozen players. If everyone is frozen the index stays put.
func advanceTurn(st *RoomState) {
	n := len(st.Players)
	if n == 0 {
		return
	}
	idx := st.CurrentPlayerIndex
	for i := 0; i < n; i++ {
		idx = (idx + st.Direction + n) % n
		p := &st.Players[idx]
		if p.Effects.Frozen > 0 {
			p.Effects.Frozen--
			continue
		}
		st.CurrentPlayerIndex = idx
		return
	}
}

// RevealResult is the outcome of a multiplier reveal.
type RevealResult struct {
	Multiplier Multiplier `json:"multiplier"`
	NewScore   int        `json:"new_score"`
	Prompt     string     `json:"prompt,omitempty"`
}

// RevealMultiplier applies a square's hidden multiplier to its owner's score.
// Reveals are single-use: the Revealed guard makes a second call fail instead
// of double-applying the multiplication.
func (e *Engine) RevealMultiplier(roomID, sessionID, squareKey string) (*RoomState, *RevealResult, error) {
	var res RevealResult
	st, err := e.mutateRoom(roomID, func(st *RoomState) error {
		sq, ok := st.Squares[squareKey]
		if !ok {
			return ErrSquareNotFound
		}
		owner := st.PlayerByID(sq.OwnerID)
		if owner == nil || owner.SessionID != sessionID {
			return ErrNotYourSquare
		}
		if sq.Multiplier == nil {
			return ErrNoMultiplier
		}
		if sq.Revealed {
			return ErrAlreadyRevealed
		}

		sq.Revealed = true
		st.Squares[squareKey] = sq
		res.Multiplier = *sq.Multiplier

		switch sq.Multiplier.Type {
		case MultiplierScore:
			owner.Score *= sq.Multiplier.Value
		case MultiplierSocial:
			res.Prompt = SocialPrompt(st.Seed, squareKey)
		}
		res.NewScore = owner.Score
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[REVEAL] Room %s: square %s revealed (%s x%d)",
		roomID, squareKey, res.Multiplier.Type, res.Multiplier.Value)
	return st, &res, nil
}

// RevealEffect uncovers the tile effect on a square the caller owns.
func (e *Engine) RevealEffect(roomID, sessionID, squareKey string) (*RoomState, *EffectDefinition, error) {
	var def EffectDefinition
	st, err := e.mutateRoom(roomID, func(st *RoomState) error {
		sq, ok := st.Squares[squareKey]
		if !ok {
			return ErrSquareNotFound
		}
		owner := st.PlayerByID(sq.OwnerID)
		if owner == nil || owner.SessionID != sessionID {
			return ErrNotYourSquare
		}
		eff, ok := st.TileEffects[squareKey]
		if !ok {
			return ErrNoEffect
		}
		d, ok := e.effects.Get(eff.ID)
		if !ok {
			return ErrNoEffect
		}
		eff.Revealed = true
		st.TileEffects[squareKey] = eff
		def = d
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return st, &def, nil
}

// ActivateEffect runs a revealed effect through its registered resolver.
// A shield on the actor blocks a trap once and is consumed. Each effect
// activates at most once.
func (e *Engine) ActivateEffect(roomID, sessionID, squareKey, target string) (*RoomState, *EffectResult, error) {
	var res EffectResult
	st, err := e.mutateRoom(roomID, func(st *RoomState) error {
		if st.Status != StatusPlaying {
			return ErrGameNotInProgress
		}
		sq, ok := st.Squares[squareKey]
		if !ok {
			return ErrSquareNotFound
		}
		actor := st.PlayerByID(sq.OwnerID)
		if actor == nil || actor.SessionID != sessionID {
			return ErrNotYourSquare
		}
		eff, ok := st.TileEffects[squareKey]
		if !ok {
			return ErrNoEffect
		}
		if !eff.Revealed {
			return ErrEffectNotRevealed
		}
		if eff.Activated {
			return ErrEffectUsed
		}
		def, ok := e.effects.Get(eff.ID)
		if !ok {
			return ErrNoEffect
		}

		eff.Activated = true
		st.TileEffects[squareKey] = eff

		if def.Type == EffectTrap && actor.Effects.Shield {
			actor.Effects.Shield = false
			res = EffectResult{EffectID: def.ID, Name: def.Name, Blocked: true,
				Message: "Shield blocked the trap!"}
			return nil
		}

		ctx := &EffectContext{
			State:     st,
			Actor:     actor,
			SquareKey: squareKey,
			Target:    target,
			Rng:       rand.New(rand.NewSource(st.Seed ^ int64(len(st.Lines)))),
		}
		out, err := def.Resolve(ctx)
		if err != nil {
			return err
		}
		out.EffectID = def.ID
		out.Name = def.Name
		res = out
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[EFFECT] Room %s: %s activated %s (blocked=%v)", roomID, sessionID, res.EffectID, res.Blocked)
	return st, &res, nil
}

// PopulateLines inserts filler lines under the reserved non-scoring owner.
// Host only, playing only. The caller is responsible for picking safe keys;
// the engine inserts whatever it is given, skipping duplicates, and never
// touches scores or the turn index.
func (e *Engine) PopulateLines(roomID, sessionID string, lineKeys []string) (*RoomState, int, error) {
	inserted := 0
	st, err := e.mutateRoom(roomID, func(st *RoomState) error {
		if st.Status != StatusPlaying {
			return ErrGameNotInProgress
		}
		if !st.IsHost(sessionID) {
			return ErrNotHost
		}
		now := e.now()
		for _, key := range lineKeys {
			if err := ValidateLineKey(key, st.GridSize); err != nil {
				continue
			}
			if st.HasLine(key) {
				continue
			}
			st.Lines[key] = Line{
				LineKey:    key,
				OwnerIndex: game_constants.PopulateOwnerIndex,
				CreatedAt:  now,
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	log.Printf("[POPULATE] Room %s: inserted %d of %d requested lines", roomID, inserted, len(lineKeys))
	return st, inserted, nil
}

// EndGame finishes the game early (host only).
func (e *Engine) EndGame(roomID, sessionID string) (*RoomState, error) {
	return e.mutateRoom(roomID, func(st *RoomState) error {
		if !st.IsHost(sessionID) {
			return ErrNotHost
		}
		st.Status = StatusFinished
		return nil
	})
}

// ResetGame returns the room to the lobby: board cleared, scores zeroed,
// ready flags cleared (host only, any state).
func (e *Engine) ResetGame(roomID, sessionID string) (*RoomState, error) {
	st, err := e.mutateRoom(roomID, func(st *RoomState) error {
		if !st.IsHost(sessionID) {
			return ErrNotHost
		}
		st.Status = StatusLobby
		st.CurrentPlayerIndex = 0
		st.Direction = 1
		st.Lines = make(map[string]Line)
		st.Squares = make(map[string]Square)
		st.Multipliers = make(map[string]Multiplier)
		st.TileEffects = make(map[string]TileEffect)
		for i := range st.Players {
			st.Players[i].Score = 0
			st.Players[i].IsReady = false
			st.Players[i].Effects = PlayerEffects{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[GAME] Room %s reset to lobby", roomID)
	return st, nil
}

// GetRoom returns a snapshot of the room state.
func (e *Engine) GetRoom(roomID string) (*RoomState, error) {
	return e.store.GetRoom(roomID)
}

// GetRoomByCode resolves a join code to a snapshot.
func (e *Engine) GetRoomByCode(code string) (*RoomState, error) {
	roomID, err := e.store.GetRoomIDByCode(strings.ToUpper(code))
	if err != nil {
		return nil, ErrRoomNotFound
	}
	return e.store.GetRoom(roomID)
}
