package game

import (
	game_constants "shapekeeper/constants/game"
)

type RoomStatus string

const (
	StatusLobby    RoomStatus = "lobby"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

type MultiplierType string

const (
	MultiplierScore  MultiplierType = "multiplier"
	MultiplierSocial MultiplierType = "social"
)

// Multiplier is a hidden per-square scalar. Score multipliers multiply the
// revealing owner's score; social multipliers carry a party prompt instead.
type Multiplier struct {
	Type  MultiplierType `json:"type"`
	Value int            `json:"value,omitempty"`
}

// Line is a drawn edge between two adjacent dots. OwnerIndex is
// PopulateOwnerIndex for filler lines inserted by the populate feature.
type Line struct {
	LineKey    string `json:"line_key"`
	OwnerID    string `json:"owner_id"`
	OwnerIndex int    `json:"owner_index"`
	CreatedAt  int64  `json:"created_at"`
}

// Square is a completed unit cell. Ownership is immutable once set, except
// through explicit steal/gift effects.
type Square struct {
	SquareKey  string      `json:"square_key"`
	OwnerID    string      `json:"owner_id"`
	OwnerIndex int         `json:"owner_index"`
	Multiplier *Multiplier `json:"multiplier,omitempty"`
	Revealed   bool        `json:"revealed"`
	CreatedAt  int64       `json:"created_at"`
}

// PlayerEffects tracks per-player effect state accumulated during a game.
type PlayerEffects struct {
	Frozen        int  `json:"frozen"`         // turns to skip
	Shield        bool `json:"shield"`         // blocks the next trap once
	ExtraTurns    int  `json:"extra_turns"`    // banked turn retentions
	DoubleSquares int  `json:"double_squares"` // next N squares score double
}

type Player struct {
	ID          string        `json:"id"`
	SessionID   string        `json:"session_id"`
	Name        string        `json:"name"`
	Color       string        `json:"color"`
	Score       int           `json:"score"`
	IsReady     bool          `json:"is_ready"`
	IsConnected bool          `json:"is_connected"`
	PlayerIndex int           `json:"player_index"`
	JoinedAt    int64         `json:"joined_at"`
	Effects     PlayerEffects `json:"effects"`
}

// TileEffect is a trap or powerup bound to a square in party mode. It is
// revealed when the owning square is tapped and activated by player choice.
type TileEffect struct {
	ID        string     `json:"id"`
	Type      EffectType `json:"type"`
	Revealed  bool       `json:"revealed"`
	Activated bool       `json:"activated"`
}

// RoomState is the full authoritative state of one room. It is the unit of
// storage: every mutation loads it, validates, mutates and saves it back
// under the room's lock.
type RoomState struct {
	ID                 string                `json:"id"`
	Code               string                `json:"code"`
	HostSessionID      string                `json:"host_session_id"`
	GridSize           int                   `json:"grid_size"`
	PartyMode          bool                  `json:"party_mode"`
	Status             RoomStatus            `json:"status"`
	CurrentPlayerIndex int                   `json:"current_player_index"`
	Direction          int                   `json:"direction"` // +1 or -1, flipped by the reverse trap
	Seed               int64                 `json:"seed"`      // board randomness, fixed at startGame
	Players            []Player              `json:"players"`   // kept sorted by PlayerIndex, dense
	Lines              map[string]Line       `json:"lines"`
	Squares            map[string]Square     `json:"squares"`
	Multipliers        map[string]Multiplier `json:"multipliers"`  // squareKey -> hidden assignment
	TileEffects        map[string]TileEffect `json:"tile_effects"` // squareKey -> effect (party mode)
	CreatedAt          int64                 `json:"created_at"`
	UpdatedAt          int64                 `json:"updated_at"`
}

// TotalSquares is the number of squares a full board holds.
func (s *RoomState) TotalSquares() int {
	return (s.GridSize - 1) * (s.GridSize - 1)
}

// CurrentPlayer returns the player whose turn it is, or nil if the index is
// out of range (empty room).
func (s *RoomState) CurrentPlayer() *Player {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil
	}
	return &s.Players[s.CurrentPlayerIndex]
}

// PlayerBySession returns the player with the given session id, or nil.
func (s *RoomState) PlayerBySession(sessionID string) *Player {
	for i := range s.Players {
		if s.Players[i].SessionID == sessionID {
			return &s.Players[i]
		}
	}
	return nil
}

// PlayerByID returns the player with the given player id, or nil.
func (s *RoomState) PlayerByID(playerID string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			return &s.Players[i]
		}
	}
	return nil
}

func (s *RoomState) HasLine(lineKey string) bool {
	_, ok := s.Lines[lineKey]
	return ok
}

// IsHost reports whether the session owns the room.
func (s *RoomState) IsHost(sessionID string) bool {
	return s.HostSessionID == sessionID
}

// reindexPlayers reassigns dense player indices after a departure and keeps
// the turn index in range.
func (s *RoomState) reindexPlayers() {
	for i := range s.Players {
		s.Players[i].PlayerIndex = i
	}
	if s.CurrentPlayerIndex >= len(s.Players) {
		s.CurrentPlayerIndex = 0
	}
}

// Clone deep-copies the state so store adapters never hand out aliased maps.
func (s *RoomState) Clone() *RoomState {
	cp := *s
	cp.Players = make([]Player, len(s.Players))
	copy(cp.Players, s.Players)
	cp.Lines = make(map[string]Line, len(s.Lines))
	for k, v := range s.Lines {
		cp.Lines[k] = v
	}
	cp.Squares = make(map[string]Square, len(s.Squares))
	for k, v := range s.Squares {
		if v.Multiplier != nil {
			m := *v.Multiplier
			v.Multiplier = &m
		}
		cp.Squares[k] = v
	}
	cp.Multipliers = make(map[string]Multiplier, len(s.Multipliers))
	for k, v := range s.Multipliers {
		cp.Multipliers[k] = v
	}
	cp.TileEffects = make(map[string]TileEffect, len(s.TileEffects))
	for k, v := range s.TileEffects {
		cp.TileEffects[k] = v
	}
	return &cp
}

// PopulateOwnerIndex re-exported so engine callers don't need the constants
// package just to recognize filler lines.
const PopulateOwnerIndex = game_constants.PopulateOwnerIndex
