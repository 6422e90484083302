package game

import "errors"

// Expected, non-exceptional outcomes of concurrent play. The HTTP and socket
// surfaces translate these to client-facing error payloads; the messages are
// the user-facing strings.
var (
	ErrRoomNotFound      = errors.New("Room not found")
	ErrPlayerNotFound    = errors.New("Player not found")
	ErrSquareNotFound    = errors.New("Square not found")
	ErrGameNotInProgress = errors.New("Game not in progress")
	ErrGameInProgress    = errors.New("Game already in progress")
	ErrAlreadyStarted    = errors.New("Game already started")
	ErrNotYourTurn       = errors.New("Not your turn")
	ErrNotYourSquare     = errors.New("Not your square")
	ErrNotHost           = errors.New("Only the host can perform this action")
	ErrLineAlreadyDrawn  = errors.New("Line already drawn")
	ErrInvalidLineKey    = errors.New("Invalid line key")
	ErrRoomFull          = errors.New("Room is full (max 6 players)")
	ErrNotEnoughPlayers  = errors.New("Need at least 2 players to start")
	ErrNotAllReady       = errors.New("All players must be ready")
	ErrNoMultiplier      = errors.New("No multiplier on this square")
	ErrAlreadyRevealed   = errors.New("Multiplier already revealed")
	ErrColorInUse        = errors.New("Color already in use")
	ErrInvalidColor      = errors.New("Color is not in the palette")
	ErrInvalidGridSize   = errors.New("Invalid grid size")
	ErrNoEffect          = errors.New("No effect on this square")
	ErrEffectNotRevealed = errors.New("Effect has not been revealed")
	ErrEffectUsed        = errors.New("Effect already activated")
	ErrInvalidTarget     = errors.New("Invalid effect target")
)

// IsNotFound reports whether err is one of the absence errors (caller likely
// raced a deletion or reset).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrSquareNotFound)
}
