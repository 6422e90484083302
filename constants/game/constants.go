package game_constants

// Room limits
const MaxPlayersPerRoom = 6
const MinPlayersToStart = 2

// Room code generation. The alphabet skips visually confusable
// characters (I, O, 0, 1).
const RoomCodeLength = 6
const RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Grid sizes are dots per side; a size-N board has (N-1)^2 squares.
var ValidGridSizes = []int{5, 10, 20, 30}

const DefaultGridSize = 10

// Reserved owner index for lines inserted by the populate feature.
// Real player indices are dense in [0, playerCount), so -1 can never
// collide with one.
const PopulateOwnerIndex = -1

// Fraction of squares that receive a tile effect in party mode,
// split evenly between traps and powerups.
const EffectChance = 0.20

// Default player colors (up to 6 players)
var DefaultColors = []string{
	"#FF0000", // Red
	"#0000FF", // Blue
	"#00FF00", // Green
	"#FF8C00", // Orange
	"#8B00FF", // Purple
	"#00FFFF", // Cyan
}
