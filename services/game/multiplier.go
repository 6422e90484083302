package game

import (
	"math/rand"
)

// Multiplier tiers in descending rarity. Percentages are of the total square
// count; counts are floored per tier and the remainder falls to the most
// common tier (x2), so every square gets exactly one multiplier.
var multiplierTiers = []struct {
	Value int
	Pct   int
}{
	{10, 1},
	{5, 4},
	{4, 10},
	{3, 20},
}

// Percentage of squares that carry a social prompt instead of a score
// multiplier.
const socialPct = 4

// Party prompts for social squares.
var socialPrompts = []string{
	"Share an embarrassing secret about yourself.",
	"Do your best impression of another player.",
	"Let the player on your left ask you anything.",
	"Speak in an accent until your next turn.",
	"Give a genuine compliment to every player.",
}

// AssignMultipliers builds the hidden multiplier board for a full grid.
// Deterministic: the same seed always produces the same board, which is what
// lets local prediction and the authoritative store agree.
func AssignMultipliers(gridSize int, seed int64) map[string]Multiplier {
	total := (gridSize - 1) * (gridSize - 1)

	pool := make([]Multiplier, 0, total)
	for _, tier := range multiplierTiers {
		n := total * tier.Pct / 100
		for i := 0; i < n; i++ {
			pool = append(pool, Multiplier{Type: MultiplierScore, Value: tier.Value})
		}
	}
	for i := 0; i < total*socialPct/100; i++ {
		pool = append(pool, Multiplier{Type: MultiplierSocial})
	}
	// Remainder is x2, the most common tier.
	for len(pool) < total {
		pool = append(pool, Multiplier{Type: MultiplierScore, Value: 2})
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	board := make(map[string]Multiplier, total)
	i := 0
	for row := 0; row < gridSize-1; row++ {
		for col := 0; col < gridSize-1; col++ {
			board[SquareKey(row, col)] = pool[i]
			i++
		}
	}
	return board
}

// SocialPrompt picks a deterministic prompt for a social square.
func SocialPrompt(seed int64, squareKey string) string {
	h := int64(0)
	for _, r := range squareKey {
		h = h*31 + int64(r)
	}
	rng := rand.New(rand.NewSource(seed ^ h))
	return socialPrompts[rng.Intn(len(socialPrompts))]
}
