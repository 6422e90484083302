package game

import (
	"fmt"
	"math/rand"
	"sort"
)

type EffectType string

const (
	EffectTrap    EffectType = "trap"
	EffectPowerup EffectType = "powerup"
)

// EffectContext is what a resolver gets to work with. Resolvers run under
// the room's lock and may mutate State directly; score changes must go
// through AddScore so they clamp at zero.
type EffectContext struct {
	State     *RoomState
	Actor     *Player
	SquareKey string
	Target    string // effect-specific: a square key or player id
	Rng       *rand.Rand
}

// AddScore applies a (possibly negative) score delta, clamped non-negative.
func (c *EffectContext) AddScore(p *Player, delta int) {
	p.Score += delta
	if p.Score < 0 {
		p.Score = 0
	}
}

// NextPlayer returns the player after the actor in current turn order.
func (c *EffectContext) NextPlayer() *Player {
	n := len(c.State.Players)
	if n < 2 {
		return nil
	}
	idx := (c.Actor.PlayerIndex + c.State.Direction + n) % n
	return &c.State.Players[idx]
}

// EffectResult is the outcome of an activation, surfaced to all clients.
type EffectResult struct {
	EffectID string `json:"effect_id"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Blocked  bool   `json:"blocked"`          // shield consumed a trap
	Social   bool   `json:"social"`           // off-board prompt, no state change
	Prompt   string `json:"prompt,omitempty"` // social text
}

// EffectResolver applies one effect. New effects register a definition and a
// resolver; the engine never switches on effect ids.
type EffectResolver func(ctx *EffectContext) (EffectResult, error)

type EffectDefinition struct {
	ID          string
	Type        EffectType
	Name        string
	Description string
	Resolve     EffectResolver
}

// EffectRegistry holds the known effects keyed by id.
type EffectRegistry struct {
	defs  map[string]EffectDefinition
	order []string // registration order, for deterministic pool assignment
}

func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{defs: make(map[string]EffectDefinition)}
}

// Register adds a definition. Duplicate or empty ids are a programming error.
func (r *EffectRegistry) Register(def EffectDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("effect id must not be empty")
	}
	if def.Resolve == nil {
		return fmt.Errorf("effect %q has no resolver", def.ID)
	}
	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("duplicate effect id %q", def.ID)
	}
	r.defs[def.ID] = def
	r.order = append(r.order, def.ID)
	return nil
}

func (r *EffectRegistry) Get(id string) (EffectDefinition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// Pool returns the ids of one effect type, in registration order.
func (r *EffectRegistry) Pool(t EffectType) []string {
	var ids []string
	for _, id := range r.order {
		if r.defs[id].Type == t {
			ids = append(ids, id)
		}
	}
	return ids
}

// social builds a resolver for prompt-only effects.
func social(message string) EffectResolver {
	return func(ctx *EffectContext) (EffectResult, error) {
		return EffectResult{Social: true, Prompt: message}, nil
	}
}

// DefaultEffects is the stock trap/powerup catalog from party mode.
func DefaultEffects() *EffectRegistry {
	r := NewEffectRegistry()
	mustRegister := func(def EffectDefinition) {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}

	// Traps
	mustRegister(EffectDefinition{
		ID: "landmine", Type: EffectTrap, Name: "Landmine!",
		Description: "The area explodes. Lose 3 points and your turn.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			ctx.AddScore(ctx.Actor, -3)
			advanceTurn(ctx.State)
			return EffectResult{Message: "Landmine! -3 points and the turn passes."}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "freeze", Type: EffectTrap, Name: "Frozen!",
		Description: "Skip your next turn while you thaw out.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			ctx.Actor.Effects.Frozen++
			return EffectResult{Message: "Frozen! Your next turn is skipped."}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "reverse", Type: EffectTrap, Name: "Reverse!",
		Description: "Turn order is reversed.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			ctx.State.Direction = -ctx.State.Direction
			return EffectResult{Message: "Turn order reversed!"}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "swap_scores", Type: EffectTrap, Name: "Score Swap!",
		Description: "Your score is swapped with the next player's.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			other := ctx.NextPlayer()
			if other == nil {
				return EffectResult{Message: "No one to swap with."}, nil
			}
			ctx.Actor.Score, other.Score = other.Score, ctx.Actor.Score
			return EffectResult{Message: fmt.Sprintf("Scores swapped with %s!", other.Name)}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "pickpocket", Type: EffectTrap, Name: "Pickpocket!",
		Description: "The next player steals 2 of your points.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			other := ctx.NextPlayer()
			if other == nil {
				return EffectResult{Message: "No one around to pickpocket you."}, nil
			}
			stolen := min(2, ctx.Actor.Score)
			ctx.AddScore(ctx.Actor, -stolen)
			ctx.AddScore(other, stolen)
			return EffectResult{Message: fmt.Sprintf("%s pickpockets %d points from you!", other.Name, stolen)}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "chaos", Type: EffectTrap, Name: "Chaos Storm!",
		Description: "All unrevealed multipliers are rerolled.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			reroll := AssignMultipliers(ctx.State.GridSize, ctx.Rng.Int63())
			// Squares already created keep their recorded multiplier; only the
			// hidden board changes.
			keys := make([]string, 0, len(ctx.State.Multipliers))
			for k := range ctx.State.Multipliers {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if _, claimed := ctx.State.Squares[k]; !claimed {
					ctx.State.Multipliers[k] = reroll[k]
				}
			}
			return EffectResult{Message: "Chaos! Every unclaimed multiplier has been rerolled."}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "drink", Type: EffectTrap, Name: "Drink!",
		Description: "Take a sip of your beverage.",
		Resolve: social("Take a sip of your beverage. Cheers!"),
	})
	mustRegister(EffectDefinition{
		ID: "truth", Type: EffectTrap, Name: "Truth Time!",
		Description: "Answer a truth honestly.",
		Resolve: social("Answer a truth from the table, honestly."),
	})
	mustRegister(EffectDefinition{
		ID: "dared", Type: EffectTrap, Name: "You're Dared!",
		Description: "Complete a dare or forfeit your next turn.",
		Resolve: social("The table picks a dare for you. Complete it or skip a turn."),
	})
	mustRegister(EffectDefinition{
		ID: "hypothetical", Type: EffectTrap, Name: "Hypothetical",
		Description: "Answer the hypothetical question.",
		Resolve: social("Answer the table's hypothetical question."),
	})

	// Powerups
	mustRegister(EffectDefinition{
		ID: "extra_turns", Type: EffectPowerup, Name: "+2 Extra Moves!",
		Description: "Bank 2 extra turns.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			ctx.Actor.Effects.ExtraTurns += 2
			return EffectResult{Message: "You banked 2 extra turns!"}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "shield", Type: EffectPowerup, Name: "Shield Up!",
		Description: "Blocks the next trap's effect once.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			ctx.Actor.Effects.Shield = true
			return EffectResult{Message: "Shield raised! The next trap bounces off."}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "double_points", Type: EffectPowerup, Name: "Lucky Star!",
		Description: "Your next 3 squares score double.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			ctx.Actor.Effects.DoubleSquares += 3
			return EffectResult{Message: "Your next 3 squares are worth double!"}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "steal_square", Type: EffectPowerup, Name: "Pirate's Plunder",
		Description: "Steal an opponent's square.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			sq, ok := ctx.State.Squares[ctx.Target]
			if !ok {
				return EffectResult{}, ErrInvalidTarget
			}
			if sq.OwnerID == ctx.Actor.ID {
				return EffectResult{}, ErrInvalidTarget
			}
			victim := ctx.State.PlayerByID(sq.OwnerID)
			if victim != nil {
				ctx.AddScore(victim, -1)
			}
			sq.OwnerID = ctx.Actor.ID
			sq.OwnerIndex = ctx.Actor.PlayerIndex
			ctx.State.Squares[ctx.Target] = sq
			ctx.AddScore(ctx.Actor, 1)
			return EffectResult{Message: fmt.Sprintf("Square %s plundered!", ctx.Target)}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "gift_square", Type: EffectPowerup, Name: "Gift of Giving",
		Description: "Give one of your squares to another player.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			sq, ok := ctx.State.Squares[ctx.Target]
			if !ok || sq.OwnerID != ctx.Actor.ID {
				return EffectResult{}, ErrInvalidTarget
			}
			other := ctx.NextPlayer()
			if other == nil {
				return EffectResult{Message: "No one to gift to."}, nil
			}
			ctx.AddScore(ctx.Actor, -1)
			ctx.AddScore(other, 1)
			sq.OwnerID = other.ID
			sq.OwnerIndex = other.PlayerIndex
			ctx.State.Squares[ctx.Target] = sq
			return EffectResult{Message: fmt.Sprintf("Square %s gifted to %s!", ctx.Target, other.Name)}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "oracle", Type: EffectPowerup, Name: "Oracle's Vision",
		Description: "Reveal the tile effects adjacent to this square.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			row, col, err := ParseSquareKey(ctx.SquareKey)
			if err != nil {
				return EffectResult{}, ErrInvalidTarget
			}
			n := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					key := SquareKey(row+dr, col+dc)
					if eff, ok := ctx.State.TileEffects[key]; ok && !eff.Revealed {
						eff.Revealed = true
						ctx.State.TileEffects[key] = eff
						n++
					}
				}
			}
			return EffectResult{Message: fmt.Sprintf("The Oracle reveals %d nearby effects.", n)}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "bounty", Type: EffectPowerup, Name: "Bounty!",
		Description: "Collect 2 bonus points.",
		Resolve: func(ctx *EffectContext) (EffectResult, error) {
			ctx.AddScore(ctx.Actor, 2)
			return EffectResult{Message: "Bounty collected: +2 points!"}, nil
		},
	})
	mustRegister(EffectDefinition{
		ID: "dare_left", Type: EffectPowerup, Name: "Dare Left!",
		Description: "You get to dare the player on your left.",
		Resolve: social("Pick a dare for the player on your left."),
	})
	mustRegister(EffectDefinition{
		ID: "physical_challenge", Type: EffectPowerup, Name: "Physical Challenge!",
		Description: "The player on your right does a physical challenge.",
		Resolve: social("The player on your right must do a physical challenge of your choosing."),
	})
	mustRegister(EffectDefinition{
		ID: "wildcard", Type: EffectPowerup, Name: "Wildcard!",
		Description: "Choose any powerup effect.",
		Resolve: social("Wildcard! Announce which powerup you are invoking."),
	})

	return r
}

// AssignTileEffects seeds the party-mode board: EffectChance of all squares
// get an effect, alternating trap/powerup so the pools stay even.
func AssignTileEffects(gridSize int, seed int64, reg *EffectRegistry, chance float64) map[string]TileEffect {
	total := (gridSize - 1) * (gridSize - 1)
	count := int(float64(total) * chance)
	if count == 0 {
		count = 1
	}

	keys := make([]string, 0, total)
	for row := 0; row < gridSize-1; row++ {
		for col := 0; col < gridSize-1; col++ {
			keys = append(keys, SquareKey(row, col))
		}
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	traps := reg.Pool(EffectTrap)
	powerups := reg.Pool(EffectPowerup)

	out := make(map[string]TileEffect, count)
	for i := 0; i < count && i < len(keys); i++ {
		var pool []string
		var t EffectType
		if i%2 == 0 {
			pool, t = traps, EffectTrap
		} else {
			pool, t = powerups, EffectPowerup
		}
		out[keys[i]] = TileEffect{
			ID:   pool[rng.Intn(len(pool))],
			Type: t,
		}
	}
	return out
}
