package bot

import (
	rand "math/rand/v2"

	"github.com/lox/pokercoach/internal/deck"
	"github.com/lox/pokercoach/internal/evaluator"
)

const (
	maxAdjustedStrength = 0.95
	preflopDampening    = 0.85
)

// PreflopStrength scores two hole cards in [0,1] with a closed-form formula:
// pairs score 0.5 plus rank/28, unpaired hands combine high-card contribution
// with a suited bonus and a small bonus for connectedness (gap of at most 1).
func PreflopStrength(a, b deck.Card) float64 {
	if a.Rank == b.Rank {
		return 0.5 + float64(a.Rank)/28.0
	}

	high, low := a.Rank, b.Rank
	if low > high {
		high, low = low, high
	}

	strength := float64(high)/28.0 + float64(low)/56.0
	if a.Suit == b.Suit {
		strength += 0.10
	}
	if int(high)-int(low) <= 2 {
		strength += 0.05
	}
	if strength > 1 {
		strength = 1
	}
	return strength
}

// PostflopStrength normalizes the evaluated hand category to [0, 0.9].
func PostflopStrength(cat evaluator.Category) float64 {
	return cat.Normalized()
}

// AdjustStrength applies the per-decision strength pipeline: difficulty
// multiplier, clamp to maxAdjustedStrength, pre-flop dampening, then uniform
// noise within the profile's range, with a final clamp to [0,1]. The 0.95
// clamp applies before noise is added.
func (p Profile) AdjustStrength(base float64, preflop bool, rng *rand.Rand) float64 {
	s := base * p.StrengthMultiplier
	if s < 0 {
		s = 0
	}
	if s > maxAdjustedStrength {
		s = maxAdjustedStrength
	}

	if preflop {
		s *= preflopDampening
	}

	s += (rng.Float64()*2 - 1) * p.NoiseRange

	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return s
}
