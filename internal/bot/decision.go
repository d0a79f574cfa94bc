package bot

import (
	"fmt"
	rand "math/rand/v2"
)

// ActionType is the kind of betting action a bot can take.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
)

// String returns the lowercase action name
func (a ActionType) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// Action is a betting action with its sizing. Amount is the additional chips
// beyond the call for Bet and Raise, zero otherwise.
type Action struct {
	Type   ActionType
	Amount int
}

// String returns e.g. "raise 120" or "check"
func (a Action) String() string {
	if a.Type == Bet || a.Type == Raise {
		return fmt.Sprintf("%s %d", a.Type, a.Amount)
	}
	return a.Type.String()
}

// PotState is the betting situation at a single decision point. It is
// recomputed for every decision and never cached.
type PotState struct {
	Pot        int
	CallAmount int
	Stack      int
	MinRaise   int
}

// Strength band thresholds for the decision policy.
const (
	weakBelow   = 0.3
	strongAbove = 0.65
)

// Preflop scaling of the profile constants: early play is tighter.
const (
	preflopAggressionScale = 0.4
	preflopBluffScale      = 0.3
)

// Decide returns the bot's action for a single decision point. strength is
// the already-adjusted hand strength (see Profile.AdjustStrength). The policy
// is stateless: it has no memory of prior hands or betting beyond pot. Every
// probability uses an independent draw from rng.
func Decide(p Profile, strength float64, pot PotState, preflop bool, rng *rand.Rand) Action {
	aggression := p.BaseAggression
	bluffRate := p.BluffRate
	if preflop {
		aggression *= preflopAggressionScale
		bluffRate *= preflopBluffScale
	}

	facingBet := pot.CallAmount > 0

	switch {
	case strength < weakBelow:
		if !facingBet {
			if rng.Float64() < bluffRate*aggression {
				return sizedBet(Bet, pot, 0.3, 0.6, rng)
			}
			return Action{Type: Check}
		}
		// Facing a bet with a weak hand: fold to bad pot odds, otherwise
		// occasionally call as a bluff-catcher.
		potOdds := float64(pot.CallAmount) / float64(pot.Pot+pot.CallAmount)
		if potOdds > 0.4 {
			return Action{Type: Fold}
		}
		if rng.Float64() < bluffRate {
			return Action{Type: Call}
		}
		return Action{Type: Fold}

	case strength < strongAbove:
		if !facingBet {
			if rng.Float64() < aggression*0.6 {
				return sizedBet(Bet, pot, 0.4, 0.7, rng)
			}
			return Action{Type: Check}
		}
		if pot.CallAmount <= int(0.3*float64(pot.Stack)) {
			return Action{Type: Call}
		}
		return Action{Type: Fold}

	default:
		if !facingBet {
			if rng.Float64() < 0.85 {
				return sizedBet(Bet, pot, 0.5, 1.2, rng)
			}
			// Slow-play trap
			return Action{Type: Check}
		}
		if rng.Float64() < aggression {
			return sizedBet(Raise, pot, 0.6, 1.5, rng)
		}
		return Action{Type: Call}
	}
}

// sizedBet draws a sizing uniformly in [lo, hi] × pot, floored at the table
// minimum raise and capped at the chips left behind the call.
func sizedBet(kind ActionType, pot PotState, lo, hi float64, rng *rand.Rand) Action {
	amount := int(float64(pot.Pot) * (lo + rng.Float64()*(hi-lo)))
	if amount < pot.MinRaise {
		amount = pot.MinRaise
	}
	if limit := pot.Stack - pot.CallAmount; amount > limit {
		amount = limit
	}
	if amount <= 0 {
		if pot.CallAmount > 0 {
			return Action{Type: Call}
		}
		return Action{Type: Check}
	}
	return Action{Type: kind, Amount: amount}
}
