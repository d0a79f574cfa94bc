// Package bot implements the scripted opponents: a difficulty-profiled,
// stateless decision heuristic over hand strength and pot state.
package bot

import "fmt"

// Difficulty selects a named bundle of tuning constants.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the lowercase difficulty name
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Medium, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Profile is the immutable tuning bundle read at every bot decision.
type Profile struct {
	Difficulty         Difficulty
	StrengthMultiplier float64
	BaseAggression     float64
	BluffRate          float64
	NoiseRange         float64
}

// ProfileFor returns the canned profile for a difficulty. Harder bots read
// their hands more accurately (higher multiplier, less noise) and apply more
// pressure (higher aggression and bluff rate).
func ProfileFor(d Difficulty) Profile {
	switch d {
	case Easy:
		return Profile{
			Difficulty:         Easy,
			StrengthMultiplier: 0.8,
			BaseAggression:     0.35,
			BluffRate:          0.05,
			NoiseRange:         0.15,
		}
	case Hard:
		return Profile{
			Difficulty:         Hard,
			StrengthMultiplier: 1.1,
			BaseAggression:     0.75,
			BluffRate:          0.25,
			NoiseRange:         0.08,
		}
	default:
		return Profile{
			Difficulty:         Medium,
			StrengthMultiplier: 1.0,
			BaseAggression:     0.55,
			BluffRate:          0.15,
			NoiseRange:         0.115,
		}
	}
}
