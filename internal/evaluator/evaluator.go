// Package evaluator ranks poker hands and enumerates the cards that improve
// them. It favours the direct combinatorial evaluation over table lookups:
// the tie-break key it produces (ordered ranks, most significant first) is
// part of the contract, not just an internal score.
package evaluator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lox/pokercoach/internal/deck"
)

// ErrInvalidHand is returned when fewer than 5 (or more than 7) cards are
// given to Evaluate. This indicates a programming error in the caller.
var ErrInvalidHand = errors.New("evaluator: hand must contain 5 to 7 cards")

// Category is the standard poker hand category, ordered weakest to strongest.
// The numeric value divided by 10 is the normalized strength used by bots.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Normalized returns the category as a strength score in [0, 0.9].
func (c Category) Normalized() float64 {
	return float64(c) / 10.0
}

// Hand is the evaluation of the best five cards: a category plus a tie-break
// key ordered by significance (e.g. quad rank then kicker). Two hands of the
// same category are totally ordered by comparing Tiebreak lexicographically.
type Hand struct {
	Category Category
	Tiebreak []deck.Rank
}

// String returns the readable name of the hand.
func (h Hand) String() string {
	return h.Category.String()
}

// Compare returns -1 if h is weaker than other, 0 if equal, 1 if stronger.
func (h Hand) Compare(other Hand) int {
	if h.Category != other.Category {
		if h.Category < other.Category {
			return -1
		}
		return 1
	}
	for i := 0; i < len(h.Tiebreak) && i < len(other.Tiebreak); i++ {
		if h.Tiebreak[i] != other.Tiebreak[i] {
			if h.Tiebreak[i] < other.Tiebreak[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Describe returns the hand name plus its key cards, e.g. "Pair (K kicker A)".
func (h Hand) Describe() string {
	if len(h.Tiebreak) == 0 {
		return h.String()
	}
	parts := make([]string, len(h.Tiebreak))
	for i, r := range h.Tiebreak {
		parts[i] = r.String()
	}
	return fmt.Sprintf("%s (%s)", h.String(), strings.Join(parts, " "))
}

// Evaluate returns the best 5-card hand achievable from 5 to 7 cards.
// For 6 or 7 cards it checks every 5-card combination and keeps the maximum
// by (category, tie-break). Deterministic: no randomness, no table state.
func Evaluate(cards []deck.Card) (Hand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Hand{}, fmt.Errorf("%w: got %d", ErrInvalidHand, len(cards))
	}

	if len(cards) == 5 {
		return evaluate5(cards), nil
	}

	var best Hand
	first := true
	combo := make([]deck.Card, 5)
	chooseFive(cards, combo, 0, 0, func() {
		h := evaluate5(combo)
		if first || h.Compare(best) > 0 {
			best = h
			first = false
		}
	})
	return best, nil
}

// chooseFive visits every 5-card combination of cards, filling combo in place.
func chooseFive(cards, combo []deck.Card, start, depth int, visit func()) {
	if depth == 5 {
		visit()
		return
	}
	for i := start; i <= len(cards)-(5-depth); i++ {
		combo[depth] = cards[i]
		chooseFive(cards, combo, i+1, depth+1, visit)
	}
}

func evaluate5(cards []deck.Card) Hand {
	ranks := make([]deck.Rank, 5)
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	counts := map[deck.Rank]int{}
	for _, r := range ranks {
		counts[r]++
	}

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh, straight := straightHighCard(ranks)

	if flush && straight {
		if straightHigh == deck.Ace {
			return Hand{Category: RoyalFlush, Tiebreak: []deck.Rank{straightHigh}}
		}
		return Hand{Category: StraightFlush, Tiebreak: []deck.Rank{straightHigh}}
	}

	if quad := rankWithCount(counts, 4); quad != 0 {
		kicker := highestExcluding(ranks, quad)
		return Hand{Category: FourOfAKind, Tiebreak: []deck.Rank{quad, kicker}}
	}

	trips := rankWithCount(counts, 3)
	pairs := ranksWithCount(counts, 2)

	if trips != 0 && len(pairs) == 1 {
		return Hand{Category: FullHouse, Tiebreak: []deck.Rank{trips, pairs[0]}}
	}

	if flush {
		return Hand{Category: Flush, Tiebreak: ranks}
	}

	if straight {
		return Hand{Category: Straight, Tiebreak: []deck.Rank{straightHigh}}
	}

	if trips != 0 {
		kickers := kickersExcluding(ranks, trips)
		return Hand{Category: ThreeOfAKind, Tiebreak: append([]deck.Rank{trips}, kickers...)}
	}

	if len(pairs) == 2 {
		kicker := highestExcluding(ranks, pairs[0], pairs[1])
		return Hand{Category: TwoPair, Tiebreak: []deck.Rank{pairs[0], pairs[1], kicker}}
	}

	if len(pairs) == 1 {
		kickers := kickersExcluding(ranks, pairs[0])
		return Hand{Category: OnePair, Tiebreak: append([]deck.Rank{pairs[0]}, kickers...)}
	}

	return Hand{Category: HighCard, Tiebreak: ranks}
}

// straightHighCard reports whether the five ranks form a straight and, if so,
// the rank of its high card. The wheel A-2-3-4-5 is a straight with high card
// Five, the lowest straight.
func straightHighCard(sortedDesc []deck.Rank) (deck.Rank, bool) {
	for i := 1; i < 5; i++ {
		if sortedDesc[i] == sortedDesc[i-1] {
			return 0, false
		}
	}
	if sortedDesc[0]-sortedDesc[4] == 4 {
		return sortedDesc[0], true
	}
	// Wheel: A,5,4,3,2 when sorted descending
	if sortedDesc[0] == deck.Ace && sortedDesc[1] == deck.Five &&
		sortedDesc[2] == deck.Four && sortedDesc[3] == deck.Three && sortedDesc[4] == deck.Two {
		return deck.Five, true
	}
	return 0, false
}

func rankWithCount(counts map[deck.Rank]int, n int) deck.Rank {
	var best deck.Rank
	for r, c := range counts {
		if c == n && r > best {
			best = r
		}
	}
	return best
}

func ranksWithCount(counts map[deck.Rank]int, n int) []deck.Rank {
	var out []deck.Rank
	for r, c := range counts {
		if c == n {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

func highestExcluding(sortedDesc []deck.Rank, exclude ...deck.Rank) deck.Rank {
	for _, r := range sortedDesc {
		skip := false
		for _, e := range exclude {
			if r == e {
				skip = true
				break
			}
		}
		if !skip {
			return r
		}
	}
	return 0
}

func kickersExcluding(sortedDesc []deck.Rank, exclude deck.Rank) []deck.Rank {
	var out []deck.Rank
	for _, r := range sortedDesc {
		if r != exclude {
			out = append(out, r)
		}
	}
	return out
}
