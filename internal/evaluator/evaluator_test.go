package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercoach/internal/deck"
	"github.com/lox/pokercoach/internal/randutil"
)

func cards(specs ...string) []deck.Card {
	out := make([]deck.Card, len(specs))
	for i, s := range specs {
		out[i] = deck.MustParseCard(s)
	}
	return out
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    []string
		category Category
	}{
		{"royal flush", []string{"As", "Ks", "Qs", "Js", "10s"}, RoyalFlush},
		{"straight flush", []string{"9h", "8h", "7h", "6h", "5h"}, StraightFlush},
		{"steel wheel", []string{"Ad", "2d", "3d", "4d", "5d"}, StraightFlush},
		{"four of a kind", []string{"7s", "7h", "7d", "7c", "Kh"}, FourOfAKind},
		{"full house", []string{"Js", "Jh", "Jd", "4c", "4h"}, FullHouse},
		{"flush", []string{"Ks", "10s", "8s", "5s", "2s"}, Flush},
		{"straight", []string{"9s", "8h", "7d", "6c", "5h"}, Straight},
		{"wheel straight", []string{"As", "2h", "3d", "4c", "5h"}, Straight},
		{"three of a kind", []string{"Qs", "Qh", "Qd", "8c", "3h"}, ThreeOfAKind},
		{"two pair", []string{"As", "Ah", "9d", "9c", "4h"}, TwoPair},
		{"pair", []string{"10s", "10h", "Ad", "7c", "2h"}, OnePair},
		{"high card", []string{"Ks", "Jh", "8d", "5c", "2h"}, HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand, err := Evaluate(cards(tt.cards...))
			require.NoError(t, err)
			assert.Equal(t, tt.category, hand.Category)
		})
	}
}

func TestEvaluatePermutationInvariant(t *testing.T) {
	base := cards("Js", "Jh", "Jd", "4c", "4h")
	want, err := Evaluate(base)
	require.NoError(t, err)

	rng := randutil.New(1)
	for i := 0; i < 50; i++ {
		shuffled := append([]deck.Card{}, base...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, err := Evaluate(shuffled)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Compare(want), "order %v changed the result", shuffled)
	}
}

func TestEvaluateSevenCards(t *testing.T) {
	// Hole pair plus board quads material: best five must be four of a kind.
	hand, err := Evaluate(cards("9s", "9h", "9d", "9c", "Ah", "Kd", "2c"))
	require.NoError(t, err)
	assert.Equal(t, FourOfAKind, hand.Category)
	assert.Equal(t, []deck.Rank{deck.Nine, deck.Ace}, hand.Tiebreak)

	// Flush hiding inside seven cards.
	hand, err = Evaluate(cards("As", "Ks", "7s", "4s", "2s", "Ah", "Kd"))
	require.NoError(t, err)
	assert.Equal(t, Flush, hand.Category)
}

func TestEvaluateInvalidSize(t *testing.T) {
	_, err := Evaluate(cards("As", "Ks"))
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = Evaluate(cards("As", "Ks", "Qs", "Js", "10s", "9s", "8s", "7s"))
	assert.ErrorIs(t, err, ErrInvalidHand)
}

func TestCompareOrdering(t *testing.T) {
	quads, err := Evaluate(cards("2s", "2h", "2d", "2c", "3h"))
	require.NoError(t, err)
	fullHouse, err := Evaluate(cards("As", "Ah", "Ad", "Kc", "Kh"))
	require.NoError(t, err)

	// Lowest quads still beat the best full house.
	assert.Equal(t, 1, quads.Compare(fullHouse))
	assert.Equal(t, -1, fullHouse.Compare(quads))
}

func TestCompareWheelIsLowestStraight(t *testing.T) {
	wheel, err := Evaluate(cards("As", "2h", "3d", "4c", "5h"))
	require.NoError(t, err)
	sixHigh, err := Evaluate(cards("2s", "3h", "4d", "5c", "6h"))
	require.NoError(t, err)

	require.Equal(t, Straight, wheel.Category)
	assert.Equal(t, []deck.Rank{deck.Five}, wheel.Tiebreak)
	assert.Equal(t, -1, wheel.Compare(sixHigh))
}

func TestCompareKickers(t *testing.T) {
	aceKicker, err := Evaluate(cards("10s", "10h", "Ad", "7c", "2h"))
	require.NoError(t, err)
	kingKicker, err := Evaluate(cards("10d", "10c", "Kd", "7h", "2s"))
	require.NoError(t, err)

	assert.Equal(t, 1, aceKicker.Compare(kingKicker))

	identical, err := Evaluate(cards("10s", "10h", "Ac", "7d", "2c"))
	require.NoError(t, err)
	assert.Equal(t, 0, aceKicker.Compare(identical))
}

func TestHandString(t *testing.T) {
	royal, err := Evaluate(cards("As", "Ks", "Qs", "Js", "10s"))
	require.NoError(t, err)
	assert.Equal(t, "Royal Flush", royal.String())

	sf, err := Evaluate(cards("9h", "8h", "7h", "6h", "5h"))
	require.NoError(t, err)
	assert.Equal(t, "Straight Flush", sf.String())
}

func TestCategoryNormalized(t *testing.T) {
	assert.Equal(t, 0.0, HighCard.Normalized())
	assert.Equal(t, 0.1, OnePair.Normalized())
	assert.Equal(t, 0.9, RoyalFlush.Normalized())
}
