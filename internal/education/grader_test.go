package education

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercoach/internal/deck"
	"github.com/lox/pokercoach/internal/evaluator"
)

func TestLocalGraderPotOdds(t *testing.T) {
	q := PotOddsQuestion("Flop", 100, 50) // 2.0:1

	tests := []struct {
		answer  string
		correct bool
	}{
		{"2:1", true},
		{"2.0:1", true},
		{"100/50", true},
		{"2.5:1", true}, // within tolerance
		{"3.0:1", true}, // exactly at tolerance
		{"4:1", false},
		{"0.5:1", false},
	}

	g := NewLocalGrader()
	for _, tt := range tests {
		v, err := g.Grade(context.Background(), q, tt.answer)
		require.NoError(t, err)
		assert.Equal(t, tt.correct, v.Correct, "answer %q", tt.answer)
		assert.NotEmpty(t, v.Feedback)
	}
}

func TestLocalGraderOutsExactMatch(t *testing.T) {
	q := Question{Type: Outs, CorrectOuts: 8}

	tests := []struct {
		answer  string
		correct bool
	}{
		{"8", true},
		{"8 outs", true},
		{"4+4", true},
		{"7", false},
		{"9", false},
		{"8.5", false}, // outs are whole cards
	}

	g := NewLocalGrader()
	for _, tt := range tests {
		v, err := g.Grade(context.Background(), q, tt.answer)
		require.NoError(t, err)
		assert.Equal(t, tt.correct, v.Correct, "answer %q", tt.answer)
	}
}

func TestLocalGraderWinOdds(t *testing.T) {
	q := WinOddsQuestion("Turn", nil, nil, 8, 46) // 4.75:1

	g := NewLocalGrader()
	v, err := g.Grade(context.Background(), q, "4.75:1")
	require.NoError(t, err)
	assert.True(t, v.Correct)

	v, err = g.Grade(context.Background(), q, "roughly 5:1")
	require.NoError(t, err)
	assert.True(t, v.Correct)

	v, err = g.Grade(context.Background(), q, "10:1")
	require.NoError(t, err)
	assert.False(t, v.Correct)
}

func TestLocalGraderMalformedAnswerIsIncorrectNotError(t *testing.T) {
	g := NewLocalGrader()

	q := PotOddsQuestion("Flop", 100, 50)
	v, err := g.Grade(context.Background(), q, "no idea")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Contains(t, v.Feedback, "Invalid answer format")

	q = Question{Type: Outs, CorrectOuts: 8}
	v, err = g.Grade(context.Background(), q, "???")
	require.NoError(t, err)
	assert.False(t, v.Correct)
}

func TestRecommendation(t *testing.T) {
	goodOdds := Recommendation(evaluator.Ratio{Value: 5}, evaluator.Ratio{Value: 4.2}, evaluator.HighCard)
	assert.Contains(t, goodOdds, "Calling is profitable")

	badOdds := Recommendation(evaluator.Ratio{Value: 2}, evaluator.Ratio{Value: 4.2}, evaluator.HighCard)
	assert.Contains(t, badOdds, "Consider folding")

	madeHand := Recommendation(evaluator.Ratio{Value: 2}, evaluator.Ratio{Value: 4.2}, evaluator.Flush)
	assert.Contains(t, madeHand, "strong hand")
}

func TestOutsQuestionPrompts(t *testing.T) {
	cards := func(specs ...string) []deck.Card {
		out := make([]deck.Card, len(specs))
		for i, s := range specs {
			out[i] = deck.MustParseCard(s)
		}
		return out
	}

	hole := cards("As", "Ks")
	turnBoard := cards("2s", "7s", "9d", "Jh")

	outs, err := evaluator.Outs(hole, turnBoard, nil)
	require.NoError(t, err)

	flop := OutsQuestion("Flop", hole, turnBoard[:3], &outs)
	assert.Contains(t, flop.Prompt, "TURN card")

	turn := OutsQuestion("Turn", hole, turnBoard, &outs)
	assert.Contains(t, turn.Prompt, "RIVER card")

	// River asks in hindsight: the hand is over, the outs were the turn's.
	river := OutsQuestion("River", hole, turnBoard, &outs)
	assert.Contains(t, river.Prompt, "How many outs did you have?")
	assert.Contains(t, river.Prompt, "hand is complete")
	assert.Equal(t, outs.Total(), river.CorrectOuts)
	assert.Equal(t, outs.UnseenCount, river.UnseenCount)
}
