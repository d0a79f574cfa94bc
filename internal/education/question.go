// Package education generates the quiz questions asked between streets and
// grades the player's answers, either locally (numeric comparison) or through
// a remote reasoning tutor.
package education

import (
	"fmt"

	"github.com/lox/pokercoach/internal/deck"
	"github.com/lox/pokercoach/internal/evaluator"
)

// QuestionType identifies what a question is asking about.
type QuestionType int

const (
	PotOdds QuestionType = iota
	Outs
	WinOdds
)

// String returns the wire name of the question type
func (t QuestionType) String() string {
	switch t {
	case PotOdds:
		return "pot_odds"
	case Outs:
		return "outs"
	case WinOdds:
		return "win_odds"
	default:
		return "unknown"
	}
}

// Question is one quiz prompt plus everything needed to grade the answer and
// explain it: the board state and the computed correct answer.
type Question struct {
	Type   QuestionType
	Prompt string
	Hint   string
	Stage  string

	Hole  []deck.Card
	Board []deck.Card

	Pot        int
	CallAmount int

	CorrectRatio evaluator.Ratio
	CorrectOuts  int
	OutsDetail   *evaluator.OutsResult
	UnseenCount  int
}

// PotOddsQuestion builds the pot odds prompt for a live bet.
func PotOddsQuestion(stage string, pot, call int) Question {
	return Question{
		Type:  PotOdds,
		Stage: stage,
		Prompt: fmt.Sprintf("What are the pot odds? (Format: X:1 or X.X:1)\n"+
			"Pot: $%d, You need to call: $%d", pot, call),
		Hint:         "Formula: pot / bet to call",
		Pot:          pot,
		CallAmount:   call,
		CorrectRatio: evaluator.PotOdds(pot, call),
	}
}

// OutsQuestion builds the stage-specific outs prompt. On the river the
// question is retrospective, since no card is left to come.
func OutsQuestion(stage string, hole, board []deck.Card, outs *evaluator.OutsResult) Question {
	var prompt, hint string
	switch stage {
	case "Flop":
		prompt = "How many outs do you have for the TURN card?\n(Count cards that would improve your hand on the next card)"
		hint = "Outs are cards that will improve your hand. We're counting what helps on the TURN only."
	case "Turn":
		prompt = "How many outs do you have for the RIVER card?\n(Count cards that would improve your hand on the final card)"
		hint = "Count remaining cards in the deck that would give you a better hand on the RIVER."
	default:
		prompt = "How many outs did you have?\n(This is for learning - the hand is complete)"
		hint = "Count what cards would have helped you."
	}

	return Question{
		Type:        Outs,
		Stage:       stage,
		Prompt:      prompt,
		Hint:        hint,
		Hole:        hole,
		Board:       board,
		CorrectOuts: outs.Total(),
		OutsDetail:  outs,
		UnseenCount: outs.UnseenCount,
	}
}

// WinOddsQuestion builds the win odds prompt given a known outs count.
func WinOddsQuestion(stage string, hole, board []deck.Card, outs, unseen int) Question {
	return Question{
		Type:  WinOdds,
		Stage: stage,
		Prompt: fmt.Sprintf("What are your odds to win? (Format: X:1 or X.X:1)\n"+
			"You have %d outs, %d unknown cards remain", outs, unseen),
		Hint:         "Formula: (unknown cards - outs) / outs",
		Hole:         hole,
		Board:        board,
		CorrectOuts:  outs,
		UnseenCount:  unseen,
		CorrectRatio: evaluator.WinOdds(outs, unseen),
	}
}

// Recommendation compares pot odds against win odds and phrases advice the
// way the drill teaches it: call when the pot lays better odds than the draw.
func Recommendation(potOdds, winOdds evaluator.Ratio, made evaluator.Category) string {
	if made >= evaluator.ThreeOfAKind {
		return "You have a strong hand! Consider betting or raising."
	}

	switch {
	case evaluator.ShouldCall(potOdds, winOdds):
		return fmt.Sprintf("Good pot odds! Pot odds (%s) > Win odds (%s). Calling is profitable!",
			potOdds, winOdds)
	case potOdds.Value > winOdds.Value*0.9:
		return fmt.Sprintf("Close odds. Pot odds (%s) ≈ Win odds (%s). Marginal call.",
			potOdds, winOdds)
	default:
		return fmt.Sprintf("Poor pot odds. Pot odds (%s) < Win odds (%s). Consider folding.",
			potOdds, winOdds)
	}
}
