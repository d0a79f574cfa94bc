package education

import (
	"context"
	"fmt"
	"math"

	"github.com/lox/pokercoach/internal/expr"
)

// Verdict is the outcome of grading one answer.
type Verdict struct {
	Correct   bool
	Feedback  string
	Reasoning string
}

// Grader evaluates a player's answer to a question. The game loop depends
// only on this interface, never on which implementation is active.
type Grader interface {
	Grade(ctx context.Context, q Question, answer string) (Verdict, error)
}

// ChatTurn is one message in a tutor conversation.
type ChatTurn struct {
	Role    string // "user" or "assistant"
	Content string
}

// Tutor is the optional follow-up chat capability. Graders that cannot chat
// simply don't implement it.
type Tutor interface {
	Chat(ctx context.Context, q Question, transcript []ChatTurn) (string, error)
}

// ratioTolerance is how far an odds answer may be from the true ratio and
// still count as correct.
const ratioTolerance = 1.0

// LocalGrader grades answers by numeric comparison only: exact match for
// outs counts, ratio equivalence within tolerance for odds. It is the
// deterministic fallback when no remote tutor is configured.
type LocalGrader struct{}

// NewLocalGrader returns a LocalGrader.
func NewLocalGrader() *LocalGrader {
	return &LocalGrader{}
}

// Grade evaluates the answer against the question's computed correct value.
// A malformed answer is an incorrect verdict with guidance, not an error.
func (g *LocalGrader) Grade(_ context.Context, q Question, answer string) (Verdict, error) {
	switch q.Type {
	case PotOdds:
		return gradeRatio(answer, q.CorrectRatio.Value, q.CorrectRatio.String(),
			"The pot odds are %s", "Not quite. The pot odds are %s. Formula: pot / bet to call"), nil

	case Outs:
		value, err := expr.ExtractNumber(answer)
		if err != nil {
			return Verdict{Feedback: "Invalid answer format. Please provide a number."}, nil
		}
		if int(math.Round(value)) == q.CorrectOuts && value == math.Trunc(value) {
			return Verdict{Correct: true, Feedback: fmt.Sprintf("Correct! You have %d outs.", q.CorrectOuts)}, nil
		}
		return Verdict{Feedback: fmt.Sprintf("Not quite. You have %d outs.", q.CorrectOuts)}, nil

	case WinOdds:
		return gradeRatio(answer, q.CorrectRatio.Value, q.CorrectRatio.String(),
			"Your odds to win are %s", "Not quite. Your odds to win are %s. Formula: (unknown cards - outs) / outs"), nil

	default:
		return Verdict{Feedback: "Unknown question type"}, nil
	}
}

func gradeRatio(answer string, correct float64, correctStr, okFmt, badFmt string) Verdict {
	value, err := expr.ExtractRatio(answer)
	if err != nil {
		return Verdict{Feedback: "Invalid answer format. Please provide a ratio like '3:1' or '3.5:1'"}
	}
	if math.Abs(value-correct) <= ratioTolerance {
		return Verdict{Correct: true, Feedback: fmt.Sprintf("Correct! "+okFmt, correctStr)}
	}
	return Verdict{Feedback: fmt.Sprintf(badFmt, correctStr)}
}
