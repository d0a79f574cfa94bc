package ui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercoach/internal/bot"
	"github.com/lox/pokercoach/internal/deck"
	"github.com/lox/pokercoach/internal/education"
	"github.com/lox/pokercoach/internal/game"
	"github.com/lox/pokercoach/internal/randutil"
)

func TestFormatCards(t *testing.T) {
	DisableColors()

	cards := []deck.Card{deck.MustParseCard("As"), deck.MustParseCard("Kh")}
	out := FormatCards(cards)
	assert.Contains(t, out, "A♠")
	assert.Contains(t, out, "K♥")

	assert.Contains(t, FormatCards(nil), "none")
}

func TestBotActionLines(t *testing.T) {
	DisableColors()

	p := game.NewPlayer("b1", 500)
	tests := []struct {
		action   bot.Action
		paid     int
		betRound int
		expected string
	}{
		{bot.Action{Type: bot.Fold}, 0, 0, "b1 folds"},
		{bot.Action{Type: bot.Check}, 0, 0, "b1 checks"},
		{bot.Action{Type: bot.Call}, 20, 20, "b1 calls $20"},
		{bot.Action{Type: bot.Bet, Amount: 50}, 50, 50, "b1 bets $50"},
		// Raise lines show the total bet this round, not the increment.
		{bot.Action{Type: bot.Raise, Amount: 60}, 100, 120, "b1 raises to $120"},
	}
	for _, tt := range tests {
		p.BetThisRound = tt.betRound
		assert.Equal(t, tt.expected, BotAction(p, tt.action, tt.paid))
	}
}

// A bot call decision carries no amount of its own; the rendered line must
// report the chips the call actually paid.
func TestBotActionRendersPaidCall(t *testing.T) {
	DisableColors()

	human := game.NewPlayer("you", 500)
	rival := game.NewBot("Alice", 500, bot.ProfileFor(bot.Hard))
	tbl := game.NewTable(human, []*game.Player{rival}, 5, randutil.New(1), log.New(io.Discard))
	require.True(t, tbl.StartHand())
	tbl.DealFlop()

	require.Equal(t, 40, tbl.Apply(human, bot.Action{Type: bot.Bet, Amount: 40}))

	// Medium strength facing an affordable bet always calls.
	action := bot.Decide(bot.ProfileFor(bot.Hard), 0.5, bot.PotState{
		Pot:        tbl.Pot,
		CallAmount: tbl.CallAmount(rival),
		Stack:      rival.Chips,
		MinRaise:   tbl.MinRaise,
	}, false, randutil.New(7))
	require.Equal(t, bot.Call, action.Type)
	require.Zero(t, action.Amount)

	paid := tbl.Apply(rival, action)
	line := BotAction(rival, action, paid)
	assert.Equal(t, "Alice calls $40", line)
	assert.NotContains(t, line, "$0")
}

func TestVerdictRendering(t *testing.T) {
	DisableColors()

	good := Verdict(education.Verdict{Correct: true, Feedback: "nice"})
	assert.Contains(t, good, "✓")
	assert.Contains(t, good, "nice")

	bad := Verdict(education.Verdict{Feedback: "nope"})
	assert.Contains(t, bad, "✗")
}

func keyMsg(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestSelectModelNavigation(t *testing.T) {
	m := selectModel{title: "pick", options: []string{"one", "two", "three"}}

	next, _ := m.Update(keyMsg("down"))
	next, _ = next.(selectModel).Update(keyMsg("down"))
	next, _ = next.(selectModel).Update(keyMsg("down")) // clamped at the end
	next, _ = next.(selectModel).Update(keyMsg("enter"))

	final := next.(selectModel)
	require.True(t, final.chosen)
	assert.Equal(t, 2, final.cursor)
}

func TestSelectModelAbort(t *testing.T) {
	m := selectModel{title: "pick", options: []string{"one", "two"}}
	next, _ := m.Update(keyMsg("esc"))
	assert.True(t, next.(selectModel).aborted)
}

func TestSelectModelViewMarksCursor(t *testing.T) {
	DisableColors()
	m := selectModel{title: "pick", options: []string{"one", "two"}, cursor: 1}

	view := m.View()
	assert.Contains(t, view, "> two")
	assert.Contains(t, view, "  one")
}
