// Package ui renders game state to the terminal and collects player input
// through small inline prompt models.
package ui

import (
	"fmt"
	"strings"

	"github.com/lox/pokercoach/internal/bot"
	"github.com/lox/pokercoach/internal/deck"
	"github.com/lox/pokercoach/internal/education"
	"github.com/lox/pokercoach/internal/game"
)

// FormatCards formats cards with suit colors
func FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("(none)")
	}

	var formatted []string
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}

	return "[" + strings.Join(formatted, " ") + "]"
}

// Banner renders the game title.
func Banner() string {
	return HeaderStyle.Render("♠ Poker Coach — learn pot odds at the table ♠")
}

// TableState renders the board, pot and every seat for the current street.
func TableState(t *game.Table) string {
	var b strings.Builder

	b.WriteString(StageStyle.Render(fmt.Sprintf("═══ %s ═══", t.Street)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Board: %s   %s\n",
		FormatCards(t.Board), PotStyle.Render(fmt.Sprintf("Pot: $%d", t.Pot))))

	for i, p := range t.Players {
		marker := "  "
		if i == t.Button {
			marker = "D "
		}
		status := ""
		switch {
		case p.Folded:
			status = InfoStyle.Render(" (folded)")
		case p.AllIn:
			status = HintStyle.Render(" (all-in)")
		case p.BetThisRound > 0:
			status = fmt.Sprintf(" bet $%d", p.BetThisRound)
		}
		line := fmt.Sprintf("%s%-10s $%-5d%s", marker, p.Name, p.Chips, status)
		if p == t.Human {
			line += "  " + FormatCards(p.Hole)
		}
		b.WriteString(PlayerStyle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// BotAction renders one bot's move as a log line. Amounts come from the chips
// the player actually committed, not the action's raise-by increment, so a
// short all-in call reads as what it paid and a raise shows the total bet.
func BotAction(p *game.Player, a bot.Action, paid int) string {
	switch a.Type {
	case bot.Fold:
		return InfoStyle.Render(fmt.Sprintf("%s folds", p.Name))
	case bot.Check:
		return PlayerStyle.Render(fmt.Sprintf("%s checks", p.Name))
	case bot.Call:
		return PlayerStyle.Render(fmt.Sprintf("%s calls $%d", p.Name, paid))
	case bot.Bet:
		return HintStyle.Render(fmt.Sprintf("%s bets $%d", p.Name, paid))
	case bot.Raise:
		return HintStyle.Render(fmt.Sprintf("%s raises to $%d", p.Name, p.BetThisRound))
	default:
		return fmt.Sprintf("%s acts", p.Name)
	}
}

// Results renders the showdown payouts.
func Results(results []game.Result) string {
	var b strings.Builder
	for _, r := range results {
		line := fmt.Sprintf("%s wins $%d", r.Player.Name, r.Amount)
		if r.HandName != "" {
			line += fmt.Sprintf(" with %s", r.HandName)
		}
		b.WriteString(SuccessStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// QuestionPrompt renders a quiz question with its board context.
func QuestionPrompt(q education.Question) string {
	var b strings.Builder
	b.WriteString(QuestionStyle.Render("── Quiz ──"))
	b.WriteString("\n")
	if len(q.Hole) > 0 {
		b.WriteString(fmt.Sprintf("Your hand: %s", FormatCards(q.Hole)))
		if len(q.Board) > 0 {
			b.WriteString(fmt.Sprintf("   Board: %s", FormatCards(q.Board)))
		}
		b.WriteString("\n")
	}
	b.WriteString(q.Prompt)
	return b.String()
}

// Verdict renders grading feedback, green for correct and red otherwise.
func Verdict(v education.Verdict) string {
	if v.Correct {
		return SuccessStyle.Render("✓ " + v.Feedback)
	}
	return ErrorStyle.Render("✗ " + v.Feedback)
}

// TutorReply renders a tutor chat response.
func TutorReply(text string) string {
	return TutorStyle.Render("Tutor: ") + text
}
