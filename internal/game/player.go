// Package game runs a single-table Texas Hold'em game between one human and
// scripted bot opponents: blinds, betting rounds, streets, side pots and
// showdown. It is UI-free; the human acts through a callback.
package game

import (
	"fmt"

	"github.com/lox/pokercoach/internal/bot"
	"github.com/lox/pokercoach/internal/deck"
)

// Player is a seat at the table. Profile is nil for the human player.
type Player struct {
	Name         string
	Chips        int
	Hole         []deck.Card
	BetThisRound int
	Contribution int
	Folded       bool
	AllIn        bool
	Profile      *bot.Profile
}

// NewPlayer creates a human player.
func NewPlayer(name string, chips int) *Player {
	return &Player{Name: name, Chips: chips}
}

// NewBot creates a bot player with a difficulty profile.
func NewBot(name string, chips int, profile bot.Profile) *Player {
	return &Player{Name: name, Chips: chips, Profile: &profile}
}

// IsBot reports whether this seat is a scripted opponent.
func (p *Player) IsBot() bool {
	return p.Profile != nil
}

// PlaceBet moves up to amount chips into the current bet, going all-in when
// the stack is short. Returns the chips actually committed.
func (p *Player) PlaceBet(amount int) int {
	if amount < 0 {
		amount = 0
	}
	actual := amount
	if amount >= p.Chips {
		actual = p.Chips
		p.Chips = 0
		p.AllIn = true
	} else {
		p.Chips -= amount
	}
	p.BetThisRound += actual
	p.Contribution += actual
	return actual
}

// Fold folds the hand.
func (p *Player) Fold() {
	p.Folded = true
}

// Win credits won chips.
func (p *Player) Win(amount int) {
	p.Chips += amount
}

// ResetForHand clears per-hand state.
func (p *Player) ResetForHand() {
	p.Hole = nil
	p.BetThisRound = 0
	p.Contribution = 0
	p.Folded = false
	p.AllIn = false
}

// InHand reports whether the player has not folded.
func (p *Player) InHand() bool {
	return !p.Folded
}

// String returns e.g. "Bot 1 ($940)"
func (p *Player) String() string {
	return fmt.Sprintf("%s ($%d)", p.Name, p.Chips)
}
