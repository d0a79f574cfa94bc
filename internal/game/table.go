package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokercoach/internal/bot"
	"github.com/lox/pokercoach/internal/deck"
	"github.com/lox/pokercoach/internal/evaluator"
)

// Street is the current stage of a hand.
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
)

// String returns the street name
func (s Street) String() string {
	switch s {
	case PreFlop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

// Table holds the state of a single-table game. The deck is created and
// shuffled once per hand; no card appears twice within a hand.
type Table struct {
	Players    []*Player
	Human      *Player
	Board      []deck.Card
	Pot        int
	CurrentBet int
	MinRaise   int
	SmallBlind int
	BigBlind   int
	Button     int
	Street     Street

	deck   *deck.Deck
	rng    *rand.Rand
	logger *log.Logger
}

// NewTable seats the human against bots and prepares a deck.
func NewTable(human *Player, bots []*Player, smallBlind int, rng *rand.Rand, logger *log.Logger) *Table {
	players := append([]*Player{human}, bots...)
	return &Table{
		Players:    players,
		Human:      human,
		SmallBlind: smallBlind,
		BigBlind:   smallBlind * 2,
		deck:       deck.NewDeck(rng),
		rng:        rng,
		logger:     logger,
	}
}

// StartHand prunes broke players, resets state, posts blinds and deals hole
// cards. Returns false when fewer than two players can play.
func (t *Table) StartHand() bool {
	for _, p := range t.Players {
		p.ResetForHand()
	}

	remaining := t.Players[:0]
	for _, p := range t.Players {
		if p.Chips > 0 {
			remaining = append(remaining, p)
		}
	}
	t.Players = remaining

	if len(t.Players) < 2 {
		return false
	}
	if t.Button >= len(t.Players) {
		t.Button = 0
	}

	t.deck.Reset()
	t.Board = nil
	t.Pot = 0
	t.CurrentBet = 0
	t.MinRaise = t.BigBlind
	t.Street = PreFlop

	t.postBlinds()

	for _, p := range t.Players {
		p.Hole = t.deck.Deal(2)
	}

	t.logger.Debug("hand started", "players", len(t.Players), "pot", t.Pot)
	return true
}

func (t *Table) postBlinds() {
	n := len(t.Players)
	sb := t.Players[(t.Button+1)%n]
	bb := t.Players[(t.Button+2)%n]

	t.Pot += sb.PlaceBet(t.SmallBlind)
	t.Pot += bb.PlaceBet(t.BigBlind)
	t.CurrentBet = t.BigBlind
}

// DealFlop burns a card and deals the three flop cards.
func (t *Table) DealFlop() {
	t.deck.Burn()
	t.Board = append(t.Board, t.deck.Deal(3)...)
	t.newStreet(Flop)
}

// DealTurn burns a card and deals the turn.
func (t *Table) DealTurn() {
	t.deck.Burn()
	t.Board = append(t.Board, t.deck.Deal(1)...)
	t.newStreet(Turn)
}

// DealRiver burns a card and deals the river.
func (t *Table) DealRiver() {
	t.deck.Burn()
	t.Board = append(t.Board, t.deck.Deal(1)...)
	t.newStreet(River)
}

func (t *Table) newStreet(s Street) {
	t.Street = s
	t.CurrentBet = 0
	for _, p := range t.Players {
		p.BetThisRound = 0
	}
}

// CallAmount returns what p must add to match the current bet.
func (t *Table) CallAmount(p *Player) int {
	return t.CurrentBet - p.BetThisRound
}

// BotAction computes a bot's action for the current decision point: base
// strength from hole cards (pre-flop formula) or evaluated category, adjusted
// through the profile pipeline, then the stateless band policy.
func (t *Table) BotAction(p *Player) bot.Action {
	profile := *p.Profile
	preflop := len(t.Board) == 0

	var base float64
	if preflop {
		base = bot.PreflopStrength(p.Hole[0], p.Hole[1])
	} else {
		hand, err := evaluator.Evaluate(append(append([]deck.Card{}, p.Hole...), t.Board...))
		if err != nil {
			t.logger.Error("bot hand evaluation failed", "error", err)
			return bot.Action{Type: bot.Check}
		}
		base = bot.PostflopStrength(hand.Category)
	}

	strength := profile.AdjustStrength(base, preflop, t.rng)
	state := bot.PotState{
		Pot:        t.Pot,
		CallAmount: t.CallAmount(p),
		Stack:      p.Chips,
		MinRaise:   t.MinRaise,
	}

	action := bot.Decide(profile, strength, state, preflop, t.rng)
	t.logger.Debug("bot decision",
		"bot", p.Name, "strength", strength, "action", action.String())
	return action
}

// Apply executes an action against the table, clamping bet sizings to the
// player's stack. Returns the chips the player committed.
func (t *Table) Apply(p *Player, a bot.Action) int {
	switch a.Type {
	case bot.Fold:
		p.Fold()
		return 0
	case bot.Check:
		return 0
	case bot.Call:
		paid := p.PlaceBet(t.CallAmount(p))
		t.Pot += paid
		return paid
	case bot.Bet, bot.Raise:
		paid := p.PlaceBet(t.CallAmount(p) + a.Amount)
		t.Pot += paid
		if p.BetThisRound > t.CurrentBet {
			t.MinRaise = p.BetThisRound - t.CurrentBet
			t.CurrentBet = p.BetThisRound
		}
		return paid
	default:
		return 0
	}
}

// MoveButton advances the dealer button for the next hand.
func (t *Table) MoveButton() {
	if len(t.Players) > 0 {
		t.Button = (t.Button + 1) % len(t.Players)
	}
}

// ActivePlayers returns the players still in the hand.
func (t *Table) ActivePlayers() []*Player {
	var active []*Player
	for _, p := range t.Players {
		if p.InHand() {
			active = append(active, p)
		}
	}
	return active
}

// GameOver reports whether the session should end: the human is broke, or
// only one stack remains.
func (t *Table) GameOver() bool {
	if t.Human.Chips <= 0 {
		return true
	}
	withChips := 0
	for _, p := range t.Players {
		if p.Chips > 0 {
			withChips++
		}
	}
	return withChips <= 1
}
