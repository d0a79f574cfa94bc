package game

import (
	"github.com/lox/pokercoach/internal/bot"
)

// ActionFunc supplies the human player's action for one decision point.
type ActionFunc func(p *Player) (bot.Action, error)

// ObserverFunc is notified of every acted decision, for display.
type ObserverFunc func(p *Player, a bot.Action, paid int)

// BettingRound runs one street of betting. Action starts left of the big
// blind pre-flop and left of the button post-flop; a bet or raise reopens
// the action for everyone else still able to act. Returns false when the
// hand is over because all but one player folded.
func (t *Table) BettingRound(humanAct ActionFunc, observe ObserverFunc) (bool, error) {
	active := map[*Player]bool{}
	for _, p := range t.Players {
		if !p.Folded && !p.AllIn {
			active[p] = true
		}
	}
	if len(active) <= 1 && t.CurrentBet == 0 {
		return len(t.ActivePlayers()) > 1, nil
	}

	toAct := map[*Player]bool{}
	for p := range active {
		toAct[p] = true
	}

	pos := t.startPosition()
	for len(toAct) > 0 {
		p := t.Players[pos%len(t.Players)]
		pos++

		if p.Folded || p.AllIn || !toAct[p] {
			continue
		}

		var action bot.Action
		if p.IsBot() {
			action = t.BotAction(p)
		} else {
			var err error
			action, err = humanAct(p)
			if err != nil {
				return false, err
			}
		}

		paid := t.Apply(p, action)
		delete(toAct, p)

		if action.Type == bot.Bet || action.Type == bot.Raise {
			// Everyone else still able to act must respond.
			for q := range active {
				if q != p && !q.Folded && !q.AllIn {
					toAct[q] = true
				}
			}
		}

		if observe != nil {
			observe(p, action, paid)
		}
	}

	return len(t.ActivePlayers()) > 1, nil
}

func (t *Table) startPosition() int {
	if t.Street == PreFlop {
		return (t.Button + 3) % len(t.Players)
	}
	return (t.Button + 1) % len(t.Players)
}
