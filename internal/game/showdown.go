package game

import (
	"sort"

	"github.com/lox/pokercoach/internal/deck"
	"github.com/lox/pokercoach/internal/evaluator"
)

// Result is one player's share of the pot at hand end.
type Result struct {
	Player   *Player
	Amount   int
	HandName string
}

// Showdown settles the hand: the tail of a bet nobody matched goes back to
// its bettor, then every remaining player's best hand is evaluated, side pots
// are built from per-player contributions, and each pot pays its best
// eligible hand (split evenly on ties). When everyone else folded, the last
// player wins the pot without showing.
func (t *Table) Showdown() []Result {
	t.returnUncalled()
	active := t.ActivePlayers()

	if len(active) == 1 {
		winner := active[0]
		winner.Win(t.Pot)
		return []Result{{Player: winner, Amount: t.Pot, HandName: "Opponent(s) folded"}}
	}

	hands := map[*Player]evaluator.Hand{}
	for _, p := range active {
		cards := append(append([]deck.Card{}, p.Hole...), t.Board...)
		hand, err := evaluator.Evaluate(cards)
		if err != nil {
			t.logger.Error("showdown evaluation failed", "player", p.Name, "error", err)
			continue
		}
		hands[p] = hand
	}

	var results []Result
	for _, pot := range t.sidePots(active) {
		winners := bestHands(pot.eligible, hands)
		if len(winners) == 0 {
			continue
		}
		share := pot.amount / len(winners)
		for _, w := range winners {
			w.Win(share)
			results = appendResult(results, w, share, hands[w].String())
		}
	}
	return results
}

// returnUncalled refunds the part of the largest contribution no other player
// matched. At most one player can sit above everyone else, so at most one
// refund happens per hand.
func (t *Table) returnUncalled() {
	if len(t.Players) < 2 {
		return
	}
	top := t.Players[0]
	second := 0
	for _, p := range t.Players[1:] {
		switch {
		case p.Contribution > top.Contribution:
			second = top.Contribution
			top = p
		case p.Contribution > second:
			second = p.Contribution
		}
	}
	if excess := top.Contribution - second; excess > 0 {
		top.Contribution -= excess
		top.Chips += excess
		t.Pot -= excess
		t.logger.Debug("returned uncalled bet", "player", top.Name, "amount", excess)
	}
}

type sidePot struct {
	amount   int
	eligible []*Player
}

// sidePots layers the pot by contribution level: each all-in amount closes a
// pot that only players who matched it can win. Folded contributions are
// spread into the pots they covered.
func (t *Table) sidePots(active []*Player) []sidePot {
	sorted := append([]*Player{}, active...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Contribution < sorted[j].Contribution
	})

	var pots []sidePot
	prev := 0
	for i, p := range sorted {
		level := p.Contribution
		if level <= prev {
			continue
		}

		amount := (level - prev) * (len(sorted) - i)
		for _, q := range t.Players {
			if q.Folded {
				if c := min(level, q.Contribution) - prev; c > 0 {
					amount += c
				}
			}
		}

		var eligible []*Player
		for _, q := range sorted {
			if q.Contribution >= level {
				eligible = append(eligible, q)
			}
		}

		pots = append(pots, sidePot{amount: amount, eligible: eligible})
		prev = level
	}
	return pots
}

// bestHands returns every eligible player holding the top hand (ties split).
func bestHands(eligible []*Player, hands map[*Player]evaluator.Hand) []*Player {
	var best []*Player
	for _, p := range eligible {
		hand, ok := hands[p]
		if !ok {
			continue
		}
		if len(best) == 0 {
			best = []*Player{p}
			continue
		}
		switch hand.Compare(hands[best[0]]) {
		case 1:
			best = []*Player{p}
		case 0:
			best = append(best, p)
		}
	}
	return best
}

func appendResult(results []Result, p *Player, amount int, handName string) []Result {
	for i := range results {
		if results[i].Player == p {
			results[i].Amount += amount
			return results
		}
	}
	return append(results, Result{Player: p, Amount: amount, HandName: handName})
}
