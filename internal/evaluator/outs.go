package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/pokercoach/internal/deck"
)

// ErrInsufficientBoard is returned when outs are requested before the flop.
// There is no meaningful outs question without at least 3 board cards.
var ErrInsufficientBoard = errors.New("evaluator: outs require at least 3 board cards")

// OutVetoFunc can reject a candidate out, e.g. because the same card would
// improve a modeled opponent hand even more. A nil veto means naive counting.
type OutVetoFunc func(card deck.Card) bool

// OutGroup holds the outs that improve the hand to a single category,
// ordered by rank (descending) then suit for display.
type OutGroup struct {
	Improves Category
	Cards    []deck.Card
}

// OutsResult is the full enumeration of improving cards for a hand.
type OutsResult struct {
	Current     Hand
	Groups      []OutGroup
	UnseenCount int
}

// Total returns the number of outs across all groups.
func (r OutsResult) Total() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Cards)
	}
	return n
}

// Display formats the outs grouped by the category they improve to, with each
// group's cards collected per rank, e.g. "Q: ♠, ♦".
func (r OutsResult) Display() string {
	if len(r.Groups) == 0 {
		return "No outs available (you likely have a strong hand already!)"
	}

	var b []byte
	for _, g := range r.Groups {
		b = fmt.Appendf(b, "%s (%d outs):\n", g.Improves, len(g.Cards))

		byRank := map[deck.Rank][]deck.Suit{}
		var order []deck.Rank
		for _, c := range g.Cards {
			if _, seen := byRank[c.Rank]; !seen {
				order = append(order, c.Rank)
			}
			byRank[c.Rank] = append(byRank[c.Rank], c.Suit)
		}
		for _, rank := range order {
			b = fmt.Appendf(b, "  %s:", rank)
			for i, s := range byRank[rank] {
				if i > 0 {
					b = append(b, ',')
				}
				b = fmt.Appendf(b, " %s", s)
			}
			b = append(b, '\n')
		}
	}
	return string(b)
}

// Outs enumerates the unseen cards that would strictly improve the hand
// category of hole+board if dealt next. seen lists any additional cards known
// to be out of the deck (modeled opponent cards); hole and board are always
// treated as seen. Tie-break-only improvements do not count as outs: the
// question being taught is about upgrading the hand category.
func Outs(hole, board, seen []deck.Card) (OutsResult, error) {
	return OutsFiltered(hole, board, seen, nil)
}

// OutsFiltered is Outs with an optional veto applied to each candidate out.
func OutsFiltered(hole, board, seen []deck.Card, veto OutVetoFunc) (OutsResult, error) {
	if len(board) < 3 {
		return OutsResult{}, fmt.Errorf("%w: board has %d", ErrInsufficientBoard, len(board))
	}

	current, err := Evaluate(append(append([]deck.Card{}, hole...), board...))
	if err != nil {
		return OutsResult{}, err
	}

	known := map[deck.Card]bool{}
	for _, c := range hole {
		known[c] = true
	}
	for _, c := range board {
		known[c] = true
	}
	for _, c := range seen {
		known[c] = true
	}

	byCategory := map[Category][]deck.Card{}
	unseen := 0

	for _, candidate := range deck.AllCards() {
		if known[candidate] {
			continue
		}
		unseen++

		if veto != nil && veto(candidate) {
			continue
		}

		trial := make([]deck.Card, 0, len(hole)+len(board)+1)
		trial = append(trial, hole...)
		trial = append(trial, board...)
		trial = append(trial, candidate)
		if len(trial) > 7 {
			// River board: nothing left to draw to.
			continue
		}

		improved, err := Evaluate(trial)
		if err != nil {
			return OutsResult{}, err
		}
		if improved.Category > current.Category {
			byCategory[improved.Category] = append(byCategory[improved.Category], candidate)
		}
	}

	result := OutsResult{Current: current, UnseenCount: unseen}
	for cat := RoyalFlush; cat > current.Category; cat-- {
		cards, ok := byCategory[cat]
		if !ok {
			continue
		}
		sort.Slice(cards, func(i, j int) bool {
			if cards[i].Rank != cards[j].Rank {
				return cards[i].Rank > cards[j].Rank
			}
			return cards[i].Suit < cards[j].Suit
		})
		result.Groups = append(result.Groups, OutGroup{Improves: cat, Cards: cards})
	}
	return result, nil
}

// RangeVeto builds an OutVetoFunc from modeled opponent hole cards: a card is
// vetoed when it upgrades the opponent's hand category at least as much as it
// would upgrade ours. This is the heuristic opponent-aware mode; the default
// remains naive counting.
func RangeVeto(hole, board, oppHole []deck.Card) OutVetoFunc {
	ours, err := Evaluate(append(append([]deck.Card{}, hole...), board...))
	if err != nil {
		return nil
	}
	theirs, err := Evaluate(append(append([]deck.Card{}, oppHole...), board...))
	if err != nil {
		return nil
	}

	return func(card deck.Card) bool {
		ourTrial := append(append(append([]deck.Card{}, hole...), board...), card)
		oppTrial := append(append(append([]deck.Card{}, oppHole...), board...), card)
		if len(ourTrial) > 7 || len(oppTrial) > 7 {
			return false
		}
		ourNew, err := Evaluate(ourTrial)
		if err != nil {
			return false
		}
		oppNew, err := Evaluate(oppTrial)
		if err != nil {
			return false
		}
		ourGain := int(ourNew.Category) - int(ours.Category)
		oppGain := int(oppNew.Category) - int(theirs.Category)
		return oppGain > 0 && oppGain >= ourGain
	}
}
