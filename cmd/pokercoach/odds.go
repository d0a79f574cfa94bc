package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokercoach/internal/config"
	"github.com/lox/pokercoach/internal/deck"
	"github.com/lox/pokercoach/internal/evaluator"
	"github.com/lox/pokercoach/internal/ui"
)

// OddsCommand calculates outs, win odds and pot odds for a given spot,
// without playing a hand.
type OddsCommand struct {
	Hole  []string `arg:"" name:"hole" help:"Your two hole cards, e.g. As Kh"`
	Board string   `short:"b" long:"board" required:"" help:"Community cards, space or comma separated, e.g. 'Qs Jh 2d'"`
	Pot   int      `long:"pot" help:"Current pot size, for pot odds"`
	Call  int      `long:"call" help:"Amount you must call, for pot odds"`
}

func (cmd *OddsCommand) Run(_ *config.Config) error {
	if len(cmd.Hole) != 2 {
		return fmt.Errorf("expected exactly 2 hole cards, got %d", len(cmd.Hole))
	}

	hole, err := parseCards(cmd.Hole)
	if err != nil {
		return err
	}
	board, err := parseCards(strings.FieldsFunc(cmd.Board, func(r rune) bool {
		return r == ' ' || r == ','
	}))
	if err != nil {
		return err
	}

	outs, err := evaluator.Outs(hole, board, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Hand:  %s\n", ui.FormatCards(hole))
	fmt.Printf("Board: %s\n", ui.FormatCards(board))
	fmt.Printf("Made:  %s\n\n", outs.Current)
	fmt.Println(outs.Display())

	winOdds := evaluator.WinOdds(outs.Total(), outs.UnseenCount)
	fmt.Printf("\nOuts: %d of %d unseen cards\n", outs.Total(), outs.UnseenCount)
	fmt.Printf("Win odds: %s\n", winOdds)

	if cmd.Call > 0 {
		potOdds := evaluator.PotOdds(cmd.Pot, cmd.Call)
		fmt.Printf("Pot odds: %s (pot $%d, call $%d)\n", potOdds, cmd.Pot, cmd.Call)
		if evaluator.ShouldCall(potOdds, winOdds) {
			fmt.Println(ui.SuccessStyle.Render("Pot odds beat win odds: calling is profitable."))
		} else {
			fmt.Println(ui.ErrorStyle.Render("Win odds are worse than pot odds: folding is correct."))
		}
	}
	return nil
}

func parseCards(raw []string) ([]deck.Card, error) {
	var cards []deck.Card
	seen := map[deck.Card]bool{}
	for _, r := range raw {
		if r == "" {
			continue
		}
		c, err := deck.ParseCard(r)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate card %s", r)
		}
		seen[c] = true
		cards = append(cards, c)
	}
	return cards, nil
}
