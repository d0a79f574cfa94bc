package deck

import (
	rand "math/rand/v2"
)

// Deck represents a deck of playing cards. The random source is injected so
// that hands can be replayed deterministically under test.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a new shuffled 52-card deck using the provided random source.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: AllCards(),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// Shuffle randomizes the order of cards in the deck using Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top n cards. Returns nil if the deck is short.
func (d *Deck) Deal(n int) []Card {
	if n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards
}

// DealOne removes and returns the top card from the deck.
func (d *Deck) DealOne() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Burn discards the top card, as dealt before each street.
func (d *Deck) Burn() {
	if len(d.cards) > 0 {
		d.cards = d.cards[1:]
	}
}

// Reset restores the deck to a full 52-card deck and shuffles it.
func (d *Deck) Reset() {
	d.cards = AllCards()
	d.Shuffle()
}

// CardsRemaining returns the number of cards left in the deck.
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}
