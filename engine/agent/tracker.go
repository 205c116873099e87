// Package agent implements the bot decision layer: public-information
// tracking, the bidding model, and the card-play heuristic cascade. It
// consumes engine values and never mutates shared state; all randomness
// flows through the injected engine.RNG.
package agent

import (
	engine "github.com/JustABard/thunee/engine"
)

// GameTracker derives public knowledge strictly from completed and
// in-progress tricks. It is deliberately never handed a RoundState with
// hands in it: the type system is the wall between public and private
// information.
type GameTracker struct {
	trump    uint8
	hasTrump bool
	royals   bool

	played [engine.DeckSize]bool
	void   [engine.NumSeats][engine.NumSuits]bool
}

// NewGameTracker returns a tracker for a round played under the given
// trump and ranking mode.
func NewGameTracker(trump uint8, hasTrump, royals bool) *GameTracker {
	return &GameTracker{trump: trump, hasTrump: hasTrump, royals: royals}
}

// Rebuild repopulates the tracker from scratch out of the public trick
// history. Rebuilding per decision keeps the tracker stateless between
// calls and immune to double counting.
func (t *GameTracker) Rebuild(completed []engine.Trick, current *engine.Trick) {
	t.played = [engine.DeckSize]bool{}
	t.void = [engine.NumSeats][engine.NumSuits]bool{}
	for i := range completed {
		t.observe(&completed[i])
	}
	if current != nil {
		t.observe(current)
	}
}

// observe marks every play in the trick. A seat is void in a suit the
// first time it fails to follow that suit when led.
func (t *GameTracker) observe(trick *engine.Trick) {
	for i := uint8(0); i < trick.Size; i++ {
		seat := trick.Order[i]
		card := trick.Cards[seat]
		t.played[card.Index()] = true
		if i > 0 && card.Suit() != trick.LeadSuit {
			t.void[seat][trick.LeadSuit] = true
		}
	}
}

// IsPlayed reports whether the card has appeared in any trick.
func (t *GameTracker) IsPlayed(c engine.Card) bool { return t.played[c.Index()] }

// IsVoid reports whether the seat is known to be void in the suit.
func (t *GameTracker) IsVoid(seat engine.Seat, suit uint8) bool { return t.void[seat][suit] }

// RemainingInSuit returns the unplayed cards of a suit, strongest first
// under the active ranking mode.
func (t *GameTracker) RemainingInSuit(suit uint8) []engine.Card {
	var out []engine.Card
	for rank := uint8(0); rank < engine.NumRanks; rank++ {
		c := engine.NewCard(suit, rank)
		if !t.played[c.Index()] {
			out = append(out, c)
		}
	}
	// Insertion sort by strength; six cards at most.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && engine.Strength(out[j].Rank(), t.royals) > engine.Strength(out[j-1].Rank(), t.royals); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// StrongestRemaining returns the strongest unplayed card of a suit.
func (t *GameTracker) StrongestRemaining(suit uint8) (engine.Card, bool) {
	rem := t.RemainingInSuit(suit)
	if len(rem) == 0 {
		return engine.EmptyCard, false
	}
	return rem[0], true
}

// IsHighestRemaining reports whether the card is currently the strongest
// unplayed card of its suit.
func (t *GameTracker) IsHighestRemaining(c engine.Card) bool {
	if t.played[c.Index()] {
		return false
	}
	best, ok := t.StrongestRemaining(c.Suit())
	return ok && best == c
}

// outsideTrumps counts unplayed trump cards not held in the given hand.
func (t *GameTracker) outsideTrumps(hand []engine.Card) int {
	if !t.hasTrump {
		return 0
	}
	n := 0
	for _, c := range t.RemainingInSuit(t.trump) {
		held := false
		for _, h := range hand {
			if h == c {
				held = true
				break
			}
		}
		if !held {
			n++
		}
	}
	return n
}

// OpponentsMayHoldTrump reports whether, from the seat's perspective, at
// least one opponent could still hold a trump card.
func (t *GameTracker) OpponentsMayHoldTrump(self engine.Seat, hand []engine.Card) bool {
	if !t.hasTrump || t.outsideTrumps(hand) == 0 {
		return false
	}
	left, right := self.Next(), self.Partner().Next()
	return !t.void[left][t.trump] || !t.void[right][t.trump]
}

// OnlyTeammateHoldsTrump reports whether every trump outside the seat's
// own hand can only sit with the partner: both opponents are void and the
// partner is not.
func (t *GameTracker) OnlyTeammateHoldsTrump(self engine.Seat, hand []engine.Card) bool {
	if !t.hasTrump || t.outsideTrumps(hand) == 0 {
		return false
	}
	left, right := self.Next(), self.Partner().Next()
	return t.void[left][t.trump] && t.void[right][t.trump] && !t.void[self.Partner()][t.trump]
}
