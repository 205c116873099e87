package engine

import "fmt"

// Trick holds up to four plays, one per seat, in play order.
// LeadSuit is fixed by the first card and never changes afterwards.
type Trick struct {
	Lead     Seat
	LeadSuit uint8
	HasLead  bool // true once the first card is down

	Cards  [NumSeats]Card // indexed by Seat; EmptyCard when not yet played
	Order  [NumSeats]Seat // seats in play order; first Size() entries valid
	Size   uint8
	Winner Seat // set by the resolver, not by the trick itself
	Scored bool // Winner is only meaningful when true
}

// NewTrick returns an empty trick led by the given seat.
func NewTrick(lead Seat) Trick {
	t := Trick{Lead: lead}
	for i := range t.Cards {
		t.Cards[i] = EmptyCard
	}
	return t
}

// Complete reports whether all four seats have played.
func (t *Trick) Complete() bool { return t.Size == NumSeats }

// Has reports whether the seat has already played into this trick.
func (t *Trick) Has(seat Seat) bool { return t.Cards[seat] != EmptyCard }

// Points returns the accumulated card-point total of the trick so far.
func (t *Trick) Points() int {
	pts := 0
	for i := uint8(0); i < t.Size; i++ {
		pts += t.Cards[t.Order[i]].Points()
	}
	return pts
}

// add places a card for a seat. It fails on a duplicate play or an
// overfull trick; both are invariant violations, not user errors, because
// PlayCard validates before calling it.
func (t *Trick) add(seat Seat, card Card) error {
	if t.Size >= NumSeats {
		return fmt.Errorf("trick already has %d cards", NumSeats)
	}
	if t.Has(seat) {
		return fmt.Errorf("seat %s already played into this trick", seat)
	}
	if !t.HasLead {
		t.LeadSuit = card.Suit()
		t.HasLead = true
		t.Lead = seat
	}
	t.Cards[seat] = card
	t.Order[t.Size] = seat
	t.Size++
	return nil
}

// ---------------------------------------------------------------------------
// TrickResolver — follow-suit legality and winner determination
// ---------------------------------------------------------------------------

// ValidateCardPlay checks whether a card is a legal play from the given
// hand into the trick. The first card of a trick is always legal. Once a
// lead suit exists, a player holding that suit may only play it; a player
// void in the lead suit may play anything, trump included.
func ValidateCardPlay(card Card, hand []Card, trick *Trick) Verdict {
	if !containsCard(hand, card) {
		return invalid("card %s is not in hand", card)
	}
	if !trick.HasLead {
		return valid()
	}
	if card.Suit() == trick.LeadSuit {
		return valid()
	}
	if hasSuit(hand, trick.LeadSuit) {
		return invalid("must follow %s", SuitName(trick.LeadSuit))
	}
	return valid()
}

// LegalCardsFor returns the subset of the hand that may legally be played
// into the trick: the whole hand when leading or void in the lead suit,
// otherwise only lead-suit cards.
func LegalCardsFor(hand []Card, trick *Trick) []Card {
	if !trick.HasLead || !hasSuit(hand, trick.LeadSuit) {
		return append([]Card(nil), hand...)
	}
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if c.Suit() == trick.LeadSuit {
			out = append(out, c)
		}
	}
	return out
}

// DetermineWinner returns the seat that won a complete trick. Calling it
// on an incomplete trick is a programmer error and returns a Go error.
func DetermineWinner(trick *Trick, trump uint8, hasTrump bool, royals bool) (Seat, error) {
	if !trick.Complete() {
		return 0, fmt.Errorf("cannot determine winner of incomplete trick (%d/%d cards)", trick.Size, NumSeats)
	}
	cards := make([]Card, NumSeats)
	for i := uint8(0); i < NumSeats; i++ {
		cards[i] = trick.Cards[trick.Order[i]]
	}
	idx := DetermineWinningCardIndex(cards, trump, hasTrump, trick.LeadSuit, royals)
	return trick.Order[idx], nil
}

// CurrentWinningSeat returns the seat currently winning an in-progress
// trick, or ok=false when the trick is empty.
func CurrentWinningSeat(trick *Trick, trump uint8, hasTrump bool, royals bool) (Seat, bool) {
	if trick.Size == 0 {
		return 0, false
	}
	cards := make([]Card, trick.Size)
	for i := uint8(0); i < trick.Size; i++ {
		cards[i] = trick.Cards[trick.Order[i]]
	}
	idx := DetermineWinningCardIndex(cards, trump, hasTrump, trick.LeadSuit, royals)
	return trick.Order[idx], true
}

// CurrentWinningCard returns the best card so far in an in-progress trick,
// or ok=false when the trick is empty.
func CurrentWinningCard(trick *Trick, trump uint8, hasTrump bool, royals bool) (Card, bool) {
	seat, ok := CurrentWinningSeat(trick, trump, hasTrump, royals)
	if !ok {
		return EmptyCard, false
	}
	return trick.Cards[seat], true
}

// WillCardWin predicts whether a candidate card would be winning if played
// into the trick right now. An empty trick means the candidate leads and
// trivially wins.
func WillCardWin(card Card, trick *Trick, trump uint8, hasTrump bool, royals bool) bool {
	best, ok := CurrentWinningCard(trick, trump, hasTrump, royals)
	if !ok {
		return true
	}
	return Beats(card, best, trump, hasTrump, trick.LeadSuit, royals)
}

func containsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

func hasSuit(hand []Card, suit uint8) bool {
	for _, c := range hand {
		if c.Suit() == suit {
			return true
		}
	}
	return false
}
