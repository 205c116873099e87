package engine

// RoundState is the complete state of one round. It is owned by the
// orchestrator; engine transition functions never mutate it in place and
// instead produce successor copies via clone().
type RoundState struct {
	Phase  Phase
	Dealer Seat

	Hands [NumSeats][]Card
	Stock []Card // undealt remainder during the 4+2 split; empty once dealt

	CompletedTricks []Trick
	CurrentTrick    Trick

	// Calls is the append-only log of every bid, pass and special call.
	// ActiveCallIdx indexes the Thunee-family call currently governing the
	// round, or -1 when none.
	Calls         []Call
	ActiveCallIdx int

	HighestBid    int
	BidWinner     Seat
	HasBidWinner  bool
	AllPassed     bool // bidding closed with four passes and no bid; redeal signal
	PassStreak    int  // consecutive passes, reset by each bid
	BiddingClosed bool

	Trump         uint8
	HasTrump      bool
	TrumpMaker    Seat // valid once Phase >= choosingTrump
	HasTrumpMaker bool

	CurrentTurn  Seat
	DealComplete bool
}

// newRound creates a round at the dealing phase with the first four cards
// of each hand dealt and the remainder held back as stock.
func newRound(dealer Seat, rng RNG) *RoundState {
	deck := ShuffleDeck(rng, NewDeck())
	hands, stock := dealSplit(deck, dealer)
	return &RoundState{
		Phase:         PhaseDealing,
		Dealer:        dealer,
		Hands:         hands,
		Stock:         stock,
		CurrentTrick:  NewTrick(dealer.Next()),
		ActiveCallIdx: -1,
		CurrentTurn:   dealer.Next(),
	}
}

// clone returns a deep successor copy. All slices are copied; the caller's
// state is never aliased.
func (s *RoundState) clone() *RoundState {
	out := *s
	for i := range s.Hands {
		out.Hands[i] = append([]Card(nil), s.Hands[i]...)
	}
	out.Stock = append([]Card(nil), s.Stock...)
	out.CompletedTricks = append([]Trick(nil), s.CompletedTricks...)
	out.Calls = make([]Call, 0, len(s.Calls)+1)
	for _, c := range s.Calls {
		out.Calls = append(out.Calls, c.clone())
	}
	return &out
}

// ActiveCall returns the governing Thunee-family call, if any.
func (s *RoundState) ActiveCall() (Call, bool) {
	if s.ActiveCallIdx < 0 || s.ActiveCallIdx >= len(s.Calls) {
		return Call{}, false
	}
	return s.Calls[s.ActiveCallIdx], true
}

// RoyalsMode reports whether the reversed ranking order is in effect.
// Only an active Royals-family call flips it; the base game is standard.
func (s *RoundState) RoyalsMode() bool {
	call, ok := s.ActiveCall()
	return ok && call.IsRoyals()
}

// EffectiveTrump returns the trump suit governing card comparison. An
// active call carrying its own trump nomination overrides the round's
// selected suit for ranking purposes; trump ownership (the trump-making
// team) is unaffected.
func (s *RoundState) EffectiveTrump() (uint8, bool) {
	if call, ok := s.ActiveCall(); ok && call.HasTrump {
		return call.Trump, true
	}
	return s.Trump, s.HasTrump
}

// TrickNumber returns the 1-based number of the trick currently being
// played (7 once all six are complete).
func (s *RoundState) TrickNumber() int { return len(s.CompletedTricks) + 1 }

// LegalCards returns the cards the seat may legally play right now.
func (s *RoundState) LegalCards(seat Seat) []Card {
	if s.Phase != PhasePlaying {
		return nil
	}
	return LegalCardsFor(s.Hands[seat], &s.CurrentTrick)
}

// CardsInPlay returns the sum of hand sizes, stock, and cards already
// played. It equals DeckSize (24) at every phase — a round invariant the
// tests lean on.
func (s *RoundState) CardsInPlay() int {
	n := len(s.Stock) + int(s.CurrentTrick.Size)
	for i := range s.Hands {
		n += len(s.Hands[i])
	}
	n += NumSeats * len(s.CompletedTricks)
	return n
}

// TricksWonBy returns how many completed tricks the seat has won.
func (s *RoundState) TricksWonBy(seat Seat) int {
	n := 0
	for i := range s.CompletedTricks {
		if s.CompletedTricks[i].Scored && s.CompletedTricks[i].Winner == seat {
			n++
		}
	}
	return n
}

// HasCalled reports whether seat has already made a call of the given type
// this round.
func (s *RoundState) HasCalled(seat Seat, t CallType) bool {
	for _, c := range s.Calls {
		if c.Type == t && c.Caller == seat {
			return true
		}
	}
	return false
}

// TrumpMakingTeam returns the team index of the trump maker.
// Only meaningful once a trump maker exists.
func (s *RoundState) TrumpMakingTeam() int { return s.TrumpMaker.Team() }

// CountingTeam returns the team that must reach the counting threshold:
// the trump maker's opponents.
func (s *RoundState) CountingTeam() int { return 1 - s.TrumpMakingTeam() }
