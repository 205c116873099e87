package engine

// Transition functions. Each takes the current round state, validates the
// action, and either returns a successor copy with OK=true or returns a
// nil state with a rule-violation Verdict, leaving the caller's state
// untouched. Turn order within a phase is always the fixed anti-clockwise
// seat order.

// requireTurn rejects actions from a seat that is not on turn.
func requireTurn(s *RoundState, seat Seat) Verdict {
	if s.CurrentTurn != seat {
		return invalid("it is %s's turn, not %s's", s.CurrentTurn, seat)
	}
	return valid()
}

// FinishDeal closes the blind-call window by dealing the remaining two
// cards to every hand and advancing dealing → bidding. Bidding opens with
// the seat left of the dealer. A standing blind call preempts bidding
// entirely: the caller becomes the trump maker and leads at once.
func FinishDeal(s *RoundState) (*RoundState, Verdict) {
	if s.Phase != PhaseDealing {
		return nil, invalid("cannot finish deal during %s", s.Phase)
	}
	out := s.clone()
	out.Hands = dealRemainder(out.Hands, out.Stock, out.Dealer)
	out.Stock = nil
	out.DealComplete = true

	if call, ok := out.ActiveCall(); ok {
		out.BiddingClosed = true
		out.TrumpMaker = call.Caller
		out.HasTrumpMaker = true
		out.Phase = PhasePlaying
		out.CurrentTrick = NewTrick(call.Caller)
		out.CurrentTurn = call.Caller
		return out, valid()
	}

	out.Phase = PhaseBidding
	out.CurrentTurn = out.Dealer.Next()
	return out, valid()
}

// MakeBid records a bid for the seat on turn. The bid sequence is
// strictly increasing in multiples of 10.
func MakeBid(s *RoundState, cfg GameConfig, seat Seat, amount int) (*RoundState, Verdict) {
	if v := requireTurn(s, seat); !v.OK {
		return nil, v
	}
	if v := ValidateBid(s, cfg, seat, amount); !v.OK {
		return nil, v
	}
	out := s.clone()
	out.Calls = append(out.Calls, Call{Type: CallBid, Caller: seat, Amount: amount})
	out.HighestBid = amount
	out.BidWinner = seat
	out.HasBidWinner = true
	out.PassStreak = 0
	out.CurrentTurn = seat.Next()
	return out, valid()
}

// PassBid records a pass for the seat on turn. Bidding closes when three
// consecutive passes follow an existing bid, or when all four seats pass
// with no bid at all — the latter sets AllPassed so the orchestrator can
// redeal, with the dealer's next seat as the default trump maker.
func PassBid(s *RoundState, cfg GameConfig, seat Seat) (*RoundState, Verdict) {
	if v := requireTurn(s, seat); !v.OK {
		return nil, v
	}
	if v := ValidatePass(s, seat); !v.OK {
		return nil, v
	}
	out := s.clone()
	out.Calls = append(out.Calls, Call{Type: CallPass, Caller: seat})
	out.PassStreak++
	out.CurrentTurn = seat.Next()

	switch {
	case out.HasBidWinner && out.PassStreak >= NumSeats-1:
		out.closeBidding(out.BidWinner, false)
	case !out.HasBidWinner && out.PassStreak >= NumSeats:
		out.closeBidding(out.Dealer.Next(), true)
	}
	return out, valid()
}

// closeBidding advances bidding → choosingTrump with the given trump maker.
func (s *RoundState) closeBidding(maker Seat, allPassed bool) {
	s.BiddingClosed = true
	s.AllPassed = allPassed
	s.TrumpMaker = maker
	s.HasTrumpMaker = true
	s.Phase = PhaseChoosingTrump
	s.CurrentTurn = maker
}

// SelectTrump lets the trump maker fix the trump suit, advancing
// choosingTrump → playing. The trump maker leads the first trick.
func SelectTrump(s *RoundState, seat Seat, suit uint8) (*RoundState, Verdict) {
	if s.Phase != PhaseChoosingTrump {
		return nil, invalid("trump can only be selected during choosingTrump, not %s", s.Phase)
	}
	if !s.HasTrumpMaker || s.TrumpMaker != seat {
		return nil, invalid("only the trump maker (%s) may select trump", s.TrumpMaker)
	}
	if suit >= NumSuits {
		return nil, invalid("unknown suit %d", suit)
	}
	out := s.clone()
	out.Trump = suit
	out.HasTrump = true
	out.Phase = PhasePlaying
	out.CurrentTrick = NewTrick(seat)
	out.CurrentTurn = seat
	return out, valid()
}

// PlayCard plays a card for the seat on turn, enforcing follow-suit
// legality. Completing a trick resolves its winner, who leads the next
// trick. The round advances to scoring after the sixth trick — or as soon
// as an active Thunee/Royals call's outcome is decided (any trick won by
// a seat other than the caller).
func PlayCard(s *RoundState, cfg GameConfig, seat Seat, card Card) (*RoundState, Verdict) {
	if s.Phase != PhasePlaying {
		return nil, invalid("cards can only be played during play, not %s", s.Phase)
	}
	if v := requireTurn(s, seat); !v.OK {
		return nil, v
	}
	if v := ValidateCardPlay(card, s.Hands[seat], &s.CurrentTrick); !v.OK {
		return nil, v
	}

	out := s.clone()
	out.Hands[seat] = removeCard(out.Hands[seat], card)
	if err := out.CurrentTrick.add(seat, card); err != nil {
		// Unreachable after validation; surfaced as a rule violation so the
		// caller's state stays intact.
		return nil, invalid("%v", err)
	}

	if !out.CurrentTrick.Complete() {
		out.CurrentTurn = seat.Next()
		return out, valid()
	}

	trump, hasTrump := out.EffectiveTrump()
	winner, err := DetermineWinner(&out.CurrentTrick, trump, hasTrump, out.RoyalsMode())
	if err != nil {
		return nil, invalid("%v", err)
	}
	out.CurrentTrick.Winner = winner
	out.CurrentTrick.Scored = true
	out.CompletedTricks = append(out.CompletedTricks, out.CurrentTrick)
	out.CurrentTrick = NewTrick(winner)
	out.CurrentTurn = winner

	if call, ok := out.ActiveCall(); ok && winner != call.Caller {
		// Thunee/Royals outcome decided: the caller can no longer take all six.
		out.Phase = PhaseScoring
		return out, valid()
	}
	if len(out.CompletedTricks) == 6 {
		out.Phase = PhaseScoring
	}
	return out, valid()
}

// MakeSpecialCall records a validated special call in the round's call
// history. Thunee-family calls become the round's active call; a Jodi is
// stamped with whether its suit is trump at call time.
func MakeSpecialCall(s *RoundState, cfg GameConfig, call Call) (*RoundState, Verdict) {
	if v := ValidateCall(s, cfg, call); !v.OK {
		return nil, v
	}
	out := s.clone()
	stored := call.clone()
	if stored.Type == CallJodi {
		trump, hasTrump := out.EffectiveTrump()
		stored.IsTrump = hasTrump && len(stored.Cards) > 0 && stored.Cards[0].Suit() == trump
	}
	out.Calls = append(out.Calls, stored)
	if stored.IsThuneeFamily() {
		out.ActiveCallIdx = len(out.Calls) - 1
	}
	return out, valid()
}

func removeCard(hand []Card, card Card) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if c != card {
			out = append(out, c)
		}
	}
	return out
}
