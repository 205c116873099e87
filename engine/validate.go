package engine

// CallValidator — one validation function per call category. Each returns
// a Verdict and never mutates state; business-rule violations never become
// Go errors.

// ValidateBid checks a bid against the bidding phase rules: amounts are
// multiples of 10, at least 10, and strictly above the current highest
// bid. Without EnableCallOverTeammates a seat may not outbid its own
// partner's standing bid.
func ValidateBid(s *RoundState, cfg GameConfig, seat Seat, amount int) Verdict {
	if s.Phase != PhaseBidding {
		return invalid("bids are only accepted during bidding, not %s", s.Phase)
	}
	if amount < 10 || amount%10 != 0 {
		return invalid("bid must be a positive multiple of 10, got %d", amount)
	}
	if amount <= s.HighestBid {
		return invalid("bid %d does not exceed the current highest bid %d", amount, s.HighestBid)
	}
	if !cfg.EnableCallOverTeammates && s.HasBidWinner && s.BidWinner == seat.Partner() {
		return invalid("cannot bid over your partner's standing bid")
	}
	return valid()
}

// ValidatePass checks that passing is currently meaningful.
func ValidatePass(s *RoundState, seat Seat) Verdict {
	if s.Phase != PhaseBidding {
		return invalid("passes are only accepted during bidding, not %s", s.Phase)
	}
	return valid()
}

// ValidateThunee checks a Thunee or Royals call: playing phase, no trick
// completed yet, and a full six-card hand. Royals additionally requires
// the EnableRoyals toggle.
func ValidateThunee(s *RoundState, cfg GameConfig, call Call) Verdict {
	if call.Type == CallRoyals && !cfg.EnableRoyals {
		return invalid("royals calls are disabled")
	}
	if s.Phase != PhasePlaying {
		return invalid("%s can only be called during play, not %s", call.Type, s.Phase)
	}
	if len(s.CompletedTricks) != 0 {
		return invalid("%s must be called before the first trick completes", call.Type)
	}
	if len(s.Hands[call.Caller]) != 6 {
		return invalid("%s requires a full six-card hand", call.Type)
	}
	if _, ok := s.ActiveCall(); ok {
		return invalid("a %s-family call is already active", call.Type)
	}
	return valid()
}

// ValidateBlind checks a BlindThunee or BlindRoyals call: dealing phase,
// a four-card hand, and exactly two held cards nominated as hidden.
func ValidateBlind(s *RoundState, cfg GameConfig, call Call) Verdict {
	switch call.Type {
	case CallBlindThunee:
		if !cfg.EnableBlindThunee {
			return invalid("blind thunee calls are disabled")
		}
	case CallBlindRoyals:
		if !cfg.EnableBlindRoyals {
			return invalid("blind royals calls are disabled")
		}
	}
	if s.Phase != PhaseDealing {
		return invalid("%s can only be called during dealing, not %s", call.Type, s.Phase)
	}
	if len(s.Hands[call.Caller]) != 4 {
		return invalid("%s requires exactly the first four cards, hand has %d", call.Type, len(s.Hands[call.Caller]))
	}
	if len(call.Cards) != 2 {
		return invalid("%s must nominate exactly 2 hidden cards, got %d", call.Type, len(call.Cards))
	}
	for _, c := range call.Cards {
		if !containsCard(s.Hands[call.Caller], c) {
			return invalid("hidden card %s is not in hand", c)
		}
	}
	if _, ok := s.ActiveCall(); ok {
		return invalid("a thunee-family call is already active")
	}
	return valid()
}

// ValidateJodi checks a Jodi call: the caller must currently hold every
// nominated card, and the combination must be exactly King+Queen of one
// suit (two cards) or Jack+Queen+King of one suit (three cards). With
// EnableFirstThirdOnlyJodiCalls the call is only legal immediately after
// trick 1 or trick 3 completes.
func ValidateJodi(s *RoundState, cfg GameConfig, call Call) Verdict {
	if !cfg.EnableJodi {
		return invalid("jodi calls are disabled")
	}
	if s.Phase != PhasePlaying {
		return invalid("jodi can only be called during play, not %s", s.Phase)
	}
	if cfg.EnableFirstThirdOnlyJodiCalls {
		done := len(s.CompletedTricks)
		if done != 1 && done != 3 {
			return invalid("jodi is only legal right after trick 1 or trick 3, %d tricks are complete", done)
		}
	}
	for _, c := range call.Cards {
		if !containsCard(s.Hands[call.Caller], c) {
			return invalid("jodi card %s is not in hand", c)
		}
	}
	if !isJodiCombination(call.Cards) {
		return invalid("jodi must be K+Q or J+Q+K of a single suit")
	}
	return valid()
}

// isJodiCombination reports whether the cards form a valid Jodi:
// same-suit {K,Q} or same-suit {J,Q,K}.
func isJodiCombination(cards []Card) bool {
	if len(cards) != 2 && len(cards) != 3 {
		return false
	}
	suit := cards[0].Suit()
	var haveJ, haveQ, haveK bool
	for _, c := range cards {
		if c.Suit() != suit {
			return false
		}
		switch c.Rank() {
		case RankJack:
			haveJ = true
		case RankQueen:
			haveQ = true
		case RankKing:
			haveK = true
		default:
			return false
		}
	}
	if len(cards) == 2 {
		return haveK && haveQ
	}
	return haveJ && haveQ && haveK
}

// ValidateDouble checks a Double call: enabled, and exactly five tricks
// complete (the call rides on the final trick).
func ValidateDouble(s *RoundState, cfg GameConfig, call Call) Verdict {
	if !cfg.EnableDouble {
		return invalid("double calls are disabled")
	}
	return validateLastTrickCall(s, call)
}

// ValidateKunuck checks a Kunuck call under the same timing window as
// Double.
func ValidateKunuck(s *RoundState, cfg GameConfig, call Call) Verdict {
	if !cfg.EnableKunuck {
		return invalid("kunuck calls are disabled")
	}
	return validateLastTrickCall(s, call)
}

func validateLastTrickCall(s *RoundState, call Call) Verdict {
	if s.Phase != PhasePlaying {
		return invalid("%s can only be called during play, not %s", call.Type, s.Phase)
	}
	if len(s.CompletedTricks) != 5 {
		return invalid("%s is only legal before the final trick, %d tricks are complete", call.Type, len(s.CompletedTricks))
	}
	if s.HasCalled(call.Caller, call.Type) {
		return invalid("%s already called this round", call.Type)
	}
	return valid()
}

// ValidateCall dispatches to the validator for the call's category.
// Bid and Pass travel through MakeBid/PassBid instead and are rejected.
func ValidateCall(s *RoundState, cfg GameConfig, call Call) Verdict {
	switch call.Type {
	case CallThunee, CallRoyals:
		return ValidateThunee(s, cfg, call)
	case CallBlindThunee, CallBlindRoyals:
		return ValidateBlind(s, cfg, call)
	case CallJodi:
		return ValidateJodi(s, cfg, call)
	case CallDouble:
		return ValidateDouble(s, cfg, call)
	case CallKunuck:
		return ValidateKunuck(s, cfg, call)
	case CallBid, CallPass:
		return invalid("%s is not a special call; use MakeBid or PassBid", call.Type)
	}
	return invalid("unknown call type %d", call.Type)
}
