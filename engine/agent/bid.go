package agent

import (
	engine "github.com/JustABard/thunee/engine"
)

// CallDecisionMaker is the bot bidding model: structural qualifiers gate
// which bid levels a hand may attempt at all, then a continuous Hand
// Control Confidence score in [0,1] picks the level against per-level
// thresholds.
type CallDecisionMaker struct {
	cfg engine.GameConfig
	rng engine.RNG
}

// NewCallDecisionMaker returns a decision maker using the injected RNG
// for its noise and damping rolls.
func NewCallDecisionMaker(cfg engine.GameConfig, rng engine.RNG) *CallDecisionMaker {
	return &CallDecisionMaker{cfg: cfg, rng: rng}
}

// ---------------------------------------------------------------------------
// Stage 1 — structural qualifiers
// ---------------------------------------------------------------------------

// structuralMaxLevel returns the highest bid level (10/20/30) the hand's
// shape qualifies for, or 0 when the hand must pass. Level 10 needs a
// Jack with a same-suit companion, a same-suit King+Queen, or any
// three-card suit; higher levels need progressively stronger
// concentrations around a Jack.
func structuralMaxLevel(hand []engine.Card) int {
	jacks := countRank(hand, engine.RankJack)
	longest := longestSuitLen(hand)
	bestJackSupport := 0
	for _, c := range hand {
		if c.Rank() != engine.RankJack {
			continue
		}
		if n := suitLen(hand, c.Suit()) - 1; n > bestJackSupport {
			bestJackSupport = n
		}
	}
	_, hasKQ := marriageSuit(hand)

	level := 0
	if bestJackSupport >= 1 || hasKQ || longest >= 3 {
		level = 10
	}
	if jacks >= 2 || bestJackSupport >= 2 {
		level = 20
	}
	if bestJackSupport >= 3 || (jacks >= 2 && bestJackSupport >= 2) {
		level = 30
	}
	return level
}

// ---------------------------------------------------------------------------
// Stage 2 — Hand Control Confidence
// ---------------------------------------------------------------------------

// cardPower is each rank's contribution to hand control. Jacks dominate
// because they are unbeatable in suit under standard ranking.
var cardPower = [engine.NumRanks]float64{
	engine.RankJack:  0.18,
	engine.RankNine:  0.12,
	engine.RankAce:   0.07,
	engine.RankTen:   0.05,
	engine.RankKing:  0.03,
	engine.RankQueen: 0.02,
}

// HandControlConfidence scores the hand in [0,1]: summed per-card power,
// a concentration bonus for the largest single-suit holding, a
// suit-coverage adjustment, a marriage bonus, and ±0.05 symmetric noise.
func (d *CallDecisionMaker) HandControlConfidence(hand []engine.Card) float64 {
	score := 0.0
	for _, c := range hand {
		score += cardPower[c.Rank()]
	}
	score += float64(longestSuitLen(hand)-1) * 0.04

	switch suitsHeld(hand) {
	case 1, 2:
		score += 0.04
	case 4:
		score -= 0.04
	}

	if suit, ok := marriageSuit(hand); ok {
		score += 0.05
		if containsRankOfSuit(hand, suit, engine.RankJack) {
			score += 0.04
		}
	}

	score += (d.rng.Float64() - 0.5) * 0.10

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// threshold returns the HCC bar for bidding the given amount. Levels
// beyond 30 keep climbing so bidding wars die out. Under Call-and-Loss a
// failed defense costs more, so every bar is stricter.
func (d *CallDecisionMaker) threshold(amount int) float64 {
	var base float64
	switch {
	case amount <= 10:
		base = 0.30
	case amount <= 20:
		base = 0.48
	case amount <= 30:
		base = 0.66
	default:
		base = 0.66 + 0.08*float64((amount-30)/10)
	}
	if d.cfg.EnableCallAndLoss {
		base += 0.08
	}
	return base
}

// escalationDamping is the probability that a two-step overbid is capped
// at the minimum overbid instead.
const escalationDamping = 0.7

// DecideBid returns the bot's bidding action for the seat: an opening
// bid, an overbid, or a pass.
func (d *CallDecisionMaker) DecideBid(s *engine.RoundState, seat engine.Seat) Decision {
	hand := s.Hands[seat]
	maxLevel := structuralMaxLevel(hand)
	if maxLevel == 0 {
		return passBid()
	}

	// A seat never raises its own standing bid, and never its partner's
	// unless the table allows calling over teammates.
	if s.HasBidWinner {
		if s.BidWinner == seat {
			return passBid()
		}
		if s.BidWinner == seat.Partner() && !d.cfg.EnableCallOverTeammates {
			return passBid()
		}
	}

	hcc := d.HandControlConfidence(hand)

	if !s.HasBidWinner {
		// Opening: highest qualifying level whose threshold the score
		// clears, capped at the structural maximum.
		level := 0
		for _, amt := range [3]int{10, 20, 30} {
			if amt <= maxLevel && hcc >= d.threshold(amt) {
				level = amt
			}
		}
		if level == 0 {
			return passBid()
		}
		return makeBid(level)
	}

	// Response: overbid by 10, by 20 with damping, or pass.
	minOver := s.HighestBid + 10
	bigOver := s.HighestBid + 20
	switch {
	case hcc >= d.threshold(bigOver):
		if d.rng.Float64() < escalationDamping {
			return makeBid(minOver)
		}
		return makeBid(bigOver)
	case hcc >= d.threshold(minOver):
		return makeBid(minOver)
	default:
		return passBid()
	}
}

// DecideTrump picks the trump suit for a bot trump maker: the longest
// suit, breaking ties by total card power.
func (d *CallDecisionMaker) DecideTrump(hand []engine.Card) uint8 {
	best := uint8(0)
	bestLen, bestPower := -1, -1.0
	for suit := uint8(0); suit < engine.NumSuits; suit++ {
		n := suitLen(hand, suit)
		power := 0.0
		for _, c := range hand {
			if c.Suit() == suit {
				power += cardPower[c.Rank()]
			}
		}
		if n > bestLen || (n == bestLen && power > bestPower) {
			best, bestLen, bestPower = suit, n, power
		}
	}
	return best
}

// ---------------------------------------------------------------------------
// Special-call decisions
// ---------------------------------------------------------------------------

// DecideSpecialCall returns a special call the bot wants to make in the
// current window, if any. The windows are: blind calls during dealing,
// Thunee/Royals before the first trick, Jodi right after tricks 1 and 3,
// and Double/Kunuck before the last trick.
func (d *CallDecisionMaker) DecideSpecialCall(s *engine.RoundState, seat engine.Seat) (Decision, bool) {
	hand := s.Hands[seat]

	switch s.Phase {
	case engine.PhaseDealing:
		return d.decideBlindCall(s, seat, hand)

	case engine.PhasePlaying:
		if _, active := s.ActiveCall(); active {
			return Decision{}, false
		}
		done := len(s.CompletedTricks)
		if done == 0 && len(hand) == 6 && s.CurrentTrick.Size == 0 {
			if dec, ok := d.decideThuneeCall(seat, hand); ok {
				return dec, true
			}
		}
		if d.cfg.EnableJodi && !s.HasCalled(seat, engine.CallJodi) {
			inWindow := !d.cfg.EnableFirstThirdOnlyJodiCalls || done == 1 || done == 3
			if inWindow && done > 0 {
				if dec, ok := d.decideJodiCall(s, seat, hand); ok {
					return dec, true
				}
			}
		}
		if done == 5 {
			if dec, ok := d.decideLastTrickCall(s, seat, hand); ok {
				return dec, true
			}
		}
	}
	return Decision{}, false
}

// decideBlindCall considers BlindThunee on the four-card packet: two
// Jacks plus a three-card suit is a hand worth gambling on. BlindRoyals
// mirrors it around Queens.
func (d *CallDecisionMaker) decideBlindCall(s *engine.RoundState, seat engine.Seat, hand []engine.Card) (Decision, bool) {
	if len(hand) != 4 {
		return Decision{}, false
	}
	if _, active := s.ActiveCall(); active {
		return Decision{}, false
	}
	if d.cfg.EnableBlindThunee && countRank(hand, engine.RankJack) >= 2 && longestSuitLen(hand) >= 3 {
		trump := d.DecideTrump(hand)
		return specialCall(engine.Call{
			Type: engine.CallBlindThunee, Caller: seat,
			Trump: trump, HasTrump: true,
			Cards: weakestCards(hand, 2, false),
		}), true
	}
	if d.cfg.EnableBlindRoyals && countRank(hand, engine.RankQueen) >= 2 && countRank(hand, engine.RankKing) >= 1 && longestSuitLen(hand) >= 3 {
		trump := d.DecideTrump(hand)
		return specialCall(engine.Call{
			Type: engine.CallBlindRoyals, Caller: seat,
			Trump: trump, HasTrump: true,
			Cards: weakestCards(hand, 2, true),
		}), true
	}
	return Decision{}, false
}

// decideThuneeCall opens Thunee on a hand that can realistically run all
// six tricks: Jack+Nine in a long suit with a second Jack in reserve.
// Royals needs the mirrored strength in Queens and Kings.
func (d *CallDecisionMaker) decideThuneeCall(seat engine.Seat, hand []engine.Card) (Decision, bool) {
	for suit := uint8(0); suit < engine.NumSuits; suit++ {
		if suitLen(hand, suit) >= 4 &&
			containsRankOfSuit(hand, suit, engine.RankJack) &&
			containsRankOfSuit(hand, suit, engine.RankNine) &&
			countRank(hand, engine.RankJack) >= 2 {
			return specialCall(engine.Call{
				Type: engine.CallThunee, Caller: seat,
				Trump: suit, HasTrump: true,
			}), true
		}
	}
	if d.cfg.EnableRoyals {
		for suit := uint8(0); suit < engine.NumSuits; suit++ {
			if suitLen(hand, suit) >= 4 &&
				containsRankOfSuit(hand, suit, engine.RankQueen) &&
				containsRankOfSuit(hand, suit, engine.RankKing) &&
				countRank(hand, engine.RankQueen) >= 3 {
				return specialCall(engine.Call{
					Type: engine.CallRoyals, Caller: seat,
					Trump: suit, HasTrump: true,
				}), true
			}
		}
	}
	return Decision{}, false
}

// decideJodiCall announces the strongest held Jodi combination.
func (d *CallDecisionMaker) decideJodiCall(s *engine.RoundState, seat engine.Seat, hand []engine.Card) (Decision, bool) {
	suit, ok := marriageSuit(hand)
	if !ok {
		return Decision{}, false
	}
	cards := []engine.Card{
		engine.NewCard(suit, engine.RankKing),
		engine.NewCard(suit, engine.RankQueen),
	}
	if containsRankOfSuit(hand, suit, engine.RankJack) {
		cards = append([]engine.Card{engine.NewCard(suit, engine.RankJack)}, cards...)
	}
	return specialCall(engine.Call{Type: engine.CallJodi, Caller: seat, Cards: cards}), true
}

// decideLastTrickCall weighs Double/Kunuck when the bot's remaining card
// is a guaranteed winner of the final trick.
func (d *CallDecisionMaker) decideLastTrickCall(s *engine.RoundState, seat engine.Seat, hand []engine.Card) (Decision, bool) {
	if len(hand) != 1 {
		return Decision{}, false
	}
	trump, hasTrump := s.EffectiveTrump()
	t := NewGameTracker(trump, hasTrump, s.RoyalsMode())
	t.Rebuild(s.CompletedTricks, nil)

	card := hand[0]
	guaranteed := t.IsHighestRemaining(card) &&
		(!hasTrump || card.Suit() == trump || !t.OpponentsMayHoldTrump(seat, hand))
	if !guaranteed {
		return Decision{}, false
	}
	if d.cfg.EnableKunuck && !s.HasCalled(seat, engine.CallKunuck) {
		return specialCall(engine.Call{Type: engine.CallKunuck, Caller: seat}), true
	}
	if d.cfg.EnableDouble && !s.HasCalled(seat, engine.CallDouble) {
		return specialCall(engine.Call{Type: engine.CallDouble, Caller: seat}), true
	}
	return Decision{}, false
}

// ---------------------------------------------------------------------------
// Hand-shape helpers
// ---------------------------------------------------------------------------

func countRank(hand []engine.Card, rank uint8) int {
	n := 0
	for _, c := range hand {
		if c.Rank() == rank {
			n++
		}
	}
	return n
}

func suitLen(hand []engine.Card, suit uint8) int {
	n := 0
	for _, c := range hand {
		if c.Suit() == suit {
			n++
		}
	}
	return n
}

func longestSuitLen(hand []engine.Card) int {
	best := 0
	for suit := uint8(0); suit < engine.NumSuits; suit++ {
		if n := suitLen(hand, suit); n > best {
			best = n
		}
	}
	return best
}

func suitsHeld(hand []engine.Card) int {
	n := 0
	for suit := uint8(0); suit < engine.NumSuits; suit++ {
		if suitLen(hand, suit) > 0 {
			n++
		}
	}
	return n
}

func containsRankOfSuit(hand []engine.Card, suit, rank uint8) bool {
	for _, c := range hand {
		if c.Suit() == suit && c.Rank() == rank {
			return true
		}
	}
	return false
}

// marriageSuit returns a suit holding both King and Queen, if any.
func marriageSuit(hand []engine.Card) (uint8, bool) {
	for suit := uint8(0); suit < engine.NumSuits; suit++ {
		if containsRankOfSuit(hand, suit, engine.RankKing) && containsRankOfSuit(hand, suit, engine.RankQueen) {
			return suit, true
		}
	}
	return 0, false
}

// weakestCards returns the n weakest cards of the hand under the given
// ranking mode; used to pick blind-call hidden cards.
func weakestCards(hand []engine.Card, n int, royals bool) []engine.Card {
	sorted := append([]engine.Card(nil), hand...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && engine.Strength(sorted[j].Rank(), royals) < engine.Strength(sorted[j-1].Rank(), royals); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
