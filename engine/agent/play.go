package agent

import (
	"fmt"

	engine "github.com/JustABard/thunee/engine"
)

// randomPlayChance is the probability of an intentionally imperfect play.
// Bots that never misplay are trivial to read at the table.
const randomPlayChance = 0.12

// highValueTrickPoints is the pot size from which cutting a trick is
// worth spending a trump.
const highValueTrickPoints = 20

// CardSelector is the bot card-play model: a strict priority cascade of
// leading and following rules, evaluated against a GameTracker rebuilt
// from public information only.
type CardSelector struct {
	cfg engine.GameConfig
	rng engine.RNG
}

// NewCardSelector returns a selector using the injected RNG for its
// imperfection rolls.
func NewCardSelector(cfg engine.GameConfig, rng engine.RNG) *CardSelector {
	return &CardSelector{cfg: cfg, rng: rng}
}

// SelectCard picks the card the seat should play to the current trick.
// It never returns an illegal card. An empty legal set means the caller
// drove the round wrong and comes back as an error, never a card.
func (cs *CardSelector) SelectCard(s *engine.RoundState, seat engine.Seat) (engine.Card, error) {
	legal := s.LegalCards(seat)
	if len(legal) == 0 {
		return engine.EmptyCard, fmt.Errorf("agent: seat %s has no legal card in phase %s", seat, s.Phase)
	}
	if len(legal) == 1 {
		return legal[0], nil
	}

	trump, hasTrump := s.EffectiveTrump()
	royals := s.RoyalsMode()
	t := NewGameTracker(trump, hasTrump, royals)
	t.Rebuild(s.CompletedTricks, &s.CurrentTrick)

	if s.CurrentTrick.Size == 0 {
		return cs.selectLead(s, seat, legal, t), nil
	}
	return cs.selectFollow(s, seat, legal, t), nil
}

// ---------------------------------------------------------------------------
// Leading
// ---------------------------------------------------------------------------

func (cs *CardSelector) selectLead(s *engine.RoundState, seat engine.Seat, legal []engine.Card, t *GameTracker) engine.Card {
	trump, hasTrump := s.EffectiveTrump()
	royals := s.RoyalsMode()
	done := len(s.CompletedTricks)
	_, hasActive := s.ActiveCall()

	// Occasional random lead, suppressed once every trick matters.
	if !hasActive && done < 4 && cs.rng.Float64() < randomPlayChance {
		return legal[cs.rng.IntN(len(legal))]
	}

	if hasActive {
		return cs.leadUnderActiveCall(s, seat, legal, t)
	}

	// Holding a marriage on trick one or three: win the trick outright
	// so the Jodi window that follows it can be used.
	if cs.cfg.EnableJodi && (done == 0 || done == 2) && !s.HasCalled(seat, engine.CallJodi) {
		if _, ok := marriageSuit(legal); ok {
			return strongestCard(legal, royals)
		}
	}

	// A non-trump Jack is unbeatable in suit; from the shortest holding
	// it also empties that suit fastest. A Nine whose Jack is gone is
	// just as good.
	if c, ok := cs.sureSuitWinner(legal, t, trump, hasTrump); ok {
		return c
	}

	// Flush opposing trumps with the trump Jack, unless the only trumps
	// left out sit with the partner.
	if hasTrump {
		jack := engine.NewCard(trump, engine.RankJack)
		if containsCard(legal, jack) &&
			t.OpponentsMayHoldTrump(seat, s.Hands[seat]) &&
			!t.OnlyTeammateHoldsTrump(seat, s.Hands[seat]) {
			return jack
		}
	}

	// Bait: an ace or nine from a suit whose jack is also in hand. The
	// jack guards the suit, so the side card probes without real risk.
	bait := engine.EmptyCard
	for _, c := range legal {
		if c.Rank() != engine.RankAce && c.Rank() != engine.RankNine {
			continue
		}
		if !containsRankOfSuit(legal, c.Suit(), engine.RankJack) {
			continue
		}
		if bait == engine.EmptyCard || (c.Rank() == engine.RankAce && bait.Rank() == engine.RankNine) {
			bait = c
		}
	}
	if bait != engine.EmptyCard {
		return bait
	}

	// Trick 5 holding the master trump plus one side card: lead the side
	// card now and the trump takes the last trick.
	if done == 4 && hasTrump && len(legal) == 2 {
		for i, c := range legal {
			other := legal[1-i]
			if c.Suit() == trump && t.IsHighestRemaining(c) && other.Suit() != trump {
				return other
			}
		}
	}
	if done == 5 {
		return strongestCard(legal, royals)
	}

	// Lead anything that is the strongest card left in its suit.
	for _, c := range legal {
		if t.IsHighestRemaining(c) {
			return c
		}
	}

	return weakestCard(legal, royals)
}

// leadUnderActiveCall handles leads while a Thunee-family call is live:
// the caller presses the attack, the caller's partner ducks, and the
// opponents hunt for the one trick that breaks the call.
func (cs *CardSelector) leadUnderActiveCall(s *engine.RoundState, seat engine.Seat, legal []engine.Card, t *GameTracker) engine.Card {
	call, _ := s.ActiveCall()
	royals := s.RoyalsMode()

	switch {
	case call.Caller == seat:
		for _, c := range legal {
			if t.IsHighestRemaining(c) {
				return c
			}
		}
		return strongestCard(legal, royals)
	case call.Caller == seat.Partner():
		// Shed the top of the standard order under the caller's control.
		// Under royals that same card is the weakest on the table, so
		// either way it can never steal a later trick.
		return strongestCard(legal, false)
	default:
		for _, c := range legal {
			if t.IsHighestRemaining(c) {
				return c
			}
		}
		return strongestCard(legal, royals)
	}
}

// sureSuitWinner finds a lead that cannot be beaten in its own suit: a
// non-trump Jack (shortest suit first), or a Nine whose Jack has been
// played.
func (cs *CardSelector) sureSuitWinner(legal []engine.Card, t *GameTracker, trump uint8, hasTrump bool) (engine.Card, bool) {
	best := engine.EmptyCard
	bestLen := engine.DeckSize
	for _, c := range legal {
		if c.Rank() != engine.RankJack {
			continue
		}
		if hasTrump && c.Suit() == trump {
			continue
		}
		if n := suitLen(legal, c.Suit()); n < bestLen {
			best, bestLen = c, n
		}
	}
	if best != engine.EmptyCard {
		return best, true
	}
	for _, c := range legal {
		if c.Rank() != engine.RankNine {
			continue
		}
		if hasTrump && c.Suit() == trump {
			continue
		}
		if t.IsPlayed(engine.NewCard(c.Suit(), engine.RankJack)) {
			return c, true
		}
	}
	return engine.EmptyCard, false
}

// ---------------------------------------------------------------------------
// Following
// ---------------------------------------------------------------------------

func (cs *CardSelector) selectFollow(s *engine.RoundState, seat engine.Seat, legal []engine.Card, t *GameTracker) engine.Card {
	trump, hasTrump := s.EffectiveTrump()
	royals := s.RoyalsMode()
	trick := &s.CurrentTrick
	done := len(s.CompletedTricks)
	call, hasActive := s.ActiveCall()

	if !hasActive && done < 4 && cs.rng.Float64() < randomPlayChance {
		return legal[cs.rng.IntN(len(legal))]
	}

	if hasActive {
		return cs.followUnderActiveCall(call, seat, legal, trick, trump, hasTrump, royals)
	}

	winningSeat, _ := engine.CurrentWinningSeat(trick, trump, hasTrump, royals)

	// Void in the lead suit: decide whether a cut is worth a trump.
	if hasTrump && trick.HasLead && trick.LeadSuit != trump && !hasSuit(legal, trick.LeadSuit) && hasSuit(legal, trump) {
		if c, ok := cs.considerCut(seat, legal, trick, t, trump, royals, done, winningSeat); ok {
			return c
		}
		// Declining the cut: shed anything but a trump when possible.
		if nonTrump := cardsOutsideSuit(legal, trump); len(nonTrump) > 0 {
			return cs.dump(nonTrump, t, royals)
		}
		return cs.dump(legal, t, royals)
	}

	if winningSeat == seat.Partner() {
		return cs.feedPartner(legal, t, royals)
	}
	if c, ok := weakestWinner(legal, trick, trump, hasTrump, royals); ok {
		return c
	}
	return cs.dump(legal, t, royals)
}

// followUnderActiveCall mirrors leadUnderActiveCall for non-lead seats.
func (cs *CardSelector) followUnderActiveCall(call engine.Call, seat engine.Seat, legal []engine.Card, trick *engine.Trick, trump uint8, hasTrump, royals bool) engine.Card {
	switch {
	case call.Caller == seat:
		if c, ok := weakestWinner(legal, trick, trump, hasTrump, royals); ok {
			return c
		}
		return strongestCard(legal, royals)
	case call.Caller == seat.Partner():
		if c, ok := weakestLoser(legal, trick, trump, hasTrump, royals); ok {
			return c
		}
		// Every card wins: the catch is forced.
		return weakestCard(legal, royals)
	default:
		if c, ok := weakestWinner(legal, trick, trump, hasTrump, royals); ok {
			return c
		}
		return weakestCard(legal, royals)
	}
}

// considerCut decides whether a void seat should spend a trump. Never
// cut over a winning partner, never cut into a higher trump already in
// the trick, and only cut when the pot justifies it.
func (cs *CardSelector) considerCut(seat engine.Seat, legal []engine.Card, trick *engine.Trick, t *GameTracker, trump uint8, royals bool, done int, winningSeat engine.Seat) (engine.Card, bool) {
	if winningSeat == seat.Partner() {
		return engine.EmptyCard, false
	}
	winning, _ := engine.CurrentWinningCard(trick, trump, true, royals)
	if winning.Suit() == trump {
		beatable := false
		for _, c := range legal {
			if c.Suit() == trump && engine.Strength(c.Rank(), royals) > engine.Strength(winning.Rank(), royals) {
				beatable = true
				break
			}
		}
		if !beatable {
			return engine.EmptyCard, false
		}
	}
	if trick.Points() < highValueTrickPoints && done < 4 {
		return engine.EmptyCard, false
	}
	if c, ok := weakestWinner(legal, trick, trump, true, royals); ok && c.Suit() == trump {
		return c, true
	}
	return engine.EmptyCard, false
}

// feedPartner throws the highest point value onto the partner's winning
// trick, but never a card that is the last winner of its suit unless a
// backup winner stays behind in hand.
func (cs *CardSelector) feedPartner(legal []engine.Card, t *GameTracker, royals bool) engine.Card {
	sorted := append([]engine.Card(nil), legal...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Points() > sorted[j-1].Points(); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	for _, c := range sorted {
		if t.IsHighestRemaining(c) && !hasBackupWinner(legal, t, c) {
			continue
		}
		return c
	}
	return sorted[0]
}

// dump sheds the least valuable card: fewest points, then weakest, and
// never a sole remaining suit winner when an alternative exists.
func (cs *CardSelector) dump(legal []engine.Card, t *GameTracker, royals bool) engine.Card {
	best := engine.EmptyCard
	for _, c := range legal {
		if t.IsHighestRemaining(c) && !hasBackupWinner(legal, t, c) {
			continue
		}
		if best == engine.EmptyCard || cheaperCard(c, best, royals) {
			best = c
		}
	}
	if best != engine.EmptyCard {
		return best
	}
	return weakestCard(legal, royals)
}

// hasBackupWinner reports whether the hand retains another card of the
// same suit that becomes the suit's top card once c is gone.
func hasBackupWinner(hand []engine.Card, t *GameTracker, c engine.Card) bool {
	remaining := t.RemainingInSuit(c.Suit())
	for _, r := range remaining {
		if r == c {
			continue
		}
		return containsCard(hand, r)
	}
	return false
}

// ---------------------------------------------------------------------------
// Card ordering helpers
// ---------------------------------------------------------------------------

func cheaperCard(a, b engine.Card, royals bool) bool {
	if a.Points() != b.Points() {
		return a.Points() < b.Points()
	}
	return engine.Strength(a.Rank(), royals) < engine.Strength(b.Rank(), royals)
}

func weakestCard(cards []engine.Card, royals bool) engine.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if cheaperCard(c, best, royals) {
			best = c
		}
	}
	return best
}

func strongestCard(cards []engine.Card, royals bool) engine.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if cheaperCard(best, c, royals) {
			best = c
		}
	}
	return best
}

// weakestWinner returns the cheapest card that would take the trick as
// it stands.
func weakestWinner(cards []engine.Card, trick *engine.Trick, trump uint8, hasTrump, royals bool) (engine.Card, bool) {
	best := engine.EmptyCard
	for _, c := range cards {
		if !engine.WillCardWin(c, trick, trump, hasTrump, royals) {
			continue
		}
		if best == engine.EmptyCard || cheaperCard(c, best, royals) {
			best = c
		}
	}
	return best, best != engine.EmptyCard
}

// weakestLoser returns the cheapest card that would NOT take the trick.
func weakestLoser(cards []engine.Card, trick *engine.Trick, trump uint8, hasTrump, royals bool) (engine.Card, bool) {
	best := engine.EmptyCard
	for _, c := range cards {
		if engine.WillCardWin(c, trick, trump, hasTrump, royals) {
			continue
		}
		if best == engine.EmptyCard || cheaperCard(c, best, royals) {
			best = c
		}
	}
	return best, best != engine.EmptyCard
}

func cardsOutsideSuit(cards []engine.Card, suit uint8) []engine.Card {
	out := make([]engine.Card, 0, len(cards))
	for _, c := range cards {
		if c.Suit() != suit {
			out = append(out, c)
		}
	}
	return out
}

func containsCard(cards []engine.Card, card engine.Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

func hasSuit(cards []engine.Card, suit uint8) bool {
	return suitLen(cards, suit) > 0
}
