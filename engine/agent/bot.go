package agent

import (
	"fmt"

	engine "github.com/JustABard/thunee/engine"
)

// Bot binds the bidding and card-play models for a single seat. Two bots
// built with the same config and RNG state are indistinguishable, which
// is what makes seeded simulations reproducible.
type Bot struct {
	seat  engine.Seat
	bids  *CallDecisionMaker
	plays *CardSelector
}

// NewBot creates a bot for the seat. The RNG is shared across both
// models so a single seed drives every roll the bot makes.
func NewBot(seat engine.Seat, cfg engine.GameConfig, rng engine.RNG) *Bot {
	return &Bot{
		seat:  seat,
		bids:  NewCallDecisionMaker(cfg, rng),
		plays: NewCardSelector(cfg, rng),
	}
}

// Seat returns the seat the bot occupies.
func (b *Bot) Seat() engine.Seat { return b.seat }

// ConsiderCall surfaces a special call the bot wants to make in the
// current window, independent of whose turn it is. Blind calls, Jodi and
// the last-trick calls all happen outside the turn order.
func (b *Bot) ConsiderCall(s *engine.RoundState) (Decision, bool) {
	return b.bids.DecideSpecialCall(s, b.seat)
}

// Decide returns the bot's action for the round state. It assumes it is
// the bot's turn to act; special-call opportunities are surfaced ahead
// of the turn action when a call window is open.
func (b *Bot) Decide(s *engine.RoundState) (Decision, error) {
	if dec, ok := b.bids.DecideSpecialCall(s, b.seat); ok {
		return dec, nil
	}

	switch s.Phase {
	case engine.PhaseBidding:
		return b.bids.DecideBid(s, b.seat), nil
	case engine.PhaseChoosingTrump:
		return selectTrump(b.bids.DecideTrump(s.Hands[b.seat])), nil
	case engine.PhasePlaying:
		c, err := b.plays.SelectCard(s, b.seat)
		if err != nil {
			return Decision{}, err
		}
		return playCard(c), nil
	}
	return Decision{}, fmt.Errorf("agent: no decision for phase %s", s.Phase)
}
