// Package sim drives full bot-vs-bot Thunee matches through the engine's
// transition functions. It is the reference orchestrator: every action a
// networked table would submit travels through the same engine calls.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/JustABard/thunee/engine"
	"github.com/JustABard/thunee/engine/agent"
)

// maxActionsPerMatch caps the transition count so a misbehaving bot or a
// rules regression surfaces as an error instead of a hang.
const maxActionsPerMatch = 20000

// Runner plays complete matches with four bots sharing one seeded RNG.
type Runner struct {
	cfg    engine.GameConfig
	seed   uint64
	rng    engine.RNG
	scorer *engine.ScoringEngine
	bots   [engine.NumSeats]*agent.Bot
	log    *logrus.Entry
}

// Result summarizes one finished match.
type Result struct {
	MatchID     uuid.UUID
	Seed        uint64
	Rounds      int
	Redeals     int
	WinningTeam int
	Balls       [2]int
	Points      [2]int
	Target      int
	Duration    time.Duration

	// RoundBreakdowns holds the scoring breakdown of every completed
	// round in play order.
	RoundBreakdowns []engine.ScoringBreakdown
}

// NewRunner builds a runner for the config and seed. All shuffles and
// every bot roll draw from the same xorshift stream, so a seed pins the
// whole match.
func NewRunner(cfg engine.GameConfig, seed uint64, logger *logrus.Logger) *Runner {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	rng := engine.NewXorshift(seed)
	r := &Runner{
		cfg:    cfg,
		seed:   seed,
		rng:    rng,
		scorer: engine.NewScoringEngine(cfg),
		log:    logger.WithField("seed", seed),
	}
	for seat := engine.Seat(0); seat < engine.NumSeats; seat++ {
		r.bots[seat] = agent.NewBot(seat, cfg, rng)
	}
	return r
}

// WithKunuckStrategy swaps the scoring engine's Kunuck rule.
func (r *Runner) WithKunuckStrategy(strat engine.KunuckStrategy) *Runner {
	r.scorer = r.scorer.WithKunuckStrategy(strat)
	return r
}

// RunMatch plays one match to completion.
func (r *Runner) RunMatch(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{MatchID: uuid.New(), Seed: r.seed}

	m := engine.NewMatch(r.cfg, botRoster())
	actions := 0

	for !m.Complete {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, v := engine.StartNewRound(m, r.rng)
		if !v.OK {
			return nil, fmt.Errorf("sim: start round: %s", v.Err)
		}
		m = next

		var err error
		m, err = r.playRound(ctx, m, res, &actions)
		if err != nil {
			return nil, err
		}
	}

	res.Rounds = len(m.CompletedRounds)
	res.RoundBreakdowns = make([]engine.ScoringBreakdown, len(m.CompletedRounds))
	for i := range m.CompletedRounds {
		res.RoundBreakdowns[i] = m.CompletedRounds[i].Breakdown
	}
	res.WinningTeam = m.WinningTeam
	res.Target = m.Target
	for team := 0; team < 2; team++ {
		res.Balls[team] = m.Teams[team].Balls
		res.Points[team] = m.Teams[team].Points
	}
	res.Duration = time.Since(start)

	r.log.WithFields(logrus.Fields{
		"match":   res.MatchID,
		"rounds":  res.Rounds,
		"redeals": res.Redeals,
		"winner":  res.WinningTeam,
		"balls":   fmt.Sprintf("%d-%d", res.Balls[0], res.Balls[1]),
	}).Info("match complete")
	return res, nil
}

// playRound drives one round from the deal to its fold into the match.
func (r *Runner) playRound(ctx context.Context, m *engine.MatchState, res *Result, actions *int) (*engine.MatchState, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		*actions++
		if *actions > maxActionsPerMatch {
			return nil, fmt.Errorf("sim: match exceeded %d actions in phase %s", maxActionsPerMatch, m.Round.Phase)
		}

		s := m.Round
		switch s.Phase {
		case engine.PhaseDealing:
			r.offerCalls(m)
			next, v := engine.FinishDeal(m.Round)
			if !v.OK {
				return nil, fmt.Errorf("sim: finish deal: %s", v.Err)
			}
			m.Round = next

		case engine.PhaseBidding:
			if err := r.applyTurnDecision(m); err != nil {
				return nil, err
			}

		case engine.PhaseChoosingTrump:
			if s.AllPassed {
				next, v := engine.Redeal(m, r.rng)
				if !v.OK {
					return nil, fmt.Errorf("sim: redeal: %s", v.Err)
				}
				res.Redeals++
				r.log.WithField("dealer", next.Round.Dealer).Debug("all passed, redealing")
				m = next
				continue
			}
			if err := r.applyTurnDecision(m); err != nil {
				return nil, err
			}

		case engine.PhasePlaying:
			r.offerCalls(m)
			if err := r.applyTurnDecision(m); err != nil {
				return nil, err
			}

		case engine.PhaseScoring:
			next, br, err := engine.ScoreRound(m, r.scorer)
			if err != nil {
				return nil, fmt.Errorf("sim: score round: %w", err)
			}
			r.log.WithFields(logrus.Fields{
				"round":  len(next.CompletedRounds),
				"points": fmt.Sprintf("%d-%d", br.TeamPoints[0], br.TeamPoints[1]),
				"balls":  fmt.Sprintf("%d-%d", br.Balls[0], br.Balls[1]),
			}).Debug("round scored")
			return next, nil

		default:
			return nil, fmt.Errorf("sim: unexpected phase %s", s.Phase)
		}
	}
}

// offerCalls gives every seat one shot at the currently open special-call
// window. An engine rejection is a bot bug worth logging, never fatal.
func (r *Runner) offerCalls(m *engine.MatchState) {
	for seat := engine.Seat(0); seat < engine.NumSeats; seat++ {
		dec, ok := r.bots[seat].ConsiderCall(m.Round)
		if !ok {
			continue
		}
		next, v := engine.MakeSpecialCall(m.Round, r.cfg, dec.Call)
		if !v.OK {
			r.log.WithFields(logrus.Fields{
				"seat": seat,
				"call": dec.Call.Type,
			}).Warnf("special call rejected: %s", v.Err)
			continue
		}
		r.log.WithFields(logrus.Fields{
			"seat": seat,
			"call": dec.Call.Type,
		}).Debug("special call made")
		m.Round = next
	}
}

// applyTurnDecision asks the seat on turn for its action and applies it.
func (r *Runner) applyTurnDecision(m *engine.MatchState) error {
	s := m.Round
	seat := s.CurrentTurn
	dec, err := r.bots[seat].Decide(s)
	if err != nil {
		return fmt.Errorf("sim: seat %s: %w", seat, err)
	}

	var next *engine.RoundState
	var v engine.Verdict
	switch dec.Type {
	case agent.DecisionMakeBid:
		next, v = engine.MakeBid(s, r.cfg, seat, dec.Amount)
	case agent.DecisionPassBid:
		next, v = engine.PassBid(s, r.cfg, seat)
	case agent.DecisionSelectTrump:
		next, v = engine.SelectTrump(s, seat, dec.Trump)
	case agent.DecisionPlayCard:
		next, v = engine.PlayCard(s, r.cfg, seat, dec.Card)
	case agent.DecisionMakeSpecialCall:
		next, v = engine.MakeSpecialCall(s, r.cfg, dec.Call)
	default:
		return fmt.Errorf("sim: seat %s produced unknown decision %s", seat, dec.Type)
	}
	if !v.OK {
		return fmt.Errorf("sim: seat %s %s rejected: %s", seat, dec.Type, v.Err)
	}
	m.Round = next
	return nil
}

func botRoster() [engine.NumSeats]engine.Player {
	var roster [engine.NumSeats]engine.Player
	for i := range roster {
		seat := engine.Seat(i)
		roster[i] = engine.Player{Seat: seat, Name: fmt.Sprintf("bot-%s", seat), IsBot: true}
	}
	return roster
}
