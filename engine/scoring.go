package engine

import "fmt"

// Ball schedule. The counting threshold and last-trick bonus are fixed
// rules; the per-call ball values are house conventions.
const (
	CountingThreshold = 105
	LastTrickBonus    = 10

	thuneeSuccessBalls = 4
	thuneeFailureBalls = 4
	royalsSuccessBalls = 6
	royalsFailureBalls = 6

	partnerCatchBalls      = 8
	blindPartnerCatchBalls = 13 // absolute failure for blind variants

	doubleSuccessBalls = 1
	doubleFailureBalls = 2
	kunuckSuccessBalls = 2
	kunuckFailureBalls = 3

	// KunuckRaisedTarget is the effective match target after a successful
	// Kunuck.
	KunuckRaisedTarget = 13
)

// ScoringBreakdown reports the outcome of one round: per-team card points,
// balls awarded, and a human-readable rationale for each award.
type ScoringBreakdown struct {
	TeamPoints      [2]int
	TeamTricks      [2]int
	Balls           [2]int
	CountingTeam    int
	KunuckSucceeded bool
	Rationale       []string
}

func (b *ScoringBreakdown) note(format string, args ...any) {
	b.Rationale = append(b.Rationale, fmt.Sprintf(format, args...))
}

// KunuckStrategy decides whether a Kunuck call succeeded. The evaluation
// rule varies between tables, so it is pluggable rather than hardcoded.
type KunuckStrategy func(s *RoundState, caller Seat) bool

// KunuckLastTrickWinner is the default strategy: the caller's own seat
// must win the final trick.
func KunuckLastTrickWinner(s *RoundState, caller Seat) bool {
	if len(s.CompletedTricks) != 6 {
		return false
	}
	last := s.CompletedTricks[5]
	return last.Scored && last.Winner == caller
}

// KunuckPointsThreshold returns a strategy under which the caller's team
// must collect at least the given card-point total across the round.
func KunuckPointsThreshold(threshold int) KunuckStrategy {
	return func(s *RoundState, caller Seat) bool {
		pts := 0
		for i := range s.CompletedTricks {
			t := &s.CompletedTricks[i]
			if t.Scored && t.Winner.SameTeam(caller) {
				pts += t.Points()
			}
		}
		return pts >= threshold
	}
}

// ScoringEngine tallies a finished round into a ScoringBreakdown.
type ScoringEngine struct {
	cfg    GameConfig
	kunuck KunuckStrategy
}

// NewScoringEngine returns a scoring engine with the default Kunuck
// strategy.
func NewScoringEngine(cfg GameConfig) *ScoringEngine {
	return &ScoringEngine{cfg: cfg, kunuck: KunuckLastTrickWinner}
}

// WithKunuckStrategy replaces the Kunuck success rule.
func (e *ScoringEngine) WithKunuckStrategy(strat KunuckStrategy) *ScoringEngine {
	e.kunuck = strat
	return e
}

// Score computes the round's breakdown. Scoring a normal round with fewer
// than six completed tricks is an invariant violation and returns an
// error; a Thunee/Royals round may legitimately end early.
func (e *ScoringEngine) Score(s *RoundState) (*ScoringBreakdown, error) {
	br := &ScoringBreakdown{CountingTeam: s.CountingTeam()}
	for i := range s.CompletedTricks {
		t := &s.CompletedTricks[i]
		if t.Scored {
			br.TeamTricks[t.Winner.Team()]++
		}
	}

	if call, ok := s.ActiveCall(); ok {
		if err := e.scoreThuneeRound(s, call, br); err != nil {
			return nil, err
		}
	} else {
		if err := e.scoreNormalRound(s, br); err != nil {
			return nil, err
		}
	}

	e.applyLastTrickCalls(s, br)
	return br, nil
}

// scoreThuneeRound settles an active Thunee/Royals-family call. A partner
// catch (the caller's partner winning any trick) overrides every other
// outcome.
func (e *ScoringEngine) scoreThuneeRound(s *RoundState, call Call, br *ScoringBreakdown) error {
	caller := call.Caller
	var callerTricks, partnerTricks, oppTricks int
	for i := range s.CompletedTricks {
		t := &s.CompletedTricks[i]
		if !t.Scored {
			continue
		}
		switch {
		case t.Winner == caller:
			callerTricks++
		case t.Winner == caller.Partner():
			partnerTricks++
		default:
			oppTricks++
		}
	}
	decided := partnerTricks > 0 || oppTricks > 0 || callerTricks == 6
	if !decided {
		return fmt.Errorf("%s outcome not yet decided (%d caller tricks of %d complete)",
			call.Type, callerTricks, len(s.CompletedTricks))
	}

	callerTeam := caller.Team()
	oppTeam := 1 - callerTeam

	switch {
	case partnerTricks > 0:
		penalty := partnerCatchBalls
		if call.IsBlind() {
			penalty = blindPartnerCatchBalls
		}
		br.Balls[oppTeam] += penalty
		br.note("partner catch on %s: opponents awarded %d balls", call.Type, penalty)

	case callerTricks == 6:
		award := e.successBalls(call)
		br.Balls[callerTeam] += award
		br.note("%s succeeded: caller's team awarded %d balls", call.Type, award)

	default:
		penalty := e.failureBalls(call)
		br.Balls[oppTeam] += penalty
		br.note("%s failed: opponents awarded %d balls", call.Type, penalty)
	}
	return nil
}

func (e *ScoringEngine) successBalls(call Call) int {
	switch call.Type {
	case CallThunee:
		return thuneeSuccessBalls
	case CallRoyals:
		return royalsSuccessBalls
	case CallBlindThunee:
		if e.cfg.BlindThuneeSuccessBalls > 0 {
			return e.cfg.BlindThuneeSuccessBalls
		}
		return 8
	case CallBlindRoyals:
		if e.cfg.BlindRoyalsSuccessBalls > 0 {
			return e.cfg.BlindRoyalsSuccessBalls
		}
		return 8
	}
	return 0
}

// failureBalls mirrors successBalls: the opponents receive a positive
// penalty and the caller's team receives nothing.
func (e *ScoringEngine) failureBalls(call Call) int {
	switch call.Type {
	case CallThunee:
		return thuneeFailureBalls
	case CallRoyals:
		return royalsFailureBalls
	default:
		return e.successBalls(call)
	}
}

// scoreNormalRound settles a plain bidding round: trick points plus the
// last-trick bonus plus Jodi credits, with the counting team (the trump
// maker's opponents) compensated by the winning bid amount.
func (e *ScoringEngine) scoreNormalRound(s *RoundState, br *ScoringBreakdown) error {
	if len(s.CompletedTricks) != 6 {
		return fmt.Errorf("cannot score a normal round with %d of 6 tricks complete", len(s.CompletedTricks))
	}
	for i := range s.CompletedTricks {
		t := &s.CompletedTricks[i]
		br.TeamPoints[t.Winner.Team()] += t.Points()
	}
	lastWinner := s.CompletedTricks[5].Winner
	br.TeamPoints[lastWinner.Team()] += LastTrickBonus
	br.note("last trick bonus (+%d) to team %d", LastTrickBonus, lastWinner.Team())

	for _, call := range s.Calls {
		if call.Type != CallJodi {
			continue
		}
		pts := JodiPoints(len(call.Cards), call.IsTrump)
		br.TeamPoints[call.Caller.Team()] += pts
		br.note("jodi by %s (+%d) to team %d", call.Caller, pts, call.Caller.Team())
	}

	counting := br.CountingTeam
	making := 1 - counting
	countingTotal := br.TeamPoints[counting] + s.HighestBid
	if s.HighestBid > 0 {
		br.note("counting team %d compensated by winning bid (+%d)", counting, s.HighestBid)
	}

	if countingTotal >= CountingThreshold {
		award := 1
		if e.cfg.EnableCallAndLoss {
			award = e.cfg.callAndLossBalls()
		}
		br.Balls[counting] += award
		br.note("counting team %d reached %d (≥%d): awarded %d ball(s)", counting, countingTotal, CountingThreshold, award)
	} else {
		br.Balls[making]++
		br.note("counting team %d stuck on %d (<%d): trump makers awarded 1 ball", counting, countingTotal, CountingThreshold)
	}
	return nil
}

// JodiPoints returns the bonus for a Jodi combination: King+Queen is
// worth 20 (40 in trump), Jack+Queen+King 30 (50 in trump).
func JodiPoints(size int, isTrump bool) int {
	switch {
	case size == 2 && isTrump:
		return 40
	case size == 2:
		return 20
	case size == 3 && isTrump:
		return 50
	case size == 3:
		return 30
	}
	return 0
}

// applyLastTrickCalls applies Double and Kunuck ball deltas on top of the
// base result. Both are judged on the final trick, so a round that ended
// before trick six leaves them unresolved and unscored.
func (e *ScoringEngine) applyLastTrickCalls(s *RoundState, br *ScoringBreakdown) {
	if len(s.CompletedTricks) != 6 {
		return
	}
	last := &s.CompletedTricks[5]
	for _, call := range s.Calls {
		callerTeam := call.Caller.Team()
		oppTeam := 1 - callerTeam
		switch call.Type {
		case CallDouble:
			if last.Winner.SameTeam(call.Caller) {
				br.Balls[callerTeam] += doubleSuccessBalls
				br.note("double by %s succeeded: +%d ball(s)", call.Caller, doubleSuccessBalls)
			} else {
				br.Balls[oppTeam] += doubleFailureBalls
				br.note("double by %s failed: opponents +%d balls", call.Caller, doubleFailureBalls)
			}
		case CallKunuck:
			if e.kunuck(s, call.Caller) {
				br.Balls[callerTeam] += kunuckSuccessBalls
				br.KunuckSucceeded = true
				br.note("kunuck by %s succeeded: +%d balls", call.Caller, kunuckSuccessBalls)
			} else {
				br.Balls[oppTeam] += kunuckFailureBalls
				br.note("kunuck by %s failed: opponents +%d balls", call.Caller, kunuckFailureBalls)
			}
		}
	}
}
