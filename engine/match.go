package engine

import "fmt"

// Player is one of the four roster entries supplied at match creation.
type Player struct {
	Seat  Seat
	Name  string
	IsBot bool
}

// Team is the match-level score container for one partnership. Balls only
// ever increase.
type Team struct {
	Number    int
	TricksWon int
	Points    int
	Balls     int
}

// MatchState aggregates a whole match: config, roster, team balls, the
// round in progress, and every folded round. The match completes exactly
// when a team's balls reach the effective target.
type MatchState struct {
	Config  GameConfig
	Players [NumSeats]Player
	Teams   [2]Team

	CompletedRounds []CompletedRound
	Round           *RoundState // nil between rounds

	Target      int // effective ball target; raised after a successful Kunuck
	Complete    bool
	WinningTeam int // valid only when Complete
}

// CompletedRound pairs a folded round with its scoring breakdown.
type CompletedRound struct {
	Round     RoundState
	Breakdown ScoringBreakdown
}

// NewMatch creates a fresh match with the given config and roster.
func NewMatch(cfg GameConfig, players [NumSeats]Player) *MatchState {
	m := &MatchState{
		Config: cfg,
		Teams:  [2]Team{{Number: 0}, {Number: 1}},
		Target: cfg.matchTarget(),
	}
	for i := range players {
		players[i].Seat = Seat(i)
		m.Players[i] = players[i]
	}
	return m
}

// clone returns a deep successor copy of the match.
func (m *MatchState) clone() *MatchState {
	out := *m
	out.CompletedRounds = append([]CompletedRound(nil), m.CompletedRounds...)
	if m.Round != nil {
		out.Round = m.Round.clone()
	}
	return &out
}

// NextDealer returns the dealer for the upcoming round. The dealer
// rotates anti-clockwise each completed round, starting at South.
func (m *MatchState) NextDealer() Seat {
	return Seat(len(m.CompletedRounds) % NumSeats)
}

// StartNewRound deals a new round (first packet of four cards per hand)
// using the injected RNG. It fails when a round is already in progress or
// the match is over.
func StartNewRound(m *MatchState, rng RNG) (*MatchState, Verdict) {
	if m.Complete {
		return nil, invalid("match is complete")
	}
	if m.Round != nil {
		return nil, invalid("a round is already in progress")
	}
	out := m.clone()
	out.Round = newRound(out.NextDealer(), rng)
	return out, valid()
}

// Redeal abandons an all-passed round and deals again with the same
// dealer. It is only legal when the current round's bidding closed with
// four passes and no bid.
func Redeal(m *MatchState, rng RNG) (*MatchState, Verdict) {
	if m.Round == nil || !m.Round.AllPassed {
		return nil, invalid("redeal is only legal after an all-pass bidding round")
	}
	out := m.clone()
	out.Round = newRound(out.Round.Dealer, rng)
	return out, valid()
}

// ScoreRound scores the round in progress, folds it into the match, and
// awards balls. Asked to score before the round reaches its scoring phase
// it returns an invariant error: the orchestrator drove the state machine
// wrong.
func ScoreRound(m *MatchState, scorer *ScoringEngine) (*MatchState, *ScoringBreakdown, error) {
	if m.Round == nil {
		return nil, nil, fmt.Errorf("no round in progress")
	}
	if m.Round.Phase != PhaseScoring {
		return nil, nil, fmt.Errorf("round is in %s, not scoring", m.Round.Phase)
	}
	br, err := scorer.Score(m.Round)
	if err != nil {
		return nil, nil, err
	}

	out := m.clone()
	for team := 0; team < 2; team++ {
		out.Teams[team].Points += br.TeamPoints[team]
		out.Teams[team].TricksWon += br.TeamTricks[team]
		out.Teams[team].Balls += br.Balls[team]
	}
	if br.KunuckSucceeded && out.Target < KunuckRaisedTarget {
		out.Target = KunuckRaisedTarget
	}
	out.CompletedRounds = append(out.CompletedRounds, CompletedRound{
		Round:     *out.Round.clone(),
		Breakdown: *br,
	})
	out.Round = nil

	for team := 0; team < 2; team++ {
		if out.Teams[team].Balls >= out.Target {
			out.Complete = true
			out.WinningTeam = team
			break
		}
	}
	return out, br, nil
}
