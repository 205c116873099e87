package agent

import (
	"testing"

	engine "github.com/JustABard/thunee/engine"
)

// playRound builds a playing-phase round with a trick in progress: the
// given cards are played in seat order from the lead.
func playRound(t *testing.T, trump uint8, lead engine.Seat, played ...engine.Card) *engine.RoundState {
	t.Helper()
	return &engine.RoundState{
		Phase:         engine.PhasePlaying,
		ActiveCallIdx: -1,
		Trump:         trump,
		HasTrump:      true,
		TrumpMaker:    lead,
		HasTrumpMaker: true,
		CurrentTrick:  playedTrick(t, lead, played...),
		CurrentTurn:   lead.Next(),
	}
}

// quietSelector never takes the random-play branch.
func quietSelector() *CardSelector {
	return NewCardSelector(engine.DefaultGameConfig(), &stubRNG{floats: []float64{0.99}})
}

// mustSelect fails the test on a selection error.
func mustSelect(t *testing.T, cs *CardSelector, s *engine.RoundState, seat engine.Seat) engine.Card {
	t.Helper()
	c, err := cs.SelectCard(s, seat)
	if err != nil {
		t.Fatalf("SelectCard: %v", err)
	}
	return c
}

// TestSelectCardSingleton: one legal card needs no deliberation.
func TestSelectCardSingleton(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth, card(engine.SuitHearts, engine.RankNine))
	s.Hands[engine.SeatEast] = []engine.Card{
		card(engine.SuitHearts, engine.RankQueen),
		card(engine.SuitClubs, engine.RankJack),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatEast)
	if got != card(engine.SuitHearts, engine.RankQueen) {
		t.Errorf("following suit is forced: want Qhearts, got %s", got)
	}
}

// TestSelectCardEmptyHand: asking a seat with nothing to play is a
// driver bug and comes back as an error.
func TestSelectCardEmptyHand(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth, card(engine.SuitHearts, engine.RankNine))
	s.Hands[engine.SeatEast] = nil
	if _, err := quietSelector().SelectCard(s, engine.SeatEast); err == nil {
		t.Error("want an error selecting from an empty hand")
	}
}

// TestFollowWeakestWinner: win the trick as cheaply as possible.
func TestFollowWeakestWinner(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth, card(engine.SuitClubs, engine.RankNine))
	s.Hands[engine.SeatEast] = []engine.Card{
		card(engine.SuitClubs, engine.RankJack),
		card(engine.SuitClubs, engine.RankAce),
		card(engine.SuitHearts, engine.RankTen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatEast)
	if got != card(engine.SuitClubs, engine.RankJack) {
		t.Errorf("only the jack beats the nine: got %s", got)
	}
}

// TestFollowDumpWhenBeaten: nothing wins, shed the cheapest card.
func TestFollowDumpWhenBeaten(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth, card(engine.SuitClubs, engine.RankJack))
	s.Hands[engine.SeatEast] = []engine.Card{
		card(engine.SuitClubs, engine.RankAce),
		card(engine.SuitClubs, engine.RankQueen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatEast)
	if got != card(engine.SuitClubs, engine.RankQueen) {
		t.Errorf("beaten seats dump cheap: want Qclubs, got %s", got)
	}
}

// TestFeedPartner: throw points onto the partner's winning trick, but
// never the last winner of a suit without a backup.
func TestFeedPartner(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth,
		card(engine.SuitClubs, engine.RankJack),
		card(engine.SuitClubs, engine.RankQueen),
	)
	s.Hands[engine.SeatNorth] = []engine.Card{
		card(engine.SuitClubs, engine.RankAce),
		card(engine.SuitClubs, engine.RankTen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatNorth)
	if got != card(engine.SuitClubs, engine.RankAce) {
		t.Errorf("partner holds the trick: feed the ace, got %s", got)
	}
}

// TestDeclineCheapCut: a low-value early trick is not worth a trump, and
// declining sheds a non-trump.
func TestDeclineCheapCut(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth, card(engine.SuitHearts, engine.RankAce))
	s.Hands[engine.SeatEast] = []engine.Card{
		card(engine.SuitSpades, engine.RankQueen),
		card(engine.SuitDiamonds, engine.RankKing),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatEast)
	if got != card(engine.SuitDiamonds, engine.RankKing) {
		t.Errorf("an 11-point trick is not worth a trump: want Kdiamonds, got %s", got)
	}
}

// TestCutHighValueTrick: thirty points on the table justifies the cut.
func TestCutHighValueTrick(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth, card(engine.SuitHearts, engine.RankJack))
	s.Hands[engine.SeatEast] = []engine.Card{
		card(engine.SuitSpades, engine.RankQueen),
		card(engine.SuitDiamonds, engine.RankKing),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatEast)
	if got != card(engine.SuitSpades, engine.RankQueen) {
		t.Errorf("thirty points justifies the cut: want Qspades, got %s", got)
	}
}

// TestNeverCutOverPartner: the partner already holds the trick.
func TestNeverCutOverPartner(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth,
		card(engine.SuitHearts, engine.RankJack),
		card(engine.SuitDiamonds, engine.RankQueen), // east void
	)
	s.Hands[engine.SeatNorth] = []engine.Card{
		card(engine.SuitSpades, engine.RankKing),
		card(engine.SuitDiamonds, engine.RankTen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatNorth)
	if got != card(engine.SuitDiamonds, engine.RankTen) {
		t.Errorf("never trump the partner's winner: want 10diamonds, got %s", got)
	}
}

// TestSupportPartnerThunee: the caller's partner must lose on purpose.
func TestSupportPartnerThunee(t *testing.T) {
	s := playRound(t, engine.SuitHearts, engine.SeatSouth,
		card(engine.SuitHearts, engine.RankNine),
		card(engine.SuitDiamonds, engine.RankQueen), // east void
	)
	s.Calls = []engine.Call{{Type: engine.CallThunee, Caller: engine.SeatSouth, Trump: engine.SuitHearts, HasTrump: true}}
	s.ActiveCallIdx = 0
	s.Hands[engine.SeatNorth] = []engine.Card{
		card(engine.SuitHearts, engine.RankJack),
		card(engine.SuitHearts, engine.RankQueen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatNorth)
	if got != card(engine.SuitHearts, engine.RankQueen) {
		t.Errorf("the caller's partner must duck: want Qhearts, got %s", got)
	}
}

// TestCounterThunee: an opponent plays its cheapest sufficient winner
// against the caller.
func TestCounterThunee(t *testing.T) {
	s := playRound(t, engine.SuitHearts, engine.SeatSouth,
		card(engine.SuitHearts, engine.RankAce),
	)
	s.Calls = []engine.Call{{Type: engine.CallThunee, Caller: engine.SeatSouth, Trump: engine.SuitHearts, HasTrump: true}}
	s.ActiveCallIdx = 0
	s.Hands[engine.SeatEast] = []engine.Card{
		card(engine.SuitHearts, engine.RankJack),
		card(engine.SuitHearts, engine.RankNine),
		card(engine.SuitHearts, engine.RankQueen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatEast)
	if got != card(engine.SuitHearts, engine.RankNine) {
		t.Errorf("the nine is the cheapest card that beats the ace: got %s", got)
	}
}

// TestLeadSureJack: leading opens with an unbeatable short-suit jack.
func TestLeadSureJack(t *testing.T) {
	s := playRound(t, engine.SuitDiamonds, engine.SeatSouth)
	s.CurrentTurn = engine.SeatSouth
	s.Hands[engine.SeatSouth] = []engine.Card{
		card(engine.SuitClubs, engine.RankJack),
		card(engine.SuitHearts, engine.RankNine),
		card(engine.SuitHearts, engine.RankAce),
		card(engine.SuitHearts, engine.RankTen),
		card(engine.SuitSpades, engine.RankKing),
		card(engine.SuitSpades, engine.RankTen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatSouth)
	if got != card(engine.SuitClubs, engine.RankJack) {
		t.Errorf("want the lone club jack led, got %s", got)
	}
}

// TestLeadFlushTrumpJack: holding the trump jack with opposing trumps
// still out flushes them.
func TestLeadFlushTrumpJack(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth)
	s.CurrentTurn = engine.SeatSouth
	s.Hands[engine.SeatSouth] = []engine.Card{
		card(engine.SuitSpades, engine.RankJack),
		card(engine.SuitHearts, engine.RankQueen),
		card(engine.SuitDiamonds, engine.RankQueen),
		card(engine.SuitClubs, engine.RankQueen),
		card(engine.SuitHearts, engine.RankTen),
		card(engine.SuitDiamonds, engine.RankTen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatSouth)
	if got != card(engine.SuitSpades, engine.RankJack) {
		t.Errorf("want the trump jack flush, got %s", got)
	}
}

// TestLeadBaitAce: an ace guarded by its own jack is the lead of choice
// once flushing trump would only hurt the partner.
func TestLeadBaitAce(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth)
	// Trick one: spades led, both opponents shown void in trump.
	s.CompletedTricks = []engine.Trick{playedTrick(t, engine.SeatNorth,
		card(engine.SuitSpades, engine.RankKing),
		card(engine.SuitHearts, engine.RankQueen),
		card(engine.SuitSpades, engine.RankTen),
		card(engine.SuitDiamonds, engine.RankQueen),
	)}
	s.CurrentTurn = engine.SeatSouth
	s.Hands[engine.SeatSouth] = []engine.Card{
		card(engine.SuitSpades, engine.RankJack),
		card(engine.SuitSpades, engine.RankAce),
		card(engine.SuitHearts, engine.RankTen),
		card(engine.SuitDiamonds, engine.RankNine),
		card(engine.SuitDiamonds, engine.RankKing),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatSouth)
	if got != card(engine.SuitSpades, engine.RankAce) {
		t.Errorf("want the guarded spade ace led, got %s", got)
	}
}

// TestLeadNineAfterJack: once a suit's jack has fallen its nine is a
// sure lead.
func TestLeadNineAfterJack(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth)
	s.CurrentTurn = engine.SeatSouth
	s.CompletedTricks = []engine.Trick{playedTrick(t, engine.SeatEast,
		card(engine.SuitClubs, engine.RankJack),
		card(engine.SuitClubs, engine.RankQueen),
		card(engine.SuitClubs, engine.RankKing),
		card(engine.SuitHearts, engine.RankQueen),
	)}
	s.Hands[engine.SeatSouth] = []engine.Card{
		card(engine.SuitClubs, engine.RankNine),
		card(engine.SuitHearts, engine.RankTen),
		card(engine.SuitHearts, engine.RankKing),
		card(engine.SuitDiamonds, engine.RankTen),
		card(engine.SuitDiamonds, engine.RankKing),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatSouth)
	if got != card(engine.SuitClubs, engine.RankNine) {
		t.Errorf("the club nine is master once the jack is gone, got %s", got)
	}
}

// TestThuneeCallerLeads: the caller presses with the strongest remaining
// card.
func TestThuneeCallerLeads(t *testing.T) {
	s := playRound(t, engine.SuitHearts, engine.SeatSouth)
	s.CurrentTurn = engine.SeatSouth
	s.Calls = []engine.Call{{Type: engine.CallThunee, Caller: engine.SeatSouth, Trump: engine.SuitHearts, HasTrump: true}}
	s.ActiveCallIdx = 0
	s.Hands[engine.SeatSouth] = []engine.Card{
		card(engine.SuitHearts, engine.RankJack),
		card(engine.SuitHearts, engine.RankQueen),
		card(engine.SuitClubs, engine.RankQueen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatSouth)
	if got != card(engine.SuitHearts, engine.RankJack) {
		t.Errorf("the caller leads its master card: want Jhearts, got %s", got)
	}
}

// TestPartnerDumpsUnderThunee: the caller's partner leads its big cards
// away while the caller controls the round.
func TestPartnerDumpsUnderThunee(t *testing.T) {
	s := playRound(t, engine.SuitHearts, engine.SeatSouth)
	s.CurrentTurn = engine.SeatNorth
	s.Calls = []engine.Call{{Type: engine.CallThunee, Caller: engine.SeatSouth, Trump: engine.SuitHearts, HasTrump: true}}
	s.ActiveCallIdx = 0
	s.Hands[engine.SeatNorth] = []engine.Card{
		card(engine.SuitClubs, engine.RankJack),
		card(engine.SuitClubs, engine.RankQueen),
		card(engine.SuitDiamonds, engine.RankTen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatNorth)
	if got != card(engine.SuitClubs, engine.RankJack) {
		t.Errorf("the partner sheds the club jack under the caller, got %s", got)
	}
}

// TestLeadMarriageForJodi: holding a marriage on the first trick, the
// bot plays to win it so the call window opens.
func TestLeadMarriageForJodi(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth)
	s.CurrentTurn = engine.SeatSouth
	s.Hands[engine.SeatSouth] = []engine.Card{
		card(engine.SuitHearts, engine.RankJack),
		card(engine.SuitClubs, engine.RankKing),
		card(engine.SuitClubs, engine.RankQueen),
		card(engine.SuitDiamonds, engine.RankTen),
		card(engine.SuitDiamonds, engine.RankNine),
		card(engine.SuitHearts, engine.RankQueen),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatSouth)
	if got != card(engine.SuitHearts, engine.RankJack) {
		t.Errorf("want the strongest card led to secure the marriage trick, got %s", got)
	}
}

// TestLeadSavesMasterTrump: on the fifth trick the master trump stays
// back so it is certain to take the last one.
func TestLeadSavesMasterTrump(t *testing.T) {
	s := playRound(t, engine.SuitSpades, engine.SeatSouth)
	s.CompletedTricks = []engine.Trick{
		playedTrick(t, engine.SeatSouth,
			card(engine.SuitSpades, engine.RankJack),
			card(engine.SuitSpades, engine.RankQueen),
			card(engine.SuitSpades, engine.RankKing),
			card(engine.SuitSpades, engine.RankTen),
		),
		playedTrick(t, engine.SeatSouth,
			card(engine.SuitHearts, engine.RankJack),
			card(engine.SuitHearts, engine.RankQueen),
			card(engine.SuitHearts, engine.RankKing),
			card(engine.SuitHearts, engine.RankTen),
		),
		playedTrick(t, engine.SeatSouth,
			card(engine.SuitClubs, engine.RankJack),
			card(engine.SuitClubs, engine.RankQueen),
			card(engine.SuitClubs, engine.RankKing),
			card(engine.SuitClubs, engine.RankTen),
		),
		playedTrick(t, engine.SeatSouth,
			card(engine.SuitDiamonds, engine.RankJack),
			card(engine.SuitDiamonds, engine.RankQueen),
			card(engine.SuitDiamonds, engine.RankKing),
			card(engine.SuitDiamonds, engine.RankTen),
		),
	}
	s.CurrentTurn = engine.SeatSouth
	s.Hands[engine.SeatSouth] = []engine.Card{
		card(engine.SuitSpades, engine.RankNine),
		card(engine.SuitHearts, engine.RankAce),
	}
	got := mustSelect(t, quietSelector(), s, engine.SeatSouth)
	if got != card(engine.SuitHearts, engine.RankAce) {
		t.Errorf("want the side ace led with the master trump held back, got %s", got)
	}
}
