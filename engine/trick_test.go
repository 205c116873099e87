package engine

import (
	"testing"
)

// buildTrick plays the given cards into a fresh trick in seat order
// starting at lead. Panics on a broken test fixture.
func buildTrick(t *testing.T, lead Seat, cards ...Card) Trick {
	t.Helper()
	trick := NewTrick(lead)
	seat := lead
	for _, c := range cards {
		if err := trick.add(seat, c); err != nil {
			t.Fatalf("fixture: %v", err)
		}
		seat = seat.Next()
	}
	return trick
}

// TestValidateCardPlayFollowSuit verifies the follow-suit rule: holding
// the lead suit forbids every other card.
func TestValidateCardPlayFollowSuit(t *testing.T) {
	hand := []Card{
		NewCard(SuitHearts, RankKing),
		NewCard(SuitSpades, RankJack),
	}
	trick := buildTrick(t, SeatSouth, NewCard(SuitHearts, RankTen))

	if v := ValidateCardPlay(NewCard(SuitSpades, RankJack), hand, &trick); v.OK {
		t.Error("off-suit play must be rejected while holding the lead suit")
	}
	if v := ValidateCardPlay(NewCard(SuitHearts, RankKing), hand, &trick); !v.OK {
		t.Errorf("following suit must be legal: %s", v.Err)
	}
}

// TestValidateCardPlayNotInHand verifies a card outside the hand is
// rejected even when its suit matches.
func TestValidateCardPlayNotInHand(t *testing.T) {
	hand := []Card{NewCard(SuitHearts, RankKing)}
	trick := buildTrick(t, SeatSouth, NewCard(SuitHearts, RankTen))
	if v := ValidateCardPlay(NewCard(SuitHearts, RankAce), hand, &trick); v.OK {
		t.Error("a card not in hand must be rejected")
	}
}

// TestLegalCardsFor covers leading (whole hand), following, and void.
func TestLegalCardsFor(t *testing.T) {
	hand := []Card{
		NewCard(SuitHearts, RankKing),
		NewCard(SuitHearts, RankNine),
		NewCard(SuitSpades, RankJack),
	}

	empty := NewTrick(SeatSouth)
	if got := LegalCardsFor(hand, &empty); len(got) != 3 {
		t.Errorf("leading: want whole hand legal, got %d cards", len(got))
	}

	heartsLed := buildTrick(t, SeatSouth, NewCard(SuitHearts, RankTen))
	if got := LegalCardsFor(hand, &heartsLed); len(got) != 2 {
		t.Errorf("following hearts: want 2 legal cards, got %d", len(got))
	}

	clubsLed := buildTrick(t, SeatSouth, NewCard(SuitClubs, RankTen))
	if got := LegalCardsFor(hand, &clubsLed); len(got) != 3 {
		t.Errorf("void in clubs: want whole hand legal, got %d", len(got))
	}
}

// TestDetermineWinnerIncomplete verifies resolving a short trick is an
// invariant error, not a verdict.
func TestDetermineWinnerIncomplete(t *testing.T) {
	trick := buildTrick(t, SeatSouth, NewCard(SuitHearts, RankTen))
	if _, err := DetermineWinner(&trick, SuitHearts, true, false); err == nil {
		t.Error("want error resolving an incomplete trick")
	}
}

// TestDetermineWinnerSeats maps the winning card index back to the seat
// that played it, with a non-South lead.
func TestDetermineWinnerSeats(t *testing.T) {
	// West leads clubs; North cuts with the trump queen.
	trick := buildTrick(t, SeatWest,
		NewCard(SuitClubs, RankAce),    // west
		NewCard(SuitClubs, RankTen),    // south
		NewCard(SuitDiamonds, RankTen), // east, void
		NewCard(SuitHearts, RankQueen), // north, trump
	)
	winner, err := DetermineWinner(&trick, SuitHearts, true, false)
	if err != nil {
		t.Fatalf("DetermineWinner: %v", err)
	}
	if winner != SeatNorth {
		t.Errorf("want north, got %s", winner)
	}
}

// TestDetermineWinnerOrderInvariant verifies the winner of a complete
// trick does not depend on the order the follow cards went in, under
// both ranking modes.
func TestDetermineWinnerOrderInvariant(t *testing.T) {
	// South leads the club queen; East and North follow, West discards
	// off-suit. Standard ranking crowns the jack, royals the queen.
	follows := []struct {
		seat Seat
		card Card
	}{
		{SeatEast, NewCard(SuitClubs, RankKing)},
		{SeatNorth, NewCard(SuitClubs, RankJack)},
		{SeatWest, NewCard(SuitDiamonds, RankNine)},
	}
	perms := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	want := map[bool]Seat{false: SeatNorth, true: SeatSouth}

	for _, royals := range []bool{false, true} {
		for i, p := range perms {
			trick := NewTrick(SeatSouth)
			if err := trick.add(SeatSouth, NewCard(SuitClubs, RankQueen)); err != nil {
				t.Fatalf("fixture: %v", err)
			}
			for _, j := range p {
				if err := trick.add(follows[j].seat, follows[j].card); err != nil {
					t.Fatalf("fixture: %v", err)
				}
			}
			got, err := DetermineWinner(&trick, SuitHearts, true, royals)
			if err != nil {
				t.Fatalf("DetermineWinner: %v", err)
			}
			if got != want[royals] {
				t.Errorf("royals=%v permutation %d: want %s, got %s", royals, i, want[royals], got)
			}
		}
	}
}

// TestWillCardWin verifies lookahead against a partial trick.
func TestWillCardWin(t *testing.T) {
	trick := buildTrick(t, SeatSouth,
		NewCard(SuitClubs, RankNine),
		NewCard(SuitClubs, RankQueen),
	)
	if !WillCardWin(NewCard(SuitClubs, RankJack), &trick, SuitHearts, true, false) {
		t.Error("the club jack must beat the club nine")
	}
	if WillCardWin(NewCard(SuitClubs, RankAce), &trick, SuitHearts, true, false) {
		t.Error("the club ace must lose to the club nine")
	}
	if !WillCardWin(NewCard(SuitHearts, RankQueen), &trick, SuitHearts, true, false) {
		t.Error("any trump must beat a non-trump trick")
	}
}

// TestTrickPoints verifies the pot tally of a complete trick.
func TestTrickPoints(t *testing.T) {
	trick := buildTrick(t, SeatSouth,
		NewCard(SuitClubs, RankJack),  // 30
		NewCard(SuitClubs, RankNine),  // 20
		NewCard(SuitClubs, RankQueen), // 2
		NewCard(SuitHearts, RankTen),  // 10
	)
	if got := trick.Points(); got != 62 {
		t.Errorf("want 62 points, got %d", got)
	}
}

// TestTrickAddRejectsDuplicates verifies one card per seat.
func TestTrickAddRejectsDuplicates(t *testing.T) {
	trick := NewTrick(SeatSouth)
	if err := trick.add(SeatSouth, NewCard(SuitClubs, RankJack)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := trick.add(SeatSouth, NewCard(SuitClubs, RankNine)); err == nil {
		t.Error("want error on a second card from the same seat")
	}
}
