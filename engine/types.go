// Package engine implements the Thunee card game rules.
//
// This package is the deterministic game-logic layer: card ranking, trick
// resolution, call validation, ball scoring and the phase/turn state
// machine. Every transition function is a pure mapping from the current
// state to a successor copy — the package performs no I/O, holds no
// global state, and obtains randomness only through an injected RNG.
package engine

import "fmt"

// Suit constants — packed into upper 4 bits of Card.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3

	NumSuits = 4
)

// Rank constants — packed into lower 4 bits of Card. The Thunee deck uses
// six ranks per suit: Jack, Nine, Ace, Ten, King, Queen.
const (
	RankJack  uint8 = 0
	RankNine  uint8 = 1
	RankAce   uint8 = 2
	RankTen   uint8 = 3
	RankKing  uint8 = 4
	RankQueen uint8 = 5

	NumRanks = 6
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// DeckSize is the total number of cards in play: 4 suits × 6 ranks.
const DeckSize = NumSuits * NumRanks

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Index returns a dense index in [0, DeckSize) for table lookups.
func (c Card) Index() int { return int(c.Suit())*NumRanks + int(c.Rank()) }

// Points returns the card-point value used for round counting:
// J=30, 9=20, A=11, 10=10, K=3, Q=2.
func (c Card) Points() int {
	switch c.Rank() {
	case RankJack:
		return 30
	case RankNine:
		return 20
	case RankAce:
		return 11
	case RankTen:
		return 10
	case RankKing:
		return 3
	case RankQueen:
		return 2
	}
	// EmptyCard or malformed — worth nothing.
	return 0
}

func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	return RankName(c.Rank()) + SuitName(c.Suit())
}

// SuitName returns the lowercase wire name of a suit.
func SuitName(s uint8) string {
	switch s {
	case SuitHearts:
		return "hearts"
	case SuitDiamonds:
		return "diamonds"
	case SuitClubs:
		return "clubs"
	case SuitSpades:
		return "spades"
	}
	return "?"
}

// ParseSuit is the inverse of SuitName.
func ParseSuit(name string) (uint8, error) {
	switch name {
	case "hearts":
		return SuitHearts, nil
	case "diamonds":
		return SuitDiamonds, nil
	case "clubs":
		return SuitClubs, nil
	case "spades":
		return SuitSpades, nil
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// RankName returns the wire name of a rank.
func RankName(r uint8) string {
	switch r {
	case RankJack:
		return "J"
	case RankNine:
		return "9"
	case RankAce:
		return "A"
	case RankTen:
		return "10"
	case RankKing:
		return "K"
	case RankQueen:
		return "Q"
	}
	return "?"
}

// ParseRank is the inverse of RankName.
func ParseRank(name string) (uint8, error) {
	switch name {
	case "J":
		return RankJack, nil
	case "9":
		return RankNine, nil
	case "A":
		return RankAce, nil
	case "10":
		return RankTen, nil
	case "K":
		return RankKing, nil
	case "Q":
		return RankQueen, nil
	}
	return 0, fmt.Errorf("unknown rank %q", name)
}

// ---------------------------------------------------------------------------
// Seats and teams
// ---------------------------------------------------------------------------

// Seat identifies one of the four fixed positions. Play proceeds
// anti-clockwise: South → East → North → West.
type Seat uint8

const (
	SeatSouth Seat = 0
	SeatEast  Seat = 1
	SeatNorth Seat = 2
	SeatWest  Seat = 3

	NumSeats = 4
)

// Next returns the seat after s in anti-clockwise play order.
func (s Seat) Next() Seat { return (s + 1) % NumSeats }

// Partner returns the seat directly opposite s.
func (s Seat) Partner() Seat { return (s + 2) % NumSeats }

// Team returns the team index of s: 0 for South/North, 1 for East/West.
func (s Seat) Team() int { return int(s) % 2 }

// SameTeam reports whether two seats are partners.
func (s Seat) SameTeam(other Seat) bool { return s.Team() == other.Team() }

func (s Seat) String() string {
	switch s {
	case SeatSouth:
		return "south"
	case SeatEast:
		return "east"
	case SeatNorth:
		return "north"
	case SeatWest:
		return "west"
	}
	return "?"
}

// ParseSeat is the inverse of Seat.String.
func ParseSeat(name string) (Seat, error) {
	switch name {
	case "south":
		return SeatSouth, nil
	case "east":
		return SeatEast, nil
	case "north":
		return SeatNorth, nil
	case "west":
		return SeatWest, nil
	}
	return 0, fmt.Errorf("unknown seat %q", name)
}

// ---------------------------------------------------------------------------
// Phases
// ---------------------------------------------------------------------------

// Phase enumerates the round state machine. A round advances monotonically
// dealing → bidding → choosingTrump → playing → scoring; scoring is terminal.
type Phase uint8

const (
	PhaseDealing Phase = iota
	PhaseBidding
	PhaseChoosingTrump
	PhasePlaying
	PhaseScoring
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseBidding:
		return "bidding"
	case PhaseChoosingTrump:
		return "choosingTrump"
	case PhasePlaying:
		return "playing"
	case PhaseScoring:
		return "scoring"
	}
	return "?"
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(name string) (Phase, error) {
	switch name {
	case "dealing":
		return PhaseDealing, nil
	case "bidding":
		return PhaseBidding, nil
	case "choosingTrump":
		return PhaseChoosingTrump, nil
	case "playing":
		return PhasePlaying, nil
	case "scoring":
		return PhaseScoring, nil
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

// ---------------------------------------------------------------------------
// Verdicts — structured rule-violation results
// ---------------------------------------------------------------------------

// Verdict is the result of validating or applying a player action.
// Rule violations are expected, user-triggerable conditions: they come back
// as OK=false with a message, never as a Go error. Go errors are reserved
// for invariant violations (caller bugs).
type Verdict struct {
	OK  bool
	Err string
}

func valid() Verdict { return Verdict{OK: true} }

func invalid(format string, args ...any) Verdict {
	return Verdict{OK: false, Err: fmt.Sprintf(format, args...)}
}
