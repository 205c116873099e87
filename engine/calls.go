package engine

import "fmt"

// CallType enumerates the closed set of call variants. Every consumer
// (validator, scoring, bot) switches exhaustively over these values, so
// adding a call type is a compile-visible change everywhere.
type CallType uint8

const (
	CallBid CallType = iota
	CallPass
	CallThunee
	CallRoyals
	CallBlindThunee
	CallBlindRoyals
	CallJodi
	CallDouble
	CallKunuck
)

func (t CallType) String() string {
	switch t {
	case CallBid:
		return "bid"
	case CallPass:
		return "pass"
	case CallThunee:
		return "thunee"
	case CallRoyals:
		return "royals"
	case CallBlindThunee:
		return "blindThunee"
	case CallBlindRoyals:
		return "blindRoyals"
	case CallJodi:
		return "jodi"
	case CallDouble:
		return "double"
	case CallKunuck:
		return "kunuck"
	}
	return "?"
}

// ParseCallType is the inverse of CallType.String.
func ParseCallType(name string) (CallType, error) {
	for t := CallBid; t <= CallKunuck; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown call type %q", name)
}

// Call is one entry of a round's append-only call history. It is a tagged
// value: Type selects which optional fields are meaningful.
//
//	CallBid          → Amount
//	CallThunee/Royals, blind variants → Trump/HasTrump (optional nomination);
//	                   blind variants additionally Cards = 2 hidden cards
//	CallJodi         → Cards (the nominated combination), IsTrump
//	CallPass/Double/Kunuck → no extra fields
//
// Calls are never mutated after creation.
type Call struct {
	Type     CallType
	Caller   Seat
	Amount   int
	Trump    uint8
	HasTrump bool
	Cards    []Card
	IsTrump  bool
}

// IsThuneeFamily reports whether the call demands all six tricks
// (Thunee, Royals, or either blind variant).
func (c Call) IsThuneeFamily() bool {
	switch c.Type {
	case CallThunee, CallRoyals, CallBlindThunee, CallBlindRoyals:
		return true
	}
	return false
}

// IsRoyals reports whether the call plays under the reversed (royals)
// ranking order.
func (c Call) IsRoyals() bool {
	return c.Type == CallRoyals || c.Type == CallBlindRoyals
}

// IsBlind reports whether the call was made on a four-card hand.
func (c Call) IsBlind() bool {
	return c.Type == CallBlindThunee || c.Type == CallBlindRoyals
}

// clone returns a deep copy of the call (Cards slice included).
func (c Call) clone() Call {
	out := c
	if c.Cards != nil {
		out.Cards = append([]Card(nil), c.Cards...)
	}
	return out
}
