package agent

import (
	engine "github.com/JustABard/thunee/engine"
)

// DecisionType tags the action a bot wants to submit.
type DecisionType uint8

const (
	DecisionMakeBid DecisionType = iota
	DecisionPassBid
	DecisionPlayCard
	DecisionMakeSpecialCall
	DecisionSelectTrump
)

func (t DecisionType) String() string {
	switch t {
	case DecisionMakeBid:
		return "makeBid"
	case DecisionPassBid:
		return "passBid"
	case DecisionPlayCard:
		return "playCard"
	case DecisionMakeSpecialCall:
		return "makeSpecialCall"
	case DecisionSelectTrump:
		return "selectTrump"
	}
	return "?"
}

// Decision is the tagged result of a bot decision function. The
// orchestrator translates it into the matching engine transition.
type Decision struct {
	Type   DecisionType
	Amount int         // DecisionMakeBid
	Card   engine.Card // DecisionPlayCard
	Call   engine.Call // DecisionMakeSpecialCall
	Trump  uint8       // DecisionSelectTrump
}

func makeBid(amount int) Decision { return Decision{Type: DecisionMakeBid, Amount: amount} }

func passBid() Decision { return Decision{Type: DecisionPassBid} }

func playCard(c engine.Card) Decision { return Decision{Type: DecisionPlayCard, Card: c} }

func specialCall(c engine.Call) Decision {
	return Decision{Type: DecisionMakeSpecialCall, Call: c}
}

func selectTrump(suit uint8) Decision { return Decision{Type: DecisionSelectTrump, Trump: suit} }
