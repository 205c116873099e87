package engine

import "fmt"

// Wire form: a field-named shape of round and match state for transmission
// to other devices. Suits, ranks, seats and phases travel as their string
// names. The engine defines only the shape, not a network protocol.

// CardWire is the wire form of one card.
type CardWire struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// ToWire converts a card.
func (c Card) ToWire() CardWire {
	return CardWire{Suit: SuitName(c.Suit()), Rank: RankName(c.Rank())}
}

// FromWire converts a wire card back.
func (w CardWire) FromWire() (Card, error) {
	suit, err := ParseSuit(w.Suit)
	if err != nil {
		return EmptyCard, err
	}
	rank, err := ParseRank(w.Rank)
	if err != nil {
		return EmptyCard, err
	}
	return NewCard(suit, rank), nil
}

func cardsToWire(cards []Card) []CardWire {
	if cards == nil {
		return nil
	}
	out := make([]CardWire, len(cards))
	for i, c := range cards {
		out[i] = c.ToWire()
	}
	return out
}

func cardsFromWire(cards []CardWire) ([]Card, error) {
	if cards == nil {
		return nil, nil
	}
	out := make([]Card, len(cards))
	for i, w := range cards {
		c, err := w.FromWire()
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// PlayWire is one seat→card entry of a trick, in play order.
type PlayWire struct {
	Seat string   `json:"seat"`
	Card CardWire `json:"card"`
}

// TrickWire is the wire form of a trick.
type TrickWire struct {
	Lead     string     `json:"lead"`
	LeadSuit string     `json:"leadSuit,omitempty"`
	Plays    []PlayWire `json:"plays"`
	Winner   string     `json:"winner,omitempty"`
}

// ToWire converts a trick.
func (t *Trick) ToWire() TrickWire {
	w := TrickWire{Lead: t.Lead.String()}
	if t.HasLead {
		w.LeadSuit = SuitName(t.LeadSuit)
	}
	for i := uint8(0); i < t.Size; i++ {
		seat := t.Order[i]
		w.Plays = append(w.Plays, PlayWire{Seat: seat.String(), Card: t.Cards[seat].ToWire()})
	}
	if t.Scored {
		w.Winner = t.Winner.String()
	}
	return w
}

// FromWire converts a wire trick back.
func (w TrickWire) FromWire() (Trick, error) {
	lead, err := ParseSeat(w.Lead)
	if err != nil {
		return Trick{}, err
	}
	t := NewTrick(lead)
	for _, p := range w.Plays {
		seat, err := ParseSeat(p.Seat)
		if err != nil {
			return Trick{}, err
		}
		card, err := p.Card.FromWire()
		if err != nil {
			return Trick{}, err
		}
		if err := t.add(seat, card); err != nil {
			return Trick{}, err
		}
	}
	if w.Winner != "" {
		winner, err := ParseSeat(w.Winner)
		if err != nil {
			return Trick{}, err
		}
		t.Winner = winner
		t.Scored = true
	}
	return t, nil
}

// CallWire is the wire form of one call-history entry.
type CallWire struct {
	Type    string     `json:"type"`
	Caller  string     `json:"caller"`
	Amount  int        `json:"amount,omitempty"`
	Trump   string     `json:"trump,omitempty"`
	Cards   []CardWire `json:"cards,omitempty"`
	IsTrump bool       `json:"isTrump,omitempty"`
}

// ToWire converts a call.
func (c Call) ToWire() CallWire {
	w := CallWire{
		Type:    c.Type.String(),
		Caller:  c.Caller.String(),
		Amount:  c.Amount,
		Cards:   cardsToWire(c.Cards),
		IsTrump: c.IsTrump,
	}
	if c.HasTrump {
		w.Trump = SuitName(c.Trump)
	}
	return w
}

// FromWire converts a wire call back.
func (w CallWire) FromWire() (Call, error) {
	typ, err := ParseCallType(w.Type)
	if err != nil {
		return Call{}, err
	}
	caller, err := ParseSeat(w.Caller)
	if err != nil {
		return Call{}, err
	}
	cards, err := cardsFromWire(w.Cards)
	if err != nil {
		return Call{}, err
	}
	c := Call{Type: typ, Caller: caller, Amount: w.Amount, Cards: cards, IsTrump: w.IsTrump}
	if w.Trump != "" {
		suit, err := ParseSuit(w.Trump)
		if err != nil {
			return Call{}, err
		}
		c.Trump = suit
		c.HasTrump = true
	}
	return c, nil
}

// RoundStateWire is the wire form of a full round.
type RoundStateWire struct {
	Phase           string       `json:"phase"`
	Dealer          string       `json:"dealer"`
	Hands           [][]CardWire `json:"hands"`
	Stock           []CardWire   `json:"stock,omitempty"`
	CompletedTricks []TrickWire  `json:"completedTricks"`
	CurrentTrick    TrickWire    `json:"currentTrick"`
	Calls           []CallWire   `json:"calls"`
	ActiveCallIdx   int          `json:"activeCallIdx"`
	HighestBid      int          `json:"highestBid"`
	BidWinner       string       `json:"bidWinner,omitempty"`
	AllPassed       bool         `json:"allPassed,omitempty"`
	PassStreak      int          `json:"passStreak,omitempty"`
	BiddingClosed   bool         `json:"biddingClosed,omitempty"`
	Trump           string       `json:"trump,omitempty"`
	TrumpMaker      string       `json:"trumpMaker,omitempty"`
	CurrentTurn     string       `json:"currentTurn"`
	DealComplete    bool         `json:"dealComplete"`
}

// ToWire converts the round state.
func (s *RoundState) ToWire() RoundStateWire {
	w := RoundStateWire{
		Phase:         s.Phase.String(),
		Dealer:        s.Dealer.String(),
		Hands:         make([][]CardWire, NumSeats),
		Stock:         cardsToWire(s.Stock),
		CurrentTrick:  s.CurrentTrick.ToWire(),
		ActiveCallIdx: s.ActiveCallIdx,
		HighestBid:    s.HighestBid,
		AllPassed:     s.AllPassed,
		PassStreak:    s.PassStreak,
		BiddingClosed: s.BiddingClosed,
		CurrentTurn:   s.CurrentTurn.String(),
		DealComplete:  s.DealComplete,
	}
	for i := range s.Hands {
		w.Hands[i] = cardsToWire(s.Hands[i])
		if w.Hands[i] == nil {
			w.Hands[i] = []CardWire{}
		}
	}
	for i := range s.CompletedTricks {
		w.CompletedTricks = append(w.CompletedTricks, s.CompletedTricks[i].ToWire())
	}
	for _, c := range s.Calls {
		w.Calls = append(w.Calls, c.ToWire())
	}
	if s.HasBidWinner {
		w.BidWinner = s.BidWinner.String()
	}
	if s.HasTrump {
		w.Trump = SuitName(s.Trump)
	}
	if s.HasTrumpMaker {
		w.TrumpMaker = s.TrumpMaker.String()
	}
	return w
}

// FromWire rebuilds a round state from its wire form.
func (w RoundStateWire) FromWire() (*RoundState, error) {
	phase, err := ParsePhase(w.Phase)
	if err != nil {
		return nil, err
	}
	dealer, err := ParseSeat(w.Dealer)
	if err != nil {
		return nil, err
	}
	turn, err := ParseSeat(w.CurrentTurn)
	if err != nil {
		return nil, err
	}
	s := &RoundState{
		Phase:         phase,
		Dealer:        dealer,
		ActiveCallIdx: w.ActiveCallIdx,
		HighestBid:    w.HighestBid,
		AllPassed:     w.AllPassed,
		PassStreak:    w.PassStreak,
		BiddingClosed: w.BiddingClosed,
		CurrentTurn:   turn,
		DealComplete:  w.DealComplete,
	}
	if len(w.Hands) != NumSeats {
		return nil, fmt.Errorf("wire: expected %d hands, got %d", NumSeats, len(w.Hands))
	}
	for i := range w.Hands {
		hand, err := cardsFromWire(w.Hands[i])
		if err != nil {
			return nil, err
		}
		if hand == nil {
			hand = []Card{}
		}
		s.Hands[i] = hand
	}
	if s.Stock, err = cardsFromWire(w.Stock); err != nil {
		return nil, err
	}
	for _, tw := range w.CompletedTricks {
		t, err := tw.FromWire()
		if err != nil {
			return nil, err
		}
		s.CompletedTricks = append(s.CompletedTricks, t)
	}
	if s.CurrentTrick, err = w.CurrentTrick.FromWire(); err != nil {
		return nil, err
	}
	for _, cw := range w.Calls {
		c, err := cw.FromWire()
		if err != nil {
			return nil, err
		}
		s.Calls = append(s.Calls, c)
	}
	if w.BidWinner != "" {
		if s.BidWinner, err = ParseSeat(w.BidWinner); err != nil {
			return nil, err
		}
		s.HasBidWinner = true
	}
	if w.Trump != "" {
		if s.Trump, err = ParseSuit(w.Trump); err != nil {
			return nil, err
		}
		s.HasTrump = true
	}
	if w.TrumpMaker != "" {
		if s.TrumpMaker, err = ParseSeat(w.TrumpMaker); err != nil {
			return nil, err
		}
		s.HasTrumpMaker = true
	}
	return s, nil
}

// TeamWire is the wire form of one team's tally.
type TeamWire struct {
	Number    int `json:"number"`
	TricksWon int `json:"tricksWon"`
	Points    int `json:"points"`
	Balls     int `json:"balls"`
}

// MatchStateWire is the wire form of the match-level state. Completed
// rounds travel as counts plus ball totals; full replay data stays local.
type MatchStateWire struct {
	Teams           [2]TeamWire     `json:"teams"`
	CompletedRounds int             `json:"completedRounds"`
	Round           *RoundStateWire `json:"round,omitempty"`
	Target          int             `json:"target"`
	Complete        bool            `json:"complete"`
	WinningTeam     int             `json:"winningTeam,omitempty"`
}

// ToWire converts the match state.
func (m *MatchState) ToWire() MatchStateWire {
	w := MatchStateWire{
		CompletedRounds: len(m.CompletedRounds),
		Target:          m.Target,
		Complete:        m.Complete,
		WinningTeam:     m.WinningTeam,
	}
	for i, t := range m.Teams {
		w.Teams[i] = TeamWire{Number: t.Number, TricksWon: t.TricksWon, Points: t.Points, Balls: t.Balls}
	}
	if m.Round != nil {
		rw := m.Round.ToWire()
		w.Round = &rw
	}
	return w
}

