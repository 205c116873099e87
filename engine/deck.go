package engine

// RNG is the injected randomness source. Identical seeds reproduce
// identical shuffles and identical bot decisions. *rand.Rand from
// math/rand/v2 satisfies it.
type RNG interface {
	Shuffle(n int, swap func(i, j int))
	Float64() float64
	IntN(n int) int
}

// Xorshift is a small, allocation-free xorshift64 RNG.
type Xorshift struct {
	state uint64
}

// NewXorshift returns an RNG seeded with the given value.
func NewXorshift(seed uint64) *Xorshift {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	return &Xorshift{state: seed}
}

func (x *Xorshift) next() uint64 {
	v := x.state
	v ^= v << 13
	v ^= v >> 7
	v ^= v << 17
	x.state = v
	return v
}

// IntN returns a value in [0, n).
func (x *Xorshift) IntN(n int) int {
	return int(x.next() % uint64(n))
}

// Float64 returns a value in [0, 1).
func (x *Xorshift) Float64() float64 {
	return float64(x.next()>>11) / (1 << 53)
}

// Shuffle performs a Fisher-Yates shuffle over n elements.
func (x *Xorshift) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, x.IntN(i+1))
	}
}

// ---------------------------------------------------------------------------
// Deck construction and dealing
// ---------------------------------------------------------------------------

// NewDeck returns the 24-card Thunee deck in canonical order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for suit := uint8(0); suit < NumSuits; suit++ {
		for rank := uint8(0); rank < NumRanks; rank++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the deck; the input is untouched.
func ShuffleDeck(rng RNG, deck []Card) []Card {
	out := append([]Card(nil), deck...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// dealSplit deals the first four cards to each seat anti-clockwise starting
// left of the dealer and returns the remaining eight cards as stock. The
// pause between the two packets is the blind-call window.
func dealSplit(deck []Card, dealer Seat) (hands [NumSeats][]Card, stock []Card) {
	pos := 0
	for round := 0; round < 4; round++ {
		seat := dealer.Next()
		for i := 0; i < NumSeats; i++ {
			hands[seat] = append(hands[seat], deck[pos])
			pos++
			seat = seat.Next()
		}
	}
	stock = append([]Card(nil), deck[pos:]...)
	return hands, stock
}

// dealRemainder distributes the eight stock cards, two per seat, completing
// every hand to six cards.
func dealRemainder(hands [NumSeats][]Card, stock []Card, dealer Seat) [NumSeats][]Card {
	pos := 0
	for round := 0; round < 2; round++ {
		seat := dealer.Next()
		for i := 0; i < NumSeats; i++ {
			hands[seat] = append(hands[seat], stock[pos])
			pos++
			seat = seat.Next()
		}
	}
	return hands
}
