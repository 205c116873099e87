package engine

// Two total rank orders, strongest first:
//
//	standard: J > 9 > A > 10 > K > Q
//	royals:   Q > K > 10 > A > 9 > J
//
// Royals is the exact reverse of standard, so a single strength table
// serves both modes.
var standardStrength = [NumRanks]int{
	RankJack:  5,
	RankNine:  4,
	RankAce:   3,
	RankTen:   2,
	RankKing:  1,
	RankQueen: 0,
}

// Strength returns the comparable strength of a rank under the given mode.
// Higher is stronger.
func Strength(rank uint8, royals bool) int {
	s := standardStrength[rank]
	if royals {
		return NumRanks - 1 - s
	}
	return s
}

// Beats reports whether card a outranks card b given the trump suit, the
// lead suit, and the ranking mode. Precedence:
//
//  1. trump beats non-trump
//  2. two trumps (or two lead-suit cards) compare by rank strength
//  3. a lead-suit card beats an off-suit, non-trump card
//  4. two off-suit cards are incomparable — a never beats b
//
// Case 4 cannot decide a legal trick (the provisional winner is always
// trump or lead suit), so returning false there is safe.
func Beats(a, b Card, trump uint8, hasTrump bool, leadSuit uint8, royals bool) bool {
	if hasTrump {
		aTrump := a.Suit() == trump
		bTrump := b.Suit() == trump
		if aTrump && !bTrump {
			return true
		}
		if bTrump && !aTrump {
			return false
		}
		if aTrump && bTrump {
			return Strength(a.Rank(), royals) > Strength(b.Rank(), royals)
		}
	}
	aLead := a.Suit() == leadSuit
	bLead := b.Suit() == leadSuit
	if aLead && bLead {
		return Strength(a.Rank(), royals) > Strength(b.Rank(), royals)
	}
	if aLead && !bLead {
		return true
	}
	return false
}

// DetermineWinningCardIndex returns the index of the strongest card in a
// non-empty list played under the given trump and lead suit. The fold is
// left-to-right: the first card is the provisional winner and later cards
// replace it only when strictly higher.
func DetermineWinningCardIndex(cards []Card, trump uint8, hasTrump bool, leadSuit uint8, royals bool) int {
	if len(cards) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(cards); i++ {
		if Beats(cards[i], cards[best], trump, hasTrump, leadSuit, royals) {
			best = i
		}
	}
	return best
}
