package games

import "fmt"

// Blackjack constants.
const (
	BlackjackPayout  = 1.5 // natural 21 pays 3:2
	BlackjackWin     = 1.0
	DealerStandValue = 17
	playerStandValue = 17 // house-played hand draws to 17 like the dealer
)

var cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var cardValues = map[string]int{
	"A": 11, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7,
	"8": 8, "9": 9, "10": 10, "J": 10, "Q": 10, "K": 10,
}

// DealCard samples a card rank with replacement (infinite-shoe model).
func DealCard(rng Rand) string {
	return cardRanks[rng.Intn(len(cardRanks))]
}

// HandValue totals a hand, demoting aces from 11 to 1 while busting.
func HandValue(cards []string) int {
	value := 0
	aces := 0
	for _, c := range cards {
		value += cardValues[c]
		if c == "A" {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// IsBlackjack reports a two-card 21.
func IsBlackjack(cards []string) bool {
	return len(cards) == 2 && HandValue(cards) == 21
}

// ResolveBlackjack plays out one hand against the dealer. Both hands are
// drawn to 17; naturals settle immediately.
func ResolveBlackjack(rng Rand, stake float64) (Result, error) {
	player := []string{DealCard(rng), DealCard(rng)}
	dealer := []string{DealCard(rng), DealCard(rng)}

	playerNatural := IsBlackjack(player)
	dealerNatural := IsBlackjack(dealer)

	switch {
	case playerNatural && dealerNatural:
		return Result{Outcome: "push (double blackjack)", Push: true}, nil
	case playerNatural:
		return Result{Outcome: "blackjack", Payout: stake * BlackjackPayout}, nil
	case dealerNatural:
		return Result{Outcome: "dealer blackjack"}, nil
	}

	for HandValue(player) < playerStandValue {
		player = append(player, DealCard(rng))
	}
	pv := HandValue(player)
	if pv > 21 {
		return Result{Outcome: fmt.Sprintf("bust %d", pv)}, nil
	}

	for HandValue(dealer) < DealerStandValue {
		dealer = append(dealer, DealCard(rng))
	}
	dv := HandValue(dealer)

	outcome := fmt.Sprintf("%d vs dealer %d", pv, dv)
	switch {
	case dv > 21 || pv > dv:
		return Result{Outcome: outcome, Payout: stake * BlackjackWin}, nil
	case pv == dv:
		return Result{Outcome: outcome, Push: true}, nil
	default:
		return Result{Outcome: outcome}, nil
	}
}
