package games

import "fmt"

// Bowling outcome distribution and paytable.
const (
	BowlingStrikeChance = 0.10
	BowlingSpareChance  = 0.40 // cumulative 0.50 with strikes; the rest miss

	BowlingStrikePayout = 20.0
	BowlingSparePayout  = 1.0
)

// BowlRoll samples "strike" (10%), "spare" (40%) or "miss" (50%).
func BowlRoll(rng Rand) string {
	r := rng.Float64()
	switch {
	case r < BowlingStrikeChance:
		return "strike"
	case r < BowlingStrikeChance+BowlingSpareChance:
		return "spare"
	default:
		return "miss"
	}
}

// BowlingPayout applies the bowling paytable: a predicted strike pays 20:1,
// a predicted spare pays even money on spare or miss.
func BowlingPayout(prediction, outcome string, stake float64) float64 {
	if prediction == "strike" && outcome == "strike" {
		return stake * BowlingStrikePayout
	}
	if prediction == "spare" && (outcome == "spare" || outcome == "miss") {
		return stake * BowlingSparePayout
	}
	return 0
}

// ResolveBowling rolls once and settles the wager. Jackpot accounting
// (three consecutive strikes) is the ledger's job; the resolver only
// reports the outcome.
func ResolveBowling(rng Rand, prediction string, stake float64) (Result, error) {
	if prediction != "strike" && prediction != "spare" {
		return Result{}, fmt.Errorf("%w: bowling %q", ErrInvalidPrediction, prediction)
	}
	outcome := BowlRoll(rng)
	return Result{
		Outcome: outcome,
		Payout:  BowlingPayout(prediction, outcome, stake),
	}, nil
}
