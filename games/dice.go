package games

import (
	"fmt"
	"strconv"
)

// Dice paytable multipliers (net, stake excluded).
const (
	DiceExactPayout   = 5.0
	DiceHighLowPayout = 1.5
	DiceParityPayout  = 1.0
)

// RollDie samples a single d6.
func RollDie(rng Rand) int {
	return rng.Intn(6) + 1
}

// DicePayout applies the dice paytable. Prediction is "1".."6" for an exact
// match, or one of "high" (4-6), "low" (1-3), "even", "odd".
func DicePayout(prediction string, roll int, stake float64) float64 {
	switch prediction {
	case "high":
		if roll >= 4 {
			return stake * DiceHighLowPayout
		}
	case "low":
		if roll <= 3 {
			return stake * DiceHighLowPayout
		}
	case "even":
		if roll%2 == 0 {
			return stake * DiceParityPayout
		}
	case "odd":
		if roll%2 == 1 {
			return stake * DiceParityPayout
		}
	default:
		if n, err := strconv.Atoi(prediction); err == nil && n == roll {
			return stake * DiceExactPayout
		}
	}
	return 0
}

func validDicePrediction(prediction string) bool {
	switch prediction {
	case "high", "low", "even", "odd":
		return true
	}
	n, err := strconv.Atoi(prediction)
	return err == nil && n >= 1 && n <= 6
}

// ResolveDice rolls once and settles the wager.
func ResolveDice(rng Rand, prediction string, stake float64) (Result, error) {
	if !validDicePrediction(prediction) {
		return Result{}, fmt.Errorf("%w: dice %q", ErrInvalidPrediction, prediction)
	}
	roll := RollDie(rng)
	return Result{
		Outcome: strconv.Itoa(roll),
		Payout:  DicePayout(prediction, roll, stake),
	}, nil
}
