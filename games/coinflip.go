package games

import "fmt"

// CoinFlipPayout is the even-money multiplier for a correct call.
const CoinFlipPayout = 1.0

// Flip samples heads or tails uniformly.
func Flip(rng Rand) string {
	if rng.Intn(2) == 0 {
		return "heads"
	}
	return "tails"
}

// CoinFlipWinnings applies the coin flip paytable.
func CoinFlipWinnings(prediction, outcome string, stake float64) float64 {
	if prediction == outcome {
		return stake * CoinFlipPayout
	}
	return 0
}

// ResolveCoinFlip flips once and settles the wager.
func ResolveCoinFlip(rng Rand, prediction string, stake float64) (Result, error) {
	if prediction != "heads" && prediction != "tails" {
		return Result{}, fmt.Errorf("%w: coinflip %q", ErrInvalidPrediction, prediction)
	}
	outcome := Flip(rng)
	return Result{
		Outcome: outcome,
		Payout:  CoinFlipWinnings(prediction, outcome, stake),
	}, nil
}
