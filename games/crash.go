package games

import (
	"fmt"
	"math"
	"strconv"
)

// Crash multiplier bands: four tiers with increasing ceiling and
// decreasing probability.
const (
	crashBand1Chance = 0.33 // 1.00 - 1.50x
	crashBand2Chance = 0.66 // 1.50 - 3.00x
	crashBand3Chance = 0.90 // 3.00 - 10.00x
	//                 rest    10.00 - 50.00x

	CrashMinCashout = 1.01
	CrashMaxCashout = 50.0
)

// CrashMultiplier samples the realized multiplier from the tiered bands,
// rounded to two decimals.
func CrashMultiplier(rng Rand) float64 {
	r := rng.Float64()
	var lo, hi float64
	switch {
	case r < crashBand1Chance:
		lo, hi = 1.0, 1.5
	case r < crashBand2Chance:
		lo, hi = 1.5, 3.0
	case r < crashBand3Chance:
		lo, hi = 3.0, 10.0
	default:
		lo, hi = 10.0, 50.0
	}
	return math.Round((lo+rng.Float64()*(hi-lo))*100) / 100
}

// CrashWinnings settles a cashout target against the realized multiplier:
// reaching the target pays stake×(cashout−1), otherwise the stake is lost.
func CrashWinnings(cashout, multiplier, stake float64) float64 {
	if cashout <= multiplier {
		return stake * (cashout - 1)
	}
	return 0
}

// ResolveCrash parses the prediction as the cashout multiplier and settles
// the round.
func ResolveCrash(rng Rand, prediction string, stake float64) (Result, error) {
	cashout, err := strconv.ParseFloat(prediction, 64)
	if err != nil || cashout < CrashMinCashout || cashout > CrashMaxCashout {
		return Result{}, fmt.Errorf("%w: crash cashout %q", ErrInvalidPrediction, prediction)
	}
	multiplier := CrashMultiplier(rng)
	return Result{
		Outcome: fmt.Sprintf("crashed at %.2fx", multiplier),
		Payout:  CrashWinnings(cashout, multiplier, stake),
	}, nil
}
