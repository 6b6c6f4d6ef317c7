package games

import (
	"fmt"
	"strconv"
	"strings"
)

// Roulette paytable multipliers (net, stake excluded).
const (
	RouletteNumberPayout = 35.0
	RouletteEvenPayout   = 1.0
	RouletteDozenPayout  = 2.0
)

var rouletteRed = map[int]struct{}{
	1: {}, 3: {}, 5: {}, 7: {}, 9: {}, 12: {}, 14: {}, 16: {}, 18: {},
	19: {}, 21: {}, 23: {}, 25: {}, 27: {}, 30: {}, 32: {}, 34: {}, 36: {},
}

// Spin samples a pocket 0..36.
func Spin(rng Rand) int {
	return rng.Intn(37)
}

// RouletteColor returns "green" for zero, otherwise "red" or "black".
func RouletteColor(n int) string {
	if n == 0 {
		return "green"
	}
	if _, ok := rouletteRed[n]; ok {
		return "red"
	}
	return "black"
}

// RoulettePayout applies the roulette paytable. Predictions: "red", "black",
// "odd", "even", "number_N" (0-36), "dozen_1".."dozen_3". Zero loses every
// color and parity bet.
func RoulettePayout(prediction string, result int, stake float64) float64 {
	switch {
	case prediction == "red" || prediction == "black":
		if RouletteColor(result) == prediction {
			return stake * RouletteEvenPayout
		}
	case prediction == "odd":
		if result != 0 && result%2 == 1 {
			return stake * RouletteEvenPayout
		}
	case prediction == "even":
		if result != 0 && result%2 == 0 {
			return stake * RouletteEvenPayout
		}
	case strings.HasPrefix(prediction, "number_"):
		if n, err := strconv.Atoi(strings.TrimPrefix(prediction, "number_")); err == nil && n == result {
			return stake * RouletteNumberPayout
		}
	case strings.HasPrefix(prediction, "dozen_"):
		d, err := strconv.Atoi(strings.TrimPrefix(prediction, "dozen_"))
		if err == nil && result >= (d-1)*12+1 && result <= d*12 {
			return stake * RouletteDozenPayout
		}
	}
	return 0
}

func validRoulettePrediction(prediction string) bool {
	switch prediction {
	case "red", "black", "odd", "even":
		return true
	}
	if strings.HasPrefix(prediction, "number_") {
		n, err := strconv.Atoi(strings.TrimPrefix(prediction, "number_"))
		return err == nil && n >= 0 && n <= 36
	}
	if strings.HasPrefix(prediction, "dozen_") {
		d, err := strconv.Atoi(strings.TrimPrefix(prediction, "dozen_"))
		return err == nil && d >= 1 && d <= 3
	}
	return false
}

// ResolveRoulette spins once and settles the wager.
func ResolveRoulette(rng Rand, prediction string, stake float64) (Result, error) {
	if !validRoulettePrediction(prediction) {
		return Result{}, fmt.Errorf("%w: roulette %q", ErrInvalidPrediction, prediction)
	}
	result := Spin(rng)
	return Result{
		Outcome: fmt.Sprintf("%d %s", result, RouletteColor(result)),
		Payout:  RoulettePayout(prediction, result, stake),
	}, nil
}
