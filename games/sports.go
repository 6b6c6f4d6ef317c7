package games

import "fmt"

// Fixed odds for the sports mini-games. The success probabilities are
// deliberately off 0.5 so both sides carry the house edge.
const (
	BasketballScoreChance = 0.55
	BasketballPayout      = 1.8

	SoccerGoalChance = 0.45
	SoccerPayout     = 2.0
)

// ShootBasketball samples a free throw.
func ShootBasketball(rng Rand) bool {
	return rng.Float64() < BasketballScoreChance
}

// KickPenalty samples a penalty kick.
func KickPenalty(rng Rand) bool {
	return rng.Float64() < SoccerGoalChance
}

// ResolveBasketball settles a "score"/"miss" wager on a free throw.
func ResolveBasketball(rng Rand, prediction string, stake float64) (Result, error) {
	if prediction != "score" && prediction != "miss" {
		return Result{}, fmt.Errorf("%w: basketball %q", ErrInvalidPrediction, prediction)
	}
	scored := ShootBasketball(rng)
	outcome := "miss"
	if scored {
		outcome = "score"
	}
	var payout float64
	if prediction == outcome {
		payout = stake * BasketballPayout
	}
	return Result{Outcome: outcome, Payout: payout}, nil
}

// ResolveSoccer settles a "goal"/"save" wager on a penalty kick.
func ResolveSoccer(rng Rand, prediction string, stake float64) (Result, error) {
	if prediction != "goal" && prediction != "save" {
		return Result{}, fmt.Errorf("%w: soccer %q", ErrInvalidPrediction, prediction)
	}
	goal := KickPenalty(rng)
	outcome := "save"
	if goal {
		outcome = "goal"
	}
	var payout float64
	if prediction == outcome {
		payout = stake * SoccerPayout
	}
	return Result{Outcome: outcome, Payout: payout}, nil
}
