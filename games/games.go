package games

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
)

// Rand is the uniform source injected into every resolver. *math/rand.Rand
// satisfies it; tests swap in a scripted source to force outcomes.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// lockedRand serializes access to one rand.Rand. A bare *rand.Rand is not
// safe for the concurrent resolvers the HTTP surface drives, since
// per-account locks only cover wagers on the same account.
type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewLockedRand returns a Rand backed by a single seeded source that is safe
// to share across goroutines.
func NewLockedRand(seed int64) Rand {
	return &lockedRand{src: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

// Kind identifies a supported game.
type Kind string

const (
	KindDice       Kind = "dice"
	KindCoinFlip   Kind = "coinflip"
	KindRoulette   Kind = "roulette"
	KindBlackjack  Kind = "blackjack"
	KindBasketball Kind = "basketball"
	KindSoccer     Kind = "soccer"
	KindBowling    Kind = "bowling"
	KindCrash      Kind = "crash"
)

// ErrInvalidPrediction is returned before any ledger mutation when the
// prediction string is not part of the game's outcome domain.
var ErrInvalidPrediction = errors.New("invalid prediction")

// ErrUnknownGame is returned for a Kind with no resolver.
var ErrUnknownGame = errors.New("unknown game")

// Result is the outcome of a single resolved wager. Payout is net winnings
// with the stake excluded: a win credits stake+Payout back, a push refunds
// the stake only, a loss credits nothing.
type Result struct {
	Outcome string  `json:"outcome"`
	Payout  float64 `json:"payout"`
	Push    bool    `json:"push"`
}

// Won reports whether the wager paid out.
func (r Result) Won() bool {
	return r.Payout > 0
}

// Resolve samples one outcome for the given game and applies its paytable.
// Resolvers are stateless; callers are expected to have validated the stake.
func Resolve(rng Rand, kind Kind, prediction string, stake float64) (Result, error) {
	switch kind {
	case KindDice:
		return ResolveDice(rng, prediction, stake)
	case KindCoinFlip:
		return ResolveCoinFlip(rng, prediction, stake)
	case KindRoulette:
		return ResolveRoulette(rng, prediction, stake)
	case KindBlackjack:
		return ResolveBlackjack(rng, stake)
	case KindBasketball:
		return ResolveBasketball(rng, prediction, stake)
	case KindSoccer:
		return ResolveSoccer(rng, prediction, stake)
	case KindBowling:
		return ResolveBowling(rng, prediction, stake)
	case KindCrash:
		return ResolveCrash(rng, prediction, stake)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownGame, kind)
	}
}

// ValidatePrediction checks a prediction against the game's outcome domain
// without sampling anything, so callers can reject bad input before touching
// a balance.
func ValidatePrediction(kind Kind, prediction string) error {
	ok := false
	switch kind {
	case KindDice:
		ok = validDicePrediction(prediction)
	case KindCoinFlip:
		ok = prediction == "heads" || prediction == "tails"
	case KindRoulette:
		ok = validRoulettePrediction(prediction)
	case KindBlackjack:
		ok = true // dealt hands, no prediction to make
	case KindBasketball:
		ok = prediction == "score" || prediction == "miss"
	case KindSoccer:
		ok = prediction == "goal" || prediction == "save"
	case KindBowling:
		ok = prediction == "strike" || prediction == "spare"
	case KindCrash:
		cashout, err := strconv.ParseFloat(prediction, 64)
		ok = err == nil && cashout >= CrashMinCashout && cashout <= CrashMaxCashout
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGame, kind)
	}
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrInvalidPrediction, kind, prediction)
	}
	return nil
}

// Valid reports whether the kind has a resolver.
func (k Kind) Valid() bool {
	switch k {
	case KindDice, KindCoinFlip, KindRoulette, KindBlackjack,
		KindBasketball, KindSoccer, KindBowling, KindCrash:
		return true
	}
	return false
}
