package games

import (
	"errors"
	"sync"
	"testing"
)

// scriptedRand replays fixed values so resolvers produce known outcomes.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (s *scriptedRand) Intn(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRand) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func TestDicePayout(t *testing.T) {
	tests := []struct {
		prediction string
		roll       int
		want       float64
	}{
		{"3", 3, 50.0},  // exact 5:1
		{"3", 4, 0},
		{"high", 4, 15.0},
		{"high", 3, 0},
		{"low", 1, 15.0},
		{"even", 4, 10.0},
		{"even", 3, 0},
		{"odd", 5, 10.0},
	}
	for _, tt := range tests {
		got := DicePayout(tt.prediction, tt.roll, 10.0)
		if got != tt.want {
			t.Errorf("DicePayout(%q, %d): expected %.1f, got %.1f", tt.prediction, tt.roll, tt.want, got)
		}
	}
}

func TestResolveDiceForcedRoll(t *testing.T) {
	// Intn(6)=2 makes the roll a 3.
	rng := &scriptedRand{ints: []int{2}}
	res, err := ResolveDice(rng, "low", 10.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Outcome != "3" {
		t.Errorf("Expected outcome '3', got %q", res.Outcome)
	}
	if res.Payout != 15.0 {
		t.Errorf("Expected payout 15.0, got %.2f", res.Payout)
	}
}

func TestResolveDiceInvalidPrediction(t *testing.T) {
	_, err := ResolveDice(&scriptedRand{ints: []int{0}}, "seven", 10.0)
	if !errors.Is(err, ErrInvalidPrediction) {
		t.Errorf("Expected ErrInvalidPrediction, got %v", err)
	}
}

func TestCoinFlipWinnings(t *testing.T) {
	if got := CoinFlipWinnings("heads", "heads", 10.0); got != 10.0 {
		t.Errorf("Expected 10.0 on a correct call, got %.2f", got)
	}
	if got := CoinFlipWinnings("heads", "tails", 10.0); got != 0 {
		t.Errorf("Expected 0 on a wrong call, got %.2f", got)
	}
}

func TestResolveCoinFlipForced(t *testing.T) {
	rng := &scriptedRand{ints: []int{0}} // heads
	res, err := ResolveCoinFlip(rng, "heads", 10.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Outcome != "heads" || !res.Won() {
		t.Errorf("Expected a heads win, got outcome %q payout %.2f", res.Outcome, res.Payout)
	}
}

func TestRoulettePayout(t *testing.T) {
	tests := []struct {
		prediction string
		result     int
		want       float64
	}{
		{"number_17", 17, 350.0},
		{"number_17", 16, 0},
		{"red", 1, 10.0},
		{"red", 2, 0},   // 2 is black
		{"red", 0, 0},   // zero loses color bets
		{"black", 0, 0},
		{"even", 0, 0},  // zero is neither parity
		{"odd", 0, 0},
		{"even", 4, 10.0},
		{"dozen_1", 12, 20.0},
		{"dozen_2", 13, 20.0},
		{"dozen_2", 12, 0},
		{"dozen_3", 36, 20.0},
	}
	for _, tt := range tests {
		got := RoulettePayout(tt.prediction, tt.result, 10.0)
		if got != tt.want {
			t.Errorf("RoulettePayout(%q, %d): expected %.1f, got %.1f", tt.prediction, tt.result, tt.want, got)
		}
	}
}

func TestResolveRouletteZero(t *testing.T) {
	rng := &scriptedRand{ints: []int{0}}
	res, err := ResolveRoulette(rng, "red", 10.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Outcome != "0 green" {
		t.Errorf("Expected outcome '0 green', got %q", res.Outcome)
	}
	if res.Won() {
		t.Error("Expected zero to lose a red bet")
	}
}

func TestHandValueAceDemotion(t *testing.T) {
	tests := []struct {
		cards []string
		want  int
	}{
		{[]string{"A", "K"}, 21},
		{[]string{"A", "A", "9"}, 21},
		{[]string{"A", "A"}, 12},
		{[]string{"K", "Q", "5"}, 25},
		{[]string{"A", "5"}, 16},
	}
	for _, tt := range tests {
		if got := HandValue(tt.cards); got != tt.want {
			t.Errorf("HandValue(%v): expected %d, got %d", tt.cards, tt.want, got)
		}
	}
}

func TestResolveBlackjackNatural(t *testing.T) {
	// Card indices: A=0, 5=4, 9=8, K=12. Player K+A natural, dealer 9+5.
	rng := &scriptedRand{ints: []int{12, 0, 8, 4}}
	res, err := ResolveBlackjack(rng, 10.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Outcome != "blackjack" {
		t.Errorf("Expected outcome 'blackjack', got %q", res.Outcome)
	}
	if res.Payout != 15.0 {
		t.Errorf("Expected 3:2 payout 15.0, got %.2f", res.Payout)
	}
}

func TestResolveBlackjackDoubleNaturalPush(t *testing.T) {
	rng := &scriptedRand{ints: []int{0, 12, 12, 0}}
	res, err := ResolveBlackjack(rng, 10.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !res.Push {
		t.Errorf("Expected a push, got outcome %q payout %.2f", res.Outcome, res.Payout)
	}
	if res.Payout != 0 {
		t.Errorf("Expected zero payout on a push, got %.2f", res.Payout)
	}
}

func TestBowlRollBands(t *testing.T) {
	tests := []struct {
		r    float64
		want string
	}{
		{0.05, "strike"},
		{0.30, "spare"},
		{0.90, "miss"},
	}
	for _, tt := range tests {
		rng := &scriptedRand{floats: []float64{tt.r}}
		if got := BowlRoll(rng); got != tt.want {
			t.Errorf("BowlRoll at %.2f: expected %q, got %q", tt.r, tt.want, got)
		}
	}
}

func TestBowlingPayout(t *testing.T) {
	if got := BowlingPayout("strike", "strike", 10.0); got != 200.0 {
		t.Errorf("Expected strike to pay 200.0, got %.2f", got)
	}
	if got := BowlingPayout("strike", "spare", 10.0); got != 0 {
		t.Errorf("Expected predicted strike on a spare to pay 0, got %.2f", got)
	}
	if got := BowlingPayout("spare", "miss", 10.0); got != 10.0 {
		t.Errorf("Expected predicted spare on a miss to pay 10.0, got %.2f", got)
	}
	if got := BowlingPayout("spare", "strike", 10.0); got != 0 {
		t.Errorf("Expected predicted spare on a strike to pay 0, got %.2f", got)
	}
}

func TestCrashMultiplierBands(t *testing.T) {
	// First float picks the band, second interpolates inside it.
	rng := &scriptedRand{floats: []float64{0.95, 0.5}}
	got := CrashMultiplier(rng)
	if got != 30.0 { // 10 + 0.5*40
		t.Errorf("Expected multiplier 30.0 in the top band, got %.2f", got)
	}
}

func TestCrashWinnings(t *testing.T) {
	if got := CrashWinnings(2.0, 3.0, 10.0); got != 10.0 {
		t.Errorf("Expected cashout below the crash to pay 10.0, got %.2f", got)
	}
	if got := CrashWinnings(2.0, 1.5, 10.0); got != 0 {
		t.Errorf("Expected cashout above the crash to pay 0, got %.2f", got)
	}
	if got := CrashWinnings(3.0, 3.0, 10.0); got != 20.0 {
		t.Errorf("Expected cashout equal to the crash to pay 20.0, got %.2f", got)
	}
}

func TestResolveCrashRejectsBadCashout(t *testing.T) {
	for _, bad := range []string{"", "abc", "1.0", "51"} {
		_, err := ResolveCrash(&scriptedRand{floats: []float64{0, 0}}, bad, 10.0)
		if !errors.Is(err, ErrInvalidPrediction) {
			t.Errorf("Expected ErrInvalidPrediction for %q, got %v", bad, err)
		}
	}
}

func TestResolveBasketballForced(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.5}} // under 0.55: score
	res, err := ResolveBasketball(rng, "score", 10.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Outcome != "score" || res.Payout != 18.0 {
		t.Errorf("Expected a score paying 18.0, got outcome %q payout %.2f", res.Outcome, res.Payout)
	}
}

func TestResolveSoccerForced(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.5}} // over 0.45: save
	res, err := ResolveSoccer(rng, "save", 10.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Outcome != "save" || res.Payout != 20.0 {
		t.Errorf("Expected a save paying 20.0, got outcome %q payout %.2f", res.Outcome, res.Payout)
	}
}

func TestValidatePrediction(t *testing.T) {
	valid := []struct {
		kind       Kind
		prediction string
	}{
		{KindDice, "high"}, {KindDice, "6"},
		{KindCoinFlip, "tails"},
		{KindRoulette, "number_0"}, {KindRoulette, "dozen_3"},
		{KindBlackjack, ""},
		{KindBasketball, "miss"},
		{KindSoccer, "goal"},
		{KindBowling, "spare"},
		{KindCrash, "2.5"},
	}
	for _, tt := range valid {
		if err := ValidatePrediction(tt.kind, tt.prediction); err != nil {
			t.Errorf("Expected %s %q to validate, got %v", tt.kind, tt.prediction, err)
		}
	}

	invalid := []struct {
		kind       Kind
		prediction string
	}{
		{KindDice, "7"},
		{KindCoinFlip, "edge"},
		{KindRoulette, "number_37"},
		{KindRoulette, "dozen_4"},
		{KindBowling, "gutter"},
		{KindCrash, "0.5"},
	}
	for _, tt := range invalid {
		if err := ValidatePrediction(tt.kind, tt.prediction); !errors.Is(err, ErrInvalidPrediction) {
			t.Errorf("Expected ErrInvalidPrediction for %s %q, got %v", tt.kind, tt.prediction, err)
		}
	}
	if err := ValidatePrediction(Kind("poker"), "flush"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Expected ErrUnknownGame, got %v", err)
	}
}

func TestLockedRandConcurrentUse(t *testing.T) {
	rng := NewLockedRand(7)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if n := rng.Intn(6); n < 0 || n > 5 {
					t.Errorf("Expected Intn(6) in [0,6), got %d", n)
					return
				}
				if f := rng.Float64(); f < 0 || f >= 1 {
					t.Errorf("Expected Float64 in [0,1), got %f", f)
					return
				}
			}
		}()
	}
	wg.Wait()
}
