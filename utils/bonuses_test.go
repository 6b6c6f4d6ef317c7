package utils

import (
	"testing"
	"time"

	"antaria-go/models"
)

func newTestBonusManager(t *testing.T, rng *fixedRand) (*BonusManager, *Store) {
	t.Helper()
	store := newTestStore(t)
	return NewBonusManager(store, rng), store
}

func TestClaimDailyFirstClaim(t *testing.T) {
	// Float64()=0.5 lands the bonus mid-range: 10 + 0.5*90 = 55.
	bm, store := newTestBonusManager(t, &fixedRand{floats: []float64{0.5}})

	result, err := bm.ClaimDaily(1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatal("Expected the first claim to succeed")
	}
	if result.Amount != 55.0 {
		t.Errorf("Expected bonus 55.00, got %.2f", result.Amount)
	}
	if result.Streak != 1 {
		t.Errorf("Expected streak 1, got %d", result.Streak)
	}

	acct, _ := store.Get(1)
	if acct.Balance != StartingBalance+55.0 {
		t.Errorf("Expected balance %.2f, got %.2f", StartingBalance+55.0, acct.Balance)
	}
	if acct.LastBonus == nil {
		t.Error("Expected LastBonus to be stamped")
	}
}

func TestClaimDailyCooldown(t *testing.T) {
	bm, _ := newTestBonusManager(t, &fixedRand{floats: []float64{0.5, 0.5}})
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	bm.now = func() time.Time { return current }

	if _, err := bm.ClaimDaily(1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	current = current.Add(23 * time.Hour)
	result, err := bm.ClaimDaily(1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Success {
		t.Fatal("Expected the claim to be refused inside the cooldown")
	}
	if result.TimeRemaining != time.Hour {
		t.Errorf("Expected 1h remaining, got %s", result.TimeRemaining)
	}
	if !result.NextAvailable.Equal(current.Add(time.Hour)) {
		t.Errorf("Expected next available in 1h, got %s", result.NextAvailable)
	}
}

func TestClaimDailyStreakGraceAndReset(t *testing.T) {
	bm, _ := newTestBonusManager(t, &fixedRand{floats: []float64{0.5, 0.5, 0.5}})
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	bm.now = func() time.Time { return current }

	if _, err := bm.ClaimDaily(1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 30h later: inside the 48h grace window, the streak extends.
	current = current.Add(30 * time.Hour)
	result, _ := bm.ClaimDaily(1)
	if result.Streak != 2 {
		t.Errorf("Expected streak 2 inside grace, got %d", result.Streak)
	}

	// 72h later: the streak restarts.
	current = current.Add(72 * time.Hour)
	result, _ = bm.ClaimDaily(1)
	if result.Streak != 1 {
		t.Errorf("Expected streak reset to 1, got %d", result.Streak)
	}
}

func TestClaimDailyStreakReward(t *testing.T) {
	floats := make([]float64, StreakRewardDays)
	for i := range floats {
		floats[i] = 0.0 // minimum bonus each day
	}
	bm, store := newTestBonusManager(t, &fixedRand{floats: floats})
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	bm.now = func() time.Time { return current }

	var result *BonusResult
	var err error
	for day := 0; day < StreakRewardDays; day++ {
		result, err = bm.ClaimDaily(1)
		if err != nil {
			t.Fatalf("Day %d claim failed: %v", day+1, err)
		}
		current = current.Add(24 * time.Hour)
	}

	if result.StreakBonus != StreakRewardFlat {
		t.Errorf("Expected streak reward %.2f, got %.2f", StreakRewardFlat, result.StreakBonus)
	}
	if result.Streak != 0 {
		t.Errorf("Expected streak counter reset after the reward, got %d", result.Streak)
	}
	if !hasAward(result.Unlocked, "streak_master") {
		t.Errorf("Expected streak_master to unlock, got %v", result.Unlocked)
	}

	acct, _ := store.Get(1)
	if acct.MaxBonusStreak != StreakRewardDays {
		t.Errorf("Expected max bonus streak %d, got %d", StreakRewardDays, acct.MaxBonusStreak)
	}
	want := StartingBalance + float64(StreakRewardDays)*DailyBonusMin + StreakRewardFlat + 500 // +streak_master reward
	if acct.Balance != want {
		t.Errorf("Expected balance %.2f, got %.2f", want, acct.Balance)
	}
}

func TestGrantLockedBonus(t *testing.T) {
	bm, _ := newTestBonusManager(t, &fixedRand{})

	acct, err := bm.GrantLockedBonus(1, 200.0, 2.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if acct.Balance != StartingBalance+200.0 {
		t.Errorf("Expected the bonus spendable immediately, balance %.2f", acct.Balance)
	}
	if acct.BonusLocked != 200.0 || acct.PlaythroughRequired != 400.0 {
		t.Errorf("Expected locked 200 with playthrough 400, got %.2f / %.2f",
			acct.BonusLocked, acct.PlaythroughRequired)
	}
	if acct.Withdrawable() {
		t.Error("Expected the playthrough gate closed")
	}

	if _, err := bm.GrantLockedBonus(1, -5, 1); err == nil {
		t.Error("Expected an error for a negative grant")
	}
}

func TestRecordPlaythroughOnlyWhileGated(t *testing.T) {
	a := &models.Account{}
	recordPlaythrough(a, 50)
	if a.BonusWagered != 0 {
		t.Errorf("Expected no accrual without a requirement, got %.2f", a.BonusWagered)
	}

	a.PlaythroughRequired = 100
	recordPlaythrough(a, 50)
	recordPlaythrough(a, 49.99)
	if a.BonusWagered != 99.99 {
		t.Errorf("Expected 99.99 accrued, got %.2f", a.BonusWagered)
	}
	if a.Withdrawable() {
		t.Error("Expected 99.99 of 100 to stay gated")
	}
	recordPlaythrough(a, 0.01)
	if !a.Withdrawable() {
		t.Error("Expected the gate to open at exactly the requirement")
	}
}
