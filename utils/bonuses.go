package utils

import (
	"log"
	"time"

	"antaria-go/games"
	"antaria-go/models"
)

// BonusResult reports the outcome of a daily bonus claim.
type BonusResult struct {
	Success       bool               `json:"success"`
	Amount        float64            `json:"amount,omitempty"`
	StreakBonus   float64            `json:"streak_bonus,omitempty"`
	Streak        int                `json:"streak"`
	Balance       float64            `json:"balance"`
	TimeRemaining time.Duration      `json:"time_remaining,omitempty"`
	NextAvailable time.Time          `json:"next_available"`
	Unlocked      []AchievementAward `json:"unlocked,omitempty"`
}

// BonusManager governs the daily bonus, streaks and the locked-bonus
// playthrough gate.
type BonusManager struct {
	store *Store
	rng   games.Rand
	now   func() time.Time
}

// NewBonusManager wires the manager to a store and an injectable uniform
// source and clock.
func NewBonusManager(store *Store, rng games.Rand) *BonusManager {
	return &BonusManager{store: store, rng: rng, now: time.Now}
}

// ClaimDaily pays the daily bonus once per rolling 24h window. A claim
// inside the 24-48h window since the previous one extends the streak;
// anything later restarts it. Reaching the streak threshold pays a flat
// reward and resets the counter.
func (bm *BonusManager) ClaimDaily(id int64) (*BonusResult, error) {
	result := &BonusResult{}
	err := bm.store.WithAccount(id, func(a *models.Account) error {
		now := bm.now()

		if a.LastBonus != nil {
			since := now.Sub(*a.LastBonus)
			if since < BonusCooldown {
				result.Success = false
				result.Streak = a.BonusStreak
				result.Balance = a.Balance
				result.TimeRemaining = BonusCooldown - since
				result.NextAvailable = a.LastBonus.Add(BonusCooldown)
				return nil
			}
			if since <= BonusStreakGrace {
				a.BonusStreak++
			} else {
				a.BonusStreak = 1
			}
		} else {
			a.BonusStreak = 1
		}
		if a.BonusStreak > a.MaxBonusStreak {
			a.MaxBonusStreak = a.BonusStreak
		}

		amount := RoundCents(DailyBonusMin + bm.rng.Float64()*(DailyBonusMax-DailyBonusMin))
		a.Balance = RoundCents(a.Balance + amount)

		var streakBonus float64
		if a.BonusStreak >= StreakRewardDays {
			streakBonus = StreakRewardFlat
			a.Balance = RoundCents(a.Balance + streakBonus)
			a.BonusStreak = 0
		}

		a.LastBonus = &now

		result.Success = true
		result.Amount = amount
		result.StreakBonus = streakBonus
		result.Streak = a.BonusStreak
		result.NextAvailable = now.Add(BonusCooldown)
		result.Unlocked = EvaluateAchievements(a)
		result.Balance = a.Balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Success {
		log.Printf("[bonus] account %d claimed daily bonus: %.2f (streak %d)", id, result.Amount, result.Streak)
	}
	return result, nil
}

// GrantLockedBonus credits amount immediately (spendable) while raising the
// playthrough requirement that gates withdrawals: amount × multiple must be
// wagered before the account can cash out.
func (bm *BonusManager) GrantLockedBonus(id int64, amount, playthroughMultiple float64) (*models.Account, error) {
	if amount <= 0 || playthroughMultiple < 0 {
		return nil, ErrInvalidStake
	}
	var out *models.Account
	err := bm.store.WithAccount(id, func(a *models.Account) error {
		a.Balance = RoundCents(a.Balance + amount)
		a.BonusLocked = RoundCents(a.BonusLocked + amount)
		a.PlaythroughRequired = RoundCents(a.PlaythroughRequired + amount*playthroughMultiple)
		EvaluateAchievements(a)
		out = a.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[bonus] account %d granted locked bonus %.2f (playthrough %.2f)", id, amount, out.PlaythroughRequired)
	return out, nil
}

// recordPlaythrough accrues wager volume against the playthrough gate.
// Called inside the account critical section of a wager.
func recordPlaythrough(a *models.Account, wagered float64) {
	if a.PlaythroughRequired > 0 {
		a.BonusWagered = RoundCents(a.BonusWagered + wagered)
	}
}
