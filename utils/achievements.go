package utils

import (
	"antaria-go/models"
)

// Achievement is a one-time award with a threshold predicate over account
// state and a fixed balance reward.
type Achievement struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Reward      float64 `json:"reward"`

	// Check is a pure predicate over the account; every predicate is
	// monotone-crossing, so once true it stays true for idempotence
	// purposes (membership in Achievements is the real guard).
	Check func(a *models.Account) bool `json:"-"`
}

// AchievementAward reports a newly unlocked achievement.
type AchievementAward struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Reward float64 `json:"reward"`
}

// Achievements is the fixed award set.
var Achievements = []Achievement{
	{
		ID: "first_bet", Name: "🎲 First Bet",
		Description: "Place your first bet", Reward: 10,
		Check: func(a *models.Account) bool { return a.GamesPlayed >= 1 },
	},
	{
		ID: "high_roller", Name: "💎 High Roller",
		Description: "Bet $1,000 in a single game", Reward: 100,
		Check: func(a *models.Account) bool { return a.BiggestBet >= 1000 },
	},
	{
		ID: "lucky_7", Name: "🍀 Lucky Seven",
		Description: "Win 7 games in a row", Reward: 77,
		Check: func(a *models.Account) bool { return a.WinStreak >= 7 },
	},
	{
		ID: "jackpot_winner", Name: "🏆 Jackpot Winner",
		Description: "Win the bowling jackpot", Reward: 500,
		Check: func(a *models.Account) bool { return a.JackpotWins >= 1 },
	},
	{
		ID: "veteran", Name: "⭐ Veteran",
		Description: "Play 100 games", Reward: 200,
		Check: func(a *models.Account) bool { return a.GamesPlayed >= 100 },
	},
	{
		ID: "whale", Name: "🐋 Whale",
		Description: "Reach $10,000 balance", Reward: 1000,
		Check: func(a *models.Account) bool { return a.Balance >= 10000 },
	},
	{
		ID: "streak_master", Name: "🔥 Streak Master",
		Description: "10-day bonus streak", Reward: 500,
		Check: func(a *models.Account) bool { return a.MaxBonusStreak >= StreakRewardDays },
	},
}

// AchievementByID looks up an award definition.
func AchievementByID(id string) (Achievement, bool) {
	for _, ach := range Achievements {
		if ach.ID == id {
			return ach, true
		}
	}
	return Achievement{}, false
}

// EvaluateAchievements awards every achievement whose predicate now holds
// and has not been unlocked yet, crediting each fixed reward. The caller
// must hold the account's critical section; the membership check makes a
// second evaluation of the same state a no-op.
func EvaluateAchievements(a *models.Account) []AchievementAward {
	var unlocked []AchievementAward
	for _, ach := range Achievements {
		if a.HasAchievement(ach.ID) || !ach.Check(a) {
			continue
		}
		a.Achievements = append(a.Achievements, ach.ID)
		a.Balance = RoundCents(a.Balance + ach.Reward)
		unlocked = append(unlocked, AchievementAward{ID: ach.ID, Name: ach.Name, Reward: ach.Reward})
	}
	return unlocked
}
