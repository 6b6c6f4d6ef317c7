package utils

import (
	"testing"

	"antaria-go/models"
)

func TestEvaluateAchievementsAwardsOnce(t *testing.T) {
	a := &models.Account{Balance: 500, GamesPlayed: 1, Achievements: []string{}}

	unlocked := EvaluateAchievements(a)
	if len(unlocked) != 1 || unlocked[0].ID != "first_bet" {
		t.Fatalf("Expected [first_bet], got %v", unlocked)
	}
	if a.Balance != 510 {
		t.Errorf("Expected the 10.00 reward credited, balance %.2f", a.Balance)
	}

	// Same state, second evaluation: nothing new.
	if again := EvaluateAchievements(a); len(again) != 0 {
		t.Errorf("Expected no repeat awards, got %v", again)
	}
	if a.Balance != 510 {
		t.Errorf("Expected balance unchanged on re-evaluation, got %.2f", a.Balance)
	}
}

func TestEvaluateAchievementsMultipleAtOnce(t *testing.T) {
	a := &models.Account{
		Balance:      20000,
		GamesPlayed:  150,
		BiggestBet:   2500,
		WinStreak:    8,
		Achievements: []string{},
	}

	unlocked := EvaluateAchievements(a)
	ids := make(map[string]bool, len(unlocked))
	for _, award := range unlocked {
		ids[award.ID] = true
	}
	for _, want := range []string{"first_bet", "high_roller", "lucky_7", "veteran", "whale"} {
		if !ids[want] {
			t.Errorf("Expected %s to unlock, got %v", want, unlocked)
		}
	}
	if ids["jackpot_winner"] || ids["streak_master"] {
		t.Errorf("Unexpected awards in %v", unlocked)
	}
}

func TestAchievementByID(t *testing.T) {
	ach, ok := AchievementByID("whale")
	if !ok || ach.Reward != 1000 {
		t.Errorf("Expected the whale award with reward 1000, got %+v ok=%v", ach, ok)
	}
	if _, ok := AchievementByID("nope"); ok {
		t.Error("Expected a miss for an unknown id")
	}
}
