package utils

import (
	"testing"

	"antaria-go/models"
)

func TestSessionRegistry(t *testing.T) {
	sr := NewSessionRegistry()

	if _, ok := sr.Pop(1); ok {
		t.Error("Expected no pending action for a fresh account")
	}

	sr.Set(1, models.AwaitingStake{Game: "dice", Prediction: "high"})
	action, ok := sr.Peek(1)
	if !ok {
		t.Fatal("Expected a pending action after Set")
	}
	if awaiting, ok := action.(models.AwaitingStake); !ok || awaiting.Game != "dice" {
		t.Errorf("Expected an AwaitingStake for dice, got %#v", action)
	}

	// Set replaces the previous action.
	sr.Set(1, models.AwaitingChallengeResponse{ChallengeID: "abc"})
	action, _ = sr.Pop(1)
	if _, ok := action.(models.AwaitingChallengeResponse); !ok {
		t.Errorf("Expected the replacement action, got %#v", action)
	}

	if _, ok := sr.Pop(1); ok {
		t.Error("Expected Pop to consume the action")
	}

	sr.Set(2, models.AwaitingStake{Game: "crash", Prediction: "2.0"})
	sr.Clear(2)
	if _, ok := sr.Peek(2); ok {
		t.Error("Expected Clear to drop the action")
	}
}
