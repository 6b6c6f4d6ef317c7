package models

// PendingAction is the closed set of per-user interaction states the
// presentation layer can park between two inbound events. Using a sealed
// sum type instead of a string-keyed state bag keeps dispatch exhaustive.
type PendingAction interface {
	pendingAction()
}

// AwaitingStake means the user picked a game and a prediction and the next
// inbound message carries the stake.
type AwaitingStake struct {
	Game       string `json:"game"`
	Prediction string `json:"prediction"`
}

// AwaitingChallengeResponse means the user was challenged and the next
// inbound event is an accept or decline.
type AwaitingChallengeResponse struct {
	ChallengeID string `json:"challenge_id"`
}

func (AwaitingStake) pendingAction()             {}
func (AwaitingChallengeResponse) pendingAction() {}
