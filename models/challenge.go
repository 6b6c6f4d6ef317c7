package models

import "time"

// ChallengeStatus tracks the PvP escrow state machine.
type ChallengeStatus string

const (
	ChallengePending  ChallengeStatus = "pending"
	ChallengeAccepted ChallengeStatus = "accepted"
	ChallengeResolved ChallengeStatus = "resolved"
	ChallengeDeclined ChallengeStatus = "declined"
	ChallengeExpired  ChallengeStatus = "expired"
)

// Challenge is an ephemeral player-vs-player dice wager. The challenger's
// stake is moved into escrow at creation; the target's stake is debited on
// accept. ChallengerNumber stays hidden from the target until resolution.
type Challenge struct {
	ID               string          `json:"id"`
	ChallengerID     int64           `json:"challenger_id"`
	TargetUsername   string          `json:"target_username"`
	TargetID         *int64          `json:"target_id,omitempty"`
	Amount           float64         `json:"amount"`
	ChallengerNumber int             `json:"-"`
	TargetNumber     int             `json:"-"`
	Status           ChallengeStatus `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Terminal reports whether the challenge has reached a final state.
func (c *Challenge) Terminal() bool {
	switch c.Status {
	case ChallengeResolved, ChallengeDeclined, ChallengeExpired:
		return true
	}
	return false
}
