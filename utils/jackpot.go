package utils

import (
	"log"

	"antaria-go/models"
)

// JackpotManager runs the progressive bowling jackpot: a fixed fraction of
// every bowling stake feeds the pool, three consecutive strikes win it, and
// the pool resets to its seed after a win.
type JackpotManager struct {
	store *Store
}

// NewJackpotManager wires the manager to the store that owns the pool.
func NewJackpotManager(store *Store) *JackpotManager {
	return &JackpotManager{store: store}
}

// Pool returns the current pool value.
func (jm *JackpotManager) Pool() float64 {
	return jm.store.JackpotPool()
}

// Contribute applies the contribution fraction exactly once for a wager and
// returns the new pool.
func (jm *JackpotManager) Contribute(stake float64) float64 {
	pool := jm.store.ContributeJackpot(RoundCents(stake * JackpotContribution))
	SetJackpotGauge(pool)
	return pool
}

// recordStrike updates the account's consecutive-strike run for a bowling
// outcome and, on the third strike, pays out the pool. Returns the amount
// won (zero when the run continues or breaks). Runs inside the account's
// critical section.
func (jm *JackpotManager) recordStrike(a *models.Account, outcome string) float64 {
	if outcome != "strike" {
		a.StrikeRun = 0
		return 0
	}
	a.StrikeRun++
	if a.StrikeRun < JackpotStrikesNeeded {
		return 0
	}

	won := jm.store.TakeJackpot()
	a.StrikeRun = 0
	a.JackpotWins++
	a.Balance = RoundCents(a.Balance + won)
	SetJackpotGauge(jm.store.JackpotPool())
	log.Printf("[jackpot] account %d hit %d strikes and won %.2f", a.ID, JackpotStrikesNeeded, won)
	return won
}
