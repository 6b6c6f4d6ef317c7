package utils

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"antaria-go/games"
	"antaria-go/models"
)

// ChallengeManager runs the PvP dice duels. Each side calls a number; one
// shared die is rolled at acceptance and the stake pot goes to whoever
// called it. The challenger's stake moves into escrow at creation,
// acceptance escrows the target's stake and settles immediately. Terminal
// challenges are dropped from the map, so it only ever holds open escrow.
type ChallengeManager struct {
	mu         sync.Mutex
	challenges map[string]*models.Challenge
	store      *Store
	rng        games.Rand
	now        func() time.Time
}

func NewChallengeManager(store *Store, rng games.Rand) *ChallengeManager {
	return &ChallengeManager{
		challenges: make(map[string]*models.Challenge),
		store:      store,
		rng:        rng,
		now:        time.Now,
	}
}

// ChallengeOutcome reports a settled (or declined) challenge. The numbers
// both sides called stay hidden until here.
type ChallengeOutcome struct {
	Challenge        models.Challenge `json:"challenge"`
	ChallengerNumber int              `json:"challenger_number,omitempty"`
	TargetNumber     int              `json:"target_number,omitempty"`
	Roll             int              `json:"roll,omitempty"`
	WinnerID         *int64           `json:"winner_id,omitempty"`
	Pot              float64          `json:"pot,omitempty"`
	Draw             bool             `json:"draw,omitempty"`
}

// Create opens a challenge against targetUsername, escrowing the
// challenger's stake and recording their called number (kept hidden from
// the target until resolution). The target is bound by id at accept time.
func (cm *ChallengeManager) Create(challengerID int64, targetUsername string, amount float64, number int) (*models.Challenge, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidStake, amount)
	}
	if number < 1 || number > 6 {
		return nil, fmt.Errorf("%w: dice call %d", games.ErrInvalidPrediction, number)
	}
	amount = RoundCents(amount)

	if err := cm.store.Debit(challengerID, amount); err != nil {
		return nil, err
	}

	c := &models.Challenge{
		ID:               uuid.NewString(),
		ChallengerID:     challengerID,
		TargetUsername:   targetUsername,
		Amount:           amount,
		ChallengerNumber: number,
		Status:           models.ChallengePending,
		CreatedAt:        cm.now(),
	}

	cm.mu.Lock()
	cm.challenges[c.ID] = c
	cm.mu.Unlock()

	log.Printf("[challenge] %s: %d staked %.2f against %q", c.ID, challengerID, amount, targetUsername)
	out := *c
	return &out, nil
}

// Get returns a copy of an open challenge.
func (cm *ChallengeManager) Get(id string) (*models.Challenge, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	c, ok := cm.challenges[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChallengeNotFound, id)
	}
	out := *c
	return &out, nil
}

// Open returns copies of every non-terminal challenge, for the collaborator
// surface to list.
func (cm *ChallengeManager) Open() []models.Challenge {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	out := make([]models.Challenge, 0, len(cm.challenges))
	for _, c := range cm.challenges {
		out = append(out, *c)
	}
	return out
}

// Respond settles a pending challenge. Declining refunds the challenger.
// Accepting escrows the target's matching stake and rolls one shared die:
// the side whose called number matches the roll takes the whole pot; both
// or neither matching is a draw and refunds both stakes.
func (cm *ChallengeManager) Respond(id string, targetID int64, targetUsername string, accept bool, number int) (*ChallengeOutcome, error) {
	cm.mu.Lock()
	c, ok := cm.challenges[id]
	if !ok {
		cm.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrChallengeNotFound, id)
	}
	if c.TargetUsername != targetUsername {
		cm.mu.Unlock()
		return nil, ErrNotChallengeTarget
	}
	if targetID == c.ChallengerID {
		cm.mu.Unlock()
		return nil, ErrSelfChallenge
	}
	if accept && (number < 1 || number > 6) {
		cm.mu.Unlock()
		return nil, fmt.Errorf("%w: dice call %d", games.ErrInvalidPrediction, number)
	}
	// Removing the challenge while the lock is still held makes the refund
	// exactly-once: a concurrent ExpireStale sweep can no longer find it.
	delete(cm.challenges, id)
	cm.mu.Unlock()

	if cm.now().Sub(c.CreatedAt) > ChallengeTimeout {
		c.Status = models.ChallengeExpired
		cm.refund(c)
		return nil, fmt.Errorf("%w: %s", ErrChallengeExpired, id)
	}

	if !accept {
		c.Status = models.ChallengeDeclined
		cm.refund(c)
		return &ChallengeOutcome{Challenge: *c}, nil
	}

	if err := cm.store.Debit(targetID, c.Amount); err != nil {
		// Target cannot cover the stake; the challenge stays open.
		cm.mu.Lock()
		cm.challenges[id] = c
		cm.mu.Unlock()
		return nil, err
	}

	c.Status = models.ChallengeAccepted
	c.TargetID = &targetID
	c.TargetNumber = number
	roll := games.RollDie(cm.rng)

	out := &ChallengeOutcome{
		Challenge:        *c,
		ChallengerNumber: c.ChallengerNumber,
		TargetNumber:     c.TargetNumber,
		Roll:             roll,
		Pot:              RoundCents(c.Amount * 2),
	}

	challengerHit := c.ChallengerNumber == roll
	targetHit := c.TargetNumber == roll
	switch {
	case challengerHit != targetHit:
		winner := c.ChallengerID
		if targetHit {
			winner = targetID
		}
		out.WinnerID = &winner
		if _, err := cm.store.Credit(winner, out.Pot); err != nil {
			return nil, err
		}
		log.Printf("[challenge] %s: %d wins %.2f (rolled %d, called %d vs %d)",
			c.ID, winner, out.Pot, roll, c.ChallengerNumber, c.TargetNumber)
	default:
		// Both hit (same call) or both missed.
		out.Draw = true
		out.Pot = 0
		err := cm.store.WithAccounts(c.ChallengerID, targetID, func(a, b *models.Account) error {
			a.Balance = RoundCents(a.Balance + c.Amount)
			b.Balance = RoundCents(b.Balance + c.Amount)
			return nil
		})
		if err != nil {
			return nil, err
		}
		log.Printf("[challenge] %s: draw (rolled %d, called %d vs %d), both stakes refunded",
			c.ID, roll, c.ChallengerNumber, c.TargetNumber)
	}

	c.Status = models.ChallengeResolved
	out.Challenge = *c
	return out, nil
}

// ExpireStale refunds and removes pending challenges older than
// ChallengeTimeout. Run periodically by the scheduler.
func (cm *ChallengeManager) ExpireStale() int {
	cutoff := cm.now().Add(-ChallengeTimeout)

	cm.mu.Lock()
	var stale []*models.Challenge
	for id, c := range cm.challenges {
		if c.Status == models.ChallengePending && c.CreatedAt.Before(cutoff) {
			stale = append(stale, c)
			delete(cm.challenges, id)
		}
	}
	cm.mu.Unlock()

	for _, c := range stale {
		c.Status = models.ChallengeExpired
		cm.refund(c)
	}
	return len(stale)
}

// refund returns the escrowed stake to the challenger of a terminal
// challenge. The caller must already have removed it from the map.
func (cm *ChallengeManager) refund(c *models.Challenge) {
	if _, err := cm.store.Credit(c.ChallengerID, c.Amount); err != nil {
		log.Printf("[challenge] %s: refund of %.2f to %d failed: %v", c.ID, c.Amount, c.ChallengerID, err)
		return
	}
	log.Printf("[challenge] %s: %s, %.2f refunded to %d", c.ID, c.Status, c.Amount, c.ChallengerID)
}
