package utils

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"antaria-go/models"
)

// Store holds every account plus the process-wide jackpot pool and global
// stats. It is the single mutation point for balances: callers change
// account state through WithAccount/WithAccounts so each account behaves
// as an independently lockable unit, and two-account operations always
// lock in ascending id order.
//
// Lock ordering: account mutexes first (ascending), then the store mutex.
// Snapshot() never holds the store mutex while acquiring account mutexes.
type Store struct {
	mu       sync.RWMutex
	accounts map[int64]*models.Account
	locks    map[int64]*sync.Mutex
	jackpot  float64
	stats    models.GlobalStats

	path string
	now  func() time.Time
}

// NewStore creates an empty store persisted at path.
func NewStore(path string) *Store {
	return &Store{
		accounts: make(map[int64]*models.Account),
		locks:    make(map[int64]*sync.Mutex),
		jackpot:  JackpotSeed,
		path:     path,
		now:      time.Now,
	}
}

// ensure returns the account and its mutex, creating both on first access.
func (s *Store) ensure(id int64) (*models.Account, *sync.Mutex) {
	s.mu.RLock()
	acct, ok := s.accounts[id]
	lock := s.locks[id]
	s.mu.RUnlock()
	if ok {
		return acct, lock
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if acct, ok = s.accounts[id]; ok {
		return acct, s.locks[id]
	}

	now := s.now()
	acct = &models.Account{
		ID:           id,
		Balance:      StartingBalance,
		Level:        1,
		Achievements: []string{},
		Referrals:    []int64{},
		CreatedAt:    now,
		LastSeen:     now,
	}
	lock = &sync.Mutex{}
	s.accounts[id] = acct
	s.locks[id] = lock
	s.stats.TotalPlayers++
	return acct, lock
}

// GetOrCreate returns a copy of the account, creating it with the starting
// balance on first access.
func (s *Store) GetOrCreate(id int64) *models.Account {
	acct, lock := s.ensure(id)
	lock.Lock()
	defer lock.Unlock()
	acct.LastSeen = s.now()
	return acct.Clone()
}

// Get returns a copy of the account if it exists.
func (s *Store) Get(id int64) (*models.Account, bool) {
	s.mu.RLock()
	acct, ok := s.accounts[id]
	lock := s.locks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	lock.Lock()
	defer lock.Unlock()
	return acct.Clone(), true
}

// WithAccount runs fn as one critical section on the account, creating it
// first if needed. Everything fn does to the account is atomic with respect
// to every other ledger entry point.
func (s *Store) WithAccount(id int64, fn func(a *models.Account) error) error {
	acct, lock := s.ensure(id)
	lock.Lock()
	defer lock.Unlock()
	acct.LastSeen = s.now()
	return fn(acct)
}

// WithAccounts runs fn holding both account locks, acquired in ascending id
// order so concurrent two-account operations cannot deadlock.
func (s *Store) WithAccounts(idA, idB int64, fn func(a, b *models.Account) error) error {
	if idA == idB {
		return fmt.Errorf("WithAccounts requires two distinct accounts")
	}
	acctA, lockA := s.ensure(idA)
	acctB, lockB := s.ensure(idB)

	first, second := lockA, lockB
	if idB < idA {
		first, second = lockB, lockA
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	now := s.now()
	acctA.LastSeen = now
	acctB.LastSeen = now
	return fn(acctA, acctB)
}

// Debit subtracts amount from the spendable balance, failing without any
// state change when the balance cannot cover it.
func (s *Store) Debit(id int64, amount float64) error {
	if amount <= 0 {
		return ErrInvalidStake
	}
	return s.WithAccount(id, func(a *models.Account) error {
		if amount > a.Balance {
			return fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientFunds, amount, a.Balance)
		}
		a.Balance = RoundCents(a.Balance - amount)
		return nil
	})
}

// Credit adds amount to the spendable balance.
func (s *Store) Credit(id int64, amount float64) (float64, error) {
	if amount < 0 {
		return 0, ErrInvalidStake
	}
	var balance float64
	err := s.WithAccount(id, func(a *models.Account) error {
		a.Balance = RoundCents(a.Balance + amount)
		balance = a.Balance
		return nil
	})
	return balance, err
}

// Jackpot pool accessors. The pool shares the store mutex so snapshotting
// sees a consistent pair of (accounts, pool).

// JackpotPool returns the current pool.
func (s *Store) JackpotPool() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jackpot
}

// ContributeJackpot adds a contribution and returns the new pool.
func (s *Store) ContributeJackpot(amount float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jackpot = RoundCents(s.jackpot + amount)
	return s.jackpot
}

// TakeJackpot empties the pool back to its seed value and returns the
// amount won.
func (s *Store) TakeJackpot() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	won := s.jackpot
	s.jackpot = JackpotSeed
	return won
}

// Global stats accumulators.

// RecordBet bumps the wager accumulators.
func (s *Store) RecordBet(stake float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.TotalBets++
	s.stats.TotalWagered = RoundCents(s.stats.TotalWagered + stake)
}

// RecordWin bumps the winnings accumulator.
func (s *Store) RecordWin(payout float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.TotalWon = RoundCents(s.stats.TotalWon + payout)
}

// Stats returns a copy of the global accumulators.
func (s *Store) Stats() models.GlobalStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Count returns the number of accounts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// LeaderboardEntry is one row of the balance leaderboard.
type LeaderboardEntry struct {
	AccountID int64   `json:"account_id"`
	Username  string  `json:"username"`
	Balance   float64 `json:"balance"`
}

// TopBalances returns the n richest accounts, the in-memory fallback when
// no Redis leaderboard is configured.
func (s *Store) TopBalances(n int) []LeaderboardEntry {
	s.mu.RLock()
	ids := make([]int64, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	entries := make([]LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		if acct, ok := s.Get(id); ok {
			entries = append(entries, LeaderboardEntry{
				AccountID: id,
				Username:  acct.Username,
				Balance:   acct.Balance,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Balance != entries[j].Balance {
			return entries[i].Balance > entries[j].Balance
		}
		return entries[i].AccountID < entries[j].AccountID
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
