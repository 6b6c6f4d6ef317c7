package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"antaria-go/models"
)

// Snapshot produces a consistent deep copy of the full persisted state.
// The store mutex is released before account locks are taken, so a running
// save never blocks wagers for longer than a single account copy.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.RLock()
	ids := make([]int64, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	pool := s.jackpot
	stats := s.stats
	s.mu.RUnlock()

	users := make(map[string]*models.Account, len(ids))
	for _, id := range ids {
		if acct, ok := s.Get(id); ok {
			users[strconv.FormatInt(id, 10)] = acct
		}
	}

	return &models.Snapshot{
		Users:       users,
		JackpotPool: pool,
		GlobalStats: stats,
		Version:     models.SnapshotVersion,
	}
}

// ReplaceState swaps the in-memory state for a loaded snapshot.
func (s *Store) ReplaceState(snap *models.Snapshot) error {
	migrateSnapshot(snap)

	accounts := make(map[int64]*models.Account, len(snap.Users))
	locks := make(map[int64]*sync.Mutex, len(snap.Users))
	for key, acct := range snap.Users {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("bad account key %q: %w", key, err)
		}
		acct.ID = id
		accounts[id] = acct
		locks[id] = &sync.Mutex{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts
	s.locks = locks
	s.jackpot = snap.JackpotPool
	s.stats = snap.GlobalStats
	return nil
}

// Load reads the snapshot file. A missing file is a fresh start, not an
// error; a corrupt file is reported so the operator can intervene before
// the next save overwrites it.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		log.Printf("[store] no snapshot at %s, starting fresh", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := s.ReplaceState(&snap); err != nil {
		return err
	}
	log.Printf("[store] loaded %d accounts (snapshot version %s)", s.Count(), models.SnapshotVersion)
	return nil
}

// Save writes the full snapshot atomically (temp file + rename).
func (s *Store) Save() error {
	snap := s.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Backup copies the current snapshot file to a timestamped sibling and
// returns its name.
func (s *Store) Backup() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read snapshot for backup: %w", err)
	}
	name := filepath.Join(filepath.Dir(s.path),
		fmt.Sprintf("casino_data_backup_%s.json", s.now().Format("20060102_150405")))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return name, nil
}

// migrateSnapshot upgrades older snapshot layouts in place: optional fields
// introduced after the tagged version default rather than fail the load.
func migrateSnapshot(snap *models.Snapshot) {
	if snap.Users == nil {
		snap.Users = make(map[string]*models.Account)
	}
	if snap.JackpotPool <= 0 {
		snap.JackpotPool = JackpotSeed
	}
	for _, acct := range snap.Users {
		if acct.Achievements == nil {
			acct.Achievements = []string{}
		}
		if acct.Referrals == nil {
			acct.Referrals = []int64{}
		}
		if acct.Level < 1 {
			acct.Level = LevelForXP(acct.XP)
		}
		if acct.CreatedAt.IsZero() {
			acct.CreatedAt = time.Now()
		}
	}
	if snap.GlobalStats.TotalPlayers == 0 {
		snap.GlobalStats.TotalPlayers = int64(len(snap.Users))
	}
	snap.Version = models.SnapshotVersion
}
