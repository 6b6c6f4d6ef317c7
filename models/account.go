package models

import (
	"time"
)

// Account holds the ledger state for a single player. The ID is the map key
// in the persisted snapshot, so it is not serialized with the record itself.
type Account struct {
	ID int64 `json:"-"`

	Username string  `json:"username"`
	Balance  float64 `json:"balance"`

	// Monotone lifetime counters.
	TotalWagered float64 `json:"total_wagered"`
	TotalWon     float64 `json:"total_won"`
	GamesPlayed  int64   `json:"games_played"`
	BiggestBet   float64 `json:"biggest_bet"`

	WinStreak    int `json:"win_streak"`
	MaxWinStreak int `json:"max_win_streak"`

	XP    int64 `json:"xp"`
	Level int   `json:"level"`

	// Locked-bonus playthrough gate. BonusWagered accumulates wager volume
	// while PlaythroughRequired > 0; withdrawals are refused until it
	// reaches the requirement.
	BonusLocked         float64 `json:"bonus_locked"`
	PlaythroughRequired float64 `json:"playthrough_required"`
	BonusWagered        float64 `json:"bonus_wagered"`

	// Daily bonus tracking.
	LastBonus      *time.Time `json:"last_bonus,omitempty"`
	BonusStreak    int        `json:"bonus_streak"`
	MaxBonusStreak int        `json:"max_bonus_streak"`

	// Consecutive bowling strikes; three in a row wins the jackpot pool.
	StrikeRun   int `json:"strike_run"`
	JackpotWins int `json:"jackpot_wins"`

	Achievements []string `json:"achievements"`
	ReferredBy   *int64   `json:"referred_by,omitempty"`
	Referrals    []int64  `json:"referrals"`

	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}

// HasAchievement reports whether the achievement id has already been unlocked.
func (a *Account) HasAchievement(id string) bool {
	for _, got := range a.Achievements {
		if got == id {
			return true
		}
	}
	return false
}

// Withdrawable reports whether the playthrough gate is open.
func (a *Account) Withdrawable() bool {
	return a.BonusWagered >= a.PlaythroughRequired
}

// Clone returns a deep copy safe to hand out while the original keeps
// mutating. Empty slices stay empty rather than becoming nil, so clones
// serialize the same way as the original.
func (a *Account) Clone() *Account {
	cp := *a
	if a.Achievements != nil {
		cp.Achievements = make([]string, len(a.Achievements))
		copy(cp.Achievements, a.Achievements)
	}
	if a.Referrals != nil {
		cp.Referrals = make([]int64, len(a.Referrals))
		copy(cp.Referrals, a.Referrals)
	}
	if a.LastBonus != nil {
		t := *a.LastBonus
		cp.LastBonus = &t
	}
	if a.ReferredBy != nil {
		id := *a.ReferredBy
		cp.ReferredBy = &id
	}
	return &cp
}

// GlobalStats are process-wide write-only accumulators.
type GlobalStats struct {
	TotalBets    int64   `json:"total_bets"`
	TotalWagered float64 `json:"total_wagered"`
	TotalWon     float64 `json:"total_won"`
	TotalPlayers int64   `json:"total_players"`
}

// SnapshotVersion tags the persisted layout. Loads of older snapshots run a
// one-shot migration (see utils.migrateSnapshot) before use.
const SnapshotVersion = "2.1"

// Snapshot is the full persisted state: the user-facing JSON file layout and
// the payload mirrored to Postgres when configured.
type Snapshot struct {
	Users       map[string]*Account `json:"users"`
	JackpotPool float64             `json:"jackpot_pool"`
	GlobalStats GlobalStats         `json:"global_stats"`
	Version     string              `json:"version"`
}
