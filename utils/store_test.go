package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"antaria-go/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "casino_data.json"))
}

func TestGetOrCreateSeedsAccount(t *testing.T) {
	store := newTestStore(t)

	acct := store.GetOrCreate(42)
	if acct.Balance != StartingBalance {
		t.Errorf("Expected starting balance %.2f, got %.2f", StartingBalance, acct.Balance)
	}
	if acct.Level != 1 {
		t.Errorf("Expected level 1, got %d", acct.Level)
	}
	if acct.Achievements == nil || acct.Referrals == nil {
		t.Error("Expected empty (non-nil) achievement and referral slices")
	}

	// Second access must not create a second player.
	store.GetOrCreate(42)
	if got := store.Stats().TotalPlayers; got != 1 {
		t.Errorf("Expected 1 total player, got %d", got)
	}
}

func TestDebitInsufficientLeavesBalanceUntouched(t *testing.T) {
	store := newTestStore(t)
	store.GetOrCreate(1)

	err := store.Debit(1, StartingBalance+0.01)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}
	acct, _ := store.Get(1)
	if acct.Balance != StartingBalance {
		t.Errorf("Expected balance unchanged at %.2f, got %.2f", StartingBalance, acct.Balance)
	}
}

func TestDebitCreditRoundTrip(t *testing.T) {
	store := newTestStore(t)
	store.GetOrCreate(1)

	if err := store.Debit(1, 250.0); err != nil {
		t.Fatalf("Unexpected debit error: %v", err)
	}
	balance, err := store.Credit(1, 100.50)
	if err != nil {
		t.Fatalf("Unexpected credit error: %v", err)
	}
	want := StartingBalance - 250.0 + 100.50
	if balance != want {
		t.Errorf("Expected balance %.2f, got %.2f", want, balance)
	}
}

func TestWithAccountsRejectsSameID(t *testing.T) {
	store := newTestStore(t)
	err := store.WithAccounts(7, 7, func(a, b *models.Account) error { return nil })
	if err == nil {
		t.Error("Expected an error for identical account ids")
	}
}

func TestTakeJackpotResetsToSeed(t *testing.T) {
	store := newTestStore(t)
	store.ContributeJackpot(123.45)

	won := store.TakeJackpot()
	if won != JackpotSeed+123.45 {
		t.Errorf("Expected to win %.2f, got %.2f", JackpotSeed+123.45, won)
	}
	if pool := store.JackpotPool(); pool != JackpotSeed {
		t.Errorf("Expected pool reset to seed %.2f, got %.2f", JackpotSeed, pool)
	}
}

func TestTopBalancesOrdering(t *testing.T) {
	store := newTestStore(t)
	store.GetOrCreate(1)
	store.GetOrCreate(2)
	store.GetOrCreate(3)
	if _, err := store.Credit(2, 500); err != nil {
		t.Fatalf("Unexpected credit error: %v", err)
	}

	top := store.TopBalances(2)
	if len(top) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(top))
	}
	if top[0].AccountID != 2 {
		t.Errorf("Expected account 2 first, got %d", top[0].AccountID)
	}
	// Accounts 1 and 3 are tied; the lower id wins the tiebreak.
	if top[1].AccountID != 1 {
		t.Errorf("Expected account 1 second on tiebreak, got %d", top[1].AccountID)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casino_data.json")
	store := NewStore(path)

	err := store.WithAccount(9, func(a *models.Account) error {
		a.Username = "rio"
		a.Balance = 1234.56
		a.TotalWagered = 400
		a.GamesPlayed = 12
		a.WinStreak = 3
		a.XP = 750
		a.Level = 2
		a.Achievements = append(a.Achievements, "first_bet")
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	store.ContributeJackpot(42.0)
	store.RecordBet(400)

	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := NewStore(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	acct, ok := loaded.Get(9)
	if !ok {
		t.Fatal("Expected account 9 after reload")
	}
	if acct.Username != "rio" || acct.Balance != 1234.56 || acct.TotalWagered != 400 {
		t.Errorf("Account fields did not survive the round trip: %+v", acct)
	}
	if acct.WinStreak != 3 || acct.XP != 750 || acct.Level != 2 {
		t.Errorf("Progress fields did not survive the round trip: %+v", acct)
	}
	if len(acct.Achievements) != 1 || acct.Achievements[0] != "first_bet" {
		t.Errorf("Expected achievements [first_bet], got %v", acct.Achievements)
	}
	if pool := loaded.JackpotPool(); pool != JackpotSeed+42.0 {
		t.Errorf("Expected jackpot %.2f, got %.2f", JackpotSeed+42.0, pool)
	}
	if stats := loaded.Stats(); stats.TotalBets != 1 || stats.TotalWagered != 400 {
		t.Errorf("Global stats did not survive the round trip: %+v", stats)
	}
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	if err := store.Load(); err != nil {
		t.Errorf("Expected a missing file to be a fresh start, got %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("Expected an empty store, got %d accounts", store.Count())
	}
}

func TestLoadMigratesLegacySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casino_data.json")
	legacy := `{
		"users": {
			"5": {"balance": 800.0, "xp": 1200}
		}
	}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("Failed to write legacy file: %v", err)
	}

	store := NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	acct, ok := store.Get(5)
	if !ok {
		t.Fatal("Expected account 5 after migration")
	}
	if acct.Level != LevelForXP(1200) {
		t.Errorf("Expected migrated level %d, got %d", LevelForXP(1200), acct.Level)
	}
	if acct.Achievements == nil || acct.Referrals == nil {
		t.Error("Expected migrated slices to be non-nil")
	}
	if acct.CreatedAt.IsZero() {
		t.Error("Expected migrated CreatedAt to be set")
	}
	if pool := store.JackpotPool(); pool != JackpotSeed {
		t.Errorf("Expected default jackpot seed %.2f, got %.2f", JackpotSeed, pool)
	}
	if store.Stats().TotalPlayers != 1 {
		t.Errorf("Expected 1 migrated player, got %d", store.Stats().TotalPlayers)
	}
}

func TestBackupWritesTimestampedCopy(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "casino_data.json"))
	store.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }
	store.GetOrCreate(1)
	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	name, err := store.Backup()
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	want := filepath.Join(dir, "casino_data_backup_20240301_123000.json")
	if name != want {
		t.Errorf("Expected backup at %s, got %s", want, name)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("Expected backup file to exist: %v", err)
	}
}
