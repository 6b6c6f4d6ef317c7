package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antaria-go/games"
	"antaria-go/handlers"
	"antaria-go/utils"
)

func main() {
	cfg := utils.LoadConfig()

	store := utils.NewStore(cfg.DataFile)
	if err := store.Load(); err != nil {
		log.Fatalf("Failed to load ledger data: %v", err)
	}

	// Optional Postgres snapshot mirror; the file stays the source of truth
	// unless the mirror holds a newer copy (e.g. the file was lost).
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mirror, err := utils.NewSnapshotMirror(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Printf("Snapshot mirror unavailable, continuing without it: %v", err)
		mirror = nil
	}
	if mirror != nil {
		defer mirror.Close()
		restoreFromMirror(store, mirror)
	}

	rng := games.NewLockedRand(time.Now().UnixNano())
	board := utils.NewLeaderboard(store, cfg.RedisURL)
	defer board.Close()

	jackpot := utils.NewJackpotManager(store)
	ledger := utils.NewLedger(store, jackpot, board, rng)
	bonuses := utils.NewBonusManager(store, rng)
	challenges := utils.NewChallengeManager(store, rng)
	sessions := utils.NewSessionRegistry()

	scheduler, err := utils.StartScheduler(*cfg, store, challenges, mirror)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	api := handlers.NewAPI(store, ledger, bonuses, jackpot, challenges, sessions, board)
	server := &http.Server{Addr: cfg.ListenAddr, Handler: api.Router()}

	go func() {
		log.Printf("Ledger API listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop

	log.Println("Gracefully shutting down...")
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	if err := store.Save(); err != nil {
		log.Printf("Final save failed: %v", err)
	}
	if mirror != nil {
		if err := mirror.SaveSnapshot(store.Snapshot()); err != nil {
			log.Printf("Final mirror save failed: %v", err)
		}
	}
}

// restoreFromMirror replaces the in-memory state with the mirrored snapshot
// when the local data file is missing or empty but the mirror has data.
func restoreFromMirror(store *utils.Store, mirror *utils.SnapshotMirror) {
	if store.Count() > 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	snap, savedAt, err := mirror.LoadSnapshot(ctx)
	if err != nil {
		log.Printf("Mirror restore check failed: %v", err)
		return
	}
	if snap == nil {
		return
	}
	if err := store.ReplaceState(snap); err != nil {
		log.Printf("Mirror restore failed: %v", err)
		return
	}
	log.Printf("Restored %d accounts from mirror snapshot saved at %s",
		store.Count(), savedAt.Format(time.RFC3339))
}
