package utils

import (
	"log"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler owns the background jobs: periodic snapshot saves, stale
// challenge sweeps and daily backups.
type Scheduler struct {
	sched gocron.Scheduler
}

// StartScheduler registers and starts all periodic jobs. mirror may be nil
// when no database is configured.
func StartScheduler(cfg Config, store *Store, challenges *ChallengeManager, mirror *SnapshotMirror) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.SaveInterval),
		gocron.NewTask(func() {
			if err := store.Save(); err != nil {
				log.Printf("[scheduler] periodic save failed: %v", err)
				return
			}
			if mirror != nil {
				if err := mirror.SaveSnapshot(store.Snapshot()); err != nil {
					log.Printf("[scheduler] snapshot mirror failed: %v", err)
				}
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.SweepInterval),
		gocron.NewTask(func() {
			if n := challenges.ExpireStale(); n > 0 {
				log.Printf("[scheduler] expired %d stale challenges", n)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(BackupInterval),
		gocron.NewTask(func() {
			path, err := store.Backup()
			if err != nil {
				log.Printf("[scheduler] backup failed: %v", err)
				return
			}
			log.Printf("[scheduler] backup written to %s", path)
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	log.Printf("[scheduler] started (save every %s, sweep every %s, backup every %s)",
		cfg.SaveInterval, cfg.SweepInterval, BackupInterval)
	return &Scheduler{sched: sched}, nil
}

// Stop shuts the scheduler down, waiting briefly for running jobs.
func (s *Scheduler) Stop() {
	if err := s.sched.StopJobs(); err != nil {
		log.Printf("[scheduler] stop: %v", err)
	}
	_ = s.sched.Shutdown()
}
