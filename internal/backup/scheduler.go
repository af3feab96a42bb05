// SPDX-License-Identifier: MIT
package backup

import (
	"fmt"
	"log/slog"
	"time"
)

// Source produces the catalog export to archive
type Source func() (string, error)

// Scheduler handles automatic backup scheduling
type Scheduler struct {
	Manager        *Manager
	Source         Source
	Retention      int // archives kept after each run; 0 keeps everything
	Logger         *slog.Logger
	BackupInterval time.Duration

	ticker   *time.Ticker
	done     chan bool
	stopChan chan bool
}

// NewScheduler creates a new backup scheduler
func NewScheduler(manager *Manager, source Source) *Scheduler {
	return &Scheduler{
		Manager:        manager,
		Source:         source,
		Logger:         slog.Default(),
		BackupInterval: 24 * time.Hour,
		done:           make(chan bool, 1),
		stopChan:       make(chan bool, 1),
	}
}

// Start begins the backup scheduler in a goroutine
// Returns a done channel that receives once the scheduler stops
func (s *Scheduler) Start() chan bool {
	go func() {
		s.ticker = time.NewTicker(s.BackupInterval)
		defer s.ticker.Stop()

		if err := s.runBackup(); err != nil {
			s.Logger.Error("initial backup failed", "error", err)
		}

		for {
			select {
			case <-s.stopChan:
				s.done <- true
				return
			case <-s.ticker.C:
				if err := s.runBackup(); err != nil {
					s.Logger.Error("scheduled backup failed", "error", err)
				}
			}
		}
	}()

	return s.done
}

// Stop stops the backup scheduler
func (s *Scheduler) Stop() {
	select {
	case s.stopChan <- true:
	default:
	}
}

// RunOnce performs a single backup and prune
func (s *Scheduler) RunOnce() error {
	return s.runBackup()
}

func (s *Scheduler) runBackup() error {
	data, err := s.Source()
	if err != nil {
		return fmt.Errorf("failed to snapshot catalog: %w", err)
	}

	name, err := s.Manager.CreateBackup(data, "scheduled")
	if err != nil {
		return fmt.Errorf("backup creation failed: %w", err)
	}
	s.Logger.Info("backup created", "name", name)

	removed, err := s.Manager.Prune(s.Retention)
	if err != nil {
		return fmt.Errorf("backup pruning failed: %w", err)
	}
	if len(removed) > 0 {
		s.Logger.Info("old backups pruned", "count", len(removed))
	}
	return nil
}

// SetInterval sets the backup interval
func (s *Scheduler) SetInterval(interval time.Duration) {
	s.BackupInterval = interval
}
