// Package backup snapshots the uploaded images directory once a day.
package backup

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
)

const timestampLayout = "2006-01-02_15-04-05"

type Scheduler struct {
	SrcDir    string
	BackupDir string
	Retention time.Duration
	Hour      int
	Minute    int

	now func() time.Time
}

func NewScheduler(srcDir, backupDir string, retention time.Duration, hour int) *Scheduler {
	return &Scheduler{
		SrcDir:    srcDir,
		BackupDir: backupDir,
		Retention: retention,
		Hour:      hour,
		now:       time.Now,
	}
}

// Run takes a backup every day at Hour:Minute until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := s.NextRun(s.now())
		log.Printf("⏳ Next image backup scheduled at: %s", next.Format("2006-01-02 15:04:05"))

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if dest, err := s.RunOnce(); err != nil {
			log.Printf("❌ Failed to back up images: %v", err)
		} else {
			log.Printf("✅ Images backed up to %s", dest)
		}
	}
}

// NextRun is the first Hour:Minute strictly after now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, s.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunOnce copies SrcDir into a new timestamped folder and prunes old ones.
func (s *Scheduler) RunOnce() (string, error) {
	dest := filepath.Join(s.BackupDir, s.now().Format(timestampLayout))
	if err := s.snapshot(dest); err != nil {
		return "", err
	}
	s.cleanup()
	return dest, nil
}

func (s *Scheduler) cleanup() {
	entries, err := os.ReadDir(s.BackupDir)
	if err != nil {
		log.Printf("❌ Failed to read backup directory: %v", err)
		return
	}

	cutoff := s.now().Add(-s.Retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folderPath := filepath.Join(s.BackupDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(folderPath); err != nil {
				log.Printf("❌ Failed to remove old backup %s: %v", folderPath, err)
			} else {
				log.Printf("🗑️ Removed old backup: %s", folderPath)
			}
		}
	}
}

// snapshot mirrors SrcDir into dest. Anything that is not a regular file or
// directory is skipped.
func (s *Scheduler) snapshot(dest string) error {
	return filepath.WalkDir(s.SrcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.SrcDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0o755)
		case !d.Type().IsRegular():
			return nil
		}

		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		return out.Close()
	})
}
