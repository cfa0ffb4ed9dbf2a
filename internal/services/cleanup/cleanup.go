package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Service sweeps the upload directory for orphaned audio files. Uploads are
// normally removed by the orchestration pass that owns them; the sweeper
// catches files leaked by a crashed process or an unclean shutdown.
type Service struct {
	uploadDir     string
	maxAge        time.Duration
	sweepInterval time.Duration
	cancel        context.CancelFunc
}

// NewService creates a new cleanup service over the upload directory
func NewService(uploadDir string, maxAge, sweepInterval time.Duration) *Service {
	return &Service{
		uploadDir:     uploadDir,
		maxAge:        maxAge,
		sweepInterval: sweepInterval,
	}
}

// Start begins periodic sweeping. An initial sweep runs immediately so
// leftovers from a previous run are reclaimed at startup.
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.sweep()

	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-ctx.Done():
				logrus.Info("Upload cleanup service stopped")
				return
			}
		}
	}()

	logrus.WithFields(logrus.Fields{
		"interval": s.sweepInterval,
		"max_age":  s.maxAge,
	}).Info("Upload cleanup service started")
}

// Stop stops the cleanup service
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// sweep removes upload files older than maxAge. Files younger than the
// threshold may belong to an in-flight pass and are left alone.
func (s *Service) sweep() {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("Failed to read upload directory")
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) <= s.maxAge {
			continue
		}

		path := filepath.Join(s.uploadDir, entry.Name())
		logrus.WithField("path", path).Debug("Removing orphaned upload file")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).WithField("path", path).Warn("Failed to remove orphaned upload file")
		}
	}
}
