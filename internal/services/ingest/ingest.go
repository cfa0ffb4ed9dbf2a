package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	apperrors "github.com/voxnotes/scribe-api/pkg/errors"
)

// Upload is a request-scoped transient audio resource. It is owned
// exclusively by one orchestration pass and must be removed by that pass
// before it returns, on every exit path.
type Upload struct {
	Path         string
	OriginalName string
	Size         int64

	removeOnce sync.Once
}

// Remove deletes the backing file. Safe to call more than once; the file is
// removed at most once and a missing file is not an error.
func (u *Upload) Remove() {
	u.removeOnce.Do(func() {
		if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).WithField("path", u.Path).Warn("Failed to remove transient audio file")
		}
	})
}

// Store materializes uploaded audio streams as uniquely named transient
// files. Each upload gets its own path so concurrent passes can never
// observe each other's bytes.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates an upload store rooted at dir
func NewStore(dir string, maxSize int64) *Store {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Store{dir: dir, maxSize: maxSize}
}

// Save writes the stream to a uniquely named file and returns its handle.
// The caller owns the returned Upload and must call Remove when done.
func (s *Store) Save(r io.Reader, originalName string) (*Upload, error) {
	if r == nil {
		return nil, apperrors.MissingFieldError("audio_file")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Unique per-request path. A fixed shared path would let concurrent
	// passes overwrite each other's audio mid-flight.
	name := uuid.NewString() + uploadExtension(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	if s.maxSize > 0 {
		r = io.LimitReader(r, s.maxSize)
	}

	written, err := io.Copy(f, r)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	if written == 0 {
		os.Remove(path)
		return nil, apperrors.New(apperrors.ErrCodeValidation, "No audio file provided.")
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"bytes": written,
	}).Debug("Materialized uploaded audio")

	return &Upload{Path: path, OriginalName: originalName, Size: written}, nil
}

// Stat classifies the current state of the upload. A vanished file is a
// transient-resource fault (a race with platform temp cleanup), reported so
// the caller can be told to retry the upload.
func (u *Upload) Stat() error {
	if _, err := os.Stat(u.Path); err != nil {
		if os.IsNotExist(err) {
			return apperrors.TransientResourceError(u.Path, err)
		}
		return fmt.Errorf("failed to stat upload: %w", err)
	}
	return nil
}

// uploadExtension keeps the declared extension so engines can sniff the
// container format, defaulting to .wav.
func uploadExtension(originalName string) string {
	ext := filepath.Ext(originalName)
	if ext == "" || len(ext) > 8 {
		return ".wav"
	}
	return ext
}
