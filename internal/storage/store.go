// Package storage persists candidate snapshots as JSON documents on disk.
// Every save writes a fresh file: snapshots are full overwrites keyed by a
// sanitized candidate name plus a random suffix, never in-place updates.
package storage

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/talentscout/screener/internal/candidate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultDir = "candidates"

// ErrNoFullName is returned when a snapshot is requested for a profile
// whose name has not been collected yet.
var ErrNoFullName = errors.New("candidate full name is not collected yet")

// FileStore writes plaintext candidate snapshots.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates a store writing under dir. An empty dir falls back
// to "candidates" in the working directory.
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	if strings.TrimSpace(dir) == "" {
		dir = defaultDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{dir: dir, logger: logger}
}

// Save writes a full snapshot of the profile and returns the filename it
// was written under.
func (s *FileStore) Save(profile *candidate.Profile) (string, error) {
	if profile == nil {
		return "", errors.New("profile is required")
	}
	if profile.FullName == "" {
		return "", ErrNoFullName
	}

	filename := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", sanitizeName(profile.FullName), randomSuffix()))

	if err := writeJSON(s.dir, filename, profile); err != nil {
		return "", err
	}

	s.logger.Debug("wrote candidate snapshot", zap.String("filename", filename))

	return filename, nil
}

func writeJSON(dir, filename string, v any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// sanitizeName reduces a candidate name to a safe filename fragment:
// only letters, digits and spaces survive, spaces become underscores,
// everything is lowercased.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	return b.String()
}

func randomSuffix() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])[:8]
}
