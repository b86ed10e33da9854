package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/talentscout/screener/internal/candidate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const secureTimestampLayout = "20060102_150405"

// SecureStore writes candidate snapshots with contact details redacted:
// email and phone are partially masked and accompanied by one-way hashes.
type SecureStore struct {
	dir    string
	logger *zap.Logger
}

// NewSecureStore creates a redacting store writing under dir.
func NewSecureStore(dir string, logger *zap.Logger) *SecureStore {
	if strings.TrimSpace(dir) == "" {
		dir = "secure_candidates"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecureStore{dir: dir, logger: logger}
}

// secureSnapshot is the redacted record shape: the regular profile fields
// plus contact hashes and a storage timestamp.
type secureSnapshot struct {
	candidate.Profile
	EmailHash string    `json:"email_hash,omitempty"`
	PhoneHash string    `json:"phone_hash,omitempty"`
	StoredAt  time.Time `json:"stored_at"`
}

// Save writes a redacted snapshot and returns the filename. Unlike the
// plaintext store it accepts nameless profiles, falling back to a random
// candidate identifier.
func (s *SecureStore) Save(profile *candidate.Profile) (string, error) {
	if profile == nil {
		return "", errors.New("profile is required")
	}

	snapshot := secureSnapshot{
		Profile:  *profile,
		StoredAt: time.Now(),
	}

	if snapshot.Email != "" {
		snapshot.EmailHash = hashValue(snapshot.Email)
		snapshot.Email = maskEmail(snapshot.Email)
	}
	if snapshot.Phone != "" {
		snapshot.PhoneHash = hashValue(snapshot.Phone)
		snapshot.Phone = maskPhone(snapshot.Phone)
	}

	var base string
	if profile.FullName != "" {
		base = fmt.Sprintf("%s_%s", sanitizeName(profile.FullName), snapshot.StoredAt.Format(secureTimestampLayout))
	} else {
		id := uuid.New()
		base = "candidate_" + hex.EncodeToString(id[:])
	}
	filename := filepath.Join(s.dir, base+".json")

	if err := writeJSON(s.dir, filename, snapshot); err != nil {
		return "", err
	}

	s.logger.Debug("wrote secure candidate snapshot", zap.String("filename", filename))

	return filename, nil
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// maskEmail keeps the first character and the domain: "j***@example.com".
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 1 {
		return "***"
	}
	return email[:1] + "***@" + email[at+1:]
}

// maskPhone keeps the last four digits: "***-***-4567".
func maskPhone(phone string) string {
	if len(phone) < 4 {
		return "***"
	}
	return "***-***-" + phone[len(phone)-4:]
}
