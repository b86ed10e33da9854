package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talentscout/screener/internal/candidate"

	"go.uber.org/zap"
)

func sampleProfile() *candidate.Profile {
	p := candidate.NewProfile()
	p.FullName = "Jane O'Doe-Smith"
	p.Email = "jane@example.com"
	p.Phone = "555-123-4567"
	p.AppendLog(candidate.RoleUser, "hello")
	p.RecordTechnicalResponse(1, "indexes speed up lookups")
	return p
}

func TestFileStoreSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFileStore(dir, zap.NewNop())

	filename, err := store.Save(sampleProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := filepath.Base(filename)
	if !strings.HasPrefix(base, "jane_odoesmith_") {
		t.Fatalf("unexpected filename: %s", base)
	}
	if !strings.HasSuffix(base, ".json") {
		t.Fatalf("expected json extension: %s", base)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("snapshot is not valid json: %v", err)
	}
	if decoded["email"] != "jane@example.com" {
		t.Fatalf("expected plaintext email, got %v", decoded["email"])
	}
	if _, ok := decoded["conversation_log"]; !ok {
		t.Fatalf("snapshot missing conversation log")
	}
}

func TestFileStoreEachSaveCreatesNewFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFileStore(dir, zap.NewNop())
	profile := sampleProfile()

	first, err := store.Save(profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Save(profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct snapshot files, got %s twice", first)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 snapshot files, got %d", len(entries))
	}
}

func TestFileStoreRequiresFullName(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir(), zap.NewNop())

	if _, err := store.Save(candidate.NewProfile()); err != ErrNoFullName {
		t.Fatalf("expected ErrNoFullName, got %v", err)
	}
}

func TestSecureStoreRedactsContactDetails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewSecureStore(dir, zap.NewNop())

	filename, err := store.Save(sampleProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("snapshot is not valid json: %v", err)
	}

	if decoded["email"] != "j***@example.com" {
		t.Fatalf("email not masked: %v", decoded["email"])
	}
	if decoded["phone"] != "***-***-4567" {
		t.Fatalf("phone not masked: %v", decoded["phone"])
	}
	if hash, _ := decoded["email_hash"].(string); len(hash) != 64 {
		t.Fatalf("expected sha256 email hash, got %v", decoded["email_hash"])
	}
	if hash, _ := decoded["phone_hash"].(string); len(hash) != 64 {
		t.Fatalf("expected sha256 phone hash, got %v", decoded["phone_hash"])
	}
	if _, ok := decoded["stored_at"]; !ok {
		t.Fatalf("snapshot missing stored_at")
	}
}

func TestSecureStoreAcceptsNamelessProfile(t *testing.T) {
	t.Parallel()

	store := NewSecureStore(t.TempDir(), zap.NewNop())

	p := candidate.NewProfile()
	p.Email = "anon@example.com"

	filename, err := store.Save(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(filename), "candidate_") {
		t.Fatalf("unexpected fallback filename: %s", filename)
	}
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{"Jane Doe", "jane_doe"},
		{"Jane O'Doe-Smith", "jane_odoesmith"},
		{" Ärger Müller ", "_ärger_müller_"},
		{"x1 y2", "x1_y2"},
	}

	for _, tt := range tests {
		if got := sanitizeName(tt.input); got != tt.expect {
			t.Fatalf("sanitizeName(%q): expected %q, got %q", tt.input, tt.expect, got)
		}
	}
}

func TestMaskHelpers(t *testing.T) {
	t.Parallel()

	if got := maskEmail("jane@example.com"); got != "j***@example.com" {
		t.Fatalf("unexpected masked email: %q", got)
	}
	if got := maskEmail("@broken"); got != "***" {
		t.Fatalf("unexpected masked email: %q", got)
	}
	if got := maskPhone("555-123-4567"); got != "***-***-4567" {
		t.Fatalf("unexpected masked phone: %q", got)
	}
	if got := maskPhone("12"); got != "***" {
		t.Fatalf("unexpected masked phone: %q", got)
	}
}
