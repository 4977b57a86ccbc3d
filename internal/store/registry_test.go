package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/collabboard/whiteboard-gallery/models"
)

func newTestMetadata(t *testing.T) *Metadata {
	t.Helper()
	m, _ := OpenMetadata(filepath.Join(t.TempDir(), "meta.json"), testLogger())
	return m
}

func TestCreateCodeShape(t *testing.T) {
	r := NewRegistry(newTestMetadata(t))

	code := r.Create()
	if len(code) != codeLength {
		t.Fatalf("expected a %d-char code, got %q", codeLength, code)
	}
	for _, c := range code {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Fatalf("code %q contains %q outside the alphabet", code, c)
		}
	}
	if !r.Validate(code) {
		t.Error("a freshly created session must validate")
	}
	if _, ok := r.CreatedAt(code); !ok {
		t.Error("creation time missing for a fresh session")
	}
}

func TestCreateNeverReusesLiveCodes(t *testing.T) {
	r := NewRegistry(newTestMetadata(t))

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := r.Create()
		if seen[code] {
			t.Fatalf("code %q issued twice", code)
		}
		seen[code] = true
	}
}

func TestValidateUnknownCode(t *testing.T) {
	r := NewRegistry(newTestMetadata(t))

	if r.Validate("NOPE") {
		t.Fatal("unknown code with no stored images must not validate")
	}
}

func TestValidateRecoversFromMetadata(t *testing.T) {
	meta := newTestMetadata(t)
	meta.Put("LEGACY", "whiteboard_1.png", models.ImageRecord{Timestamp: 1})
	r := NewRegistry(meta)

	if !r.Validate("LEGACY") {
		t.Fatal("a session with stored images must validate even if unregistered")
	}
	// Recovery backfills the registration.
	if _, ok := r.CreatedAt("LEGACY"); !ok {
		t.Error("recovered session was not registered")
	}
}
