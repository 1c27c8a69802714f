package client

import (
	"path/filepath"
	"testing"

	"github.com/pharmalytics/nexus-go/internal/model"
)

func TestFileSessionStoreRoundTrip(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	saved := Session{
		Token: "abc123",
		User:  &model.UserInfo{ID: 7, Username: "alice", Email: "alice@example.com", Role: "doctor"},
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if loaded.Token != saved.Token {
		t.Errorf("Load() token = %q, want %q", loaded.Token, saved.Token)
	}
	if loaded.User == nil || loaded.User.Username != "alice" {
		t.Errorf("Load() user = %+v, want alice", loaded.User)
	}
}

func TestFileSessionStoreLoadMissing(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if sess.Token != "" || sess.User != nil {
		t.Errorf("Load() on missing file = %+v, want empty session", sess)
	}
}

func TestFileSessionStoreClearIdempotent(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))

	if err := store.Save(Session{Token: "t"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() unexpected error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("Clear() on absent file unexpected error: %v", err)
	}

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if sess.Token != "" {
		t.Errorf("Load() after Clear() token = %q, want empty", sess.Token)
	}
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()

	if err := store.Save(Session{Token: "t"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if sess.Token != "t" {
		t.Errorf("Load() token = %q, want t", sess.Token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() unexpected error: %v", err)
	}
	sess, _ = store.Load()
	if sess.Token != "" {
		t.Errorf("Load() after Clear() token = %q, want empty", sess.Token)
	}
}
