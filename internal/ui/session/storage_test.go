package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/petly-community/petly/internal/ui/types"
)

const testEntry = `{"user":{"id":1,"name":"Ana","email":"ana@x.com","role":"USER"},"token":"tok-secret"}`

// storageContract checks the behaviour shared by every Storage implementation
func storageContract(t *testing.T, storage Storage) {
	t.Helper()
	ctx := context.Background()

	if _, err := storage.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Load() on an empty storage error = %v, want ErrNoSession", err)
	}
	if err := storage.Remove(ctx); err != nil {
		t.Fatalf("Remove() on an empty storage error = %v", err)
	}

	if err := storage.Save(ctx, []byte(testEntry)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := storage.Save(ctx, []byte(testEntry)); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !jsonEqual(t, got, []byte(testEntry)) {
		t.Errorf("Load() = %s, want %s", got, testEntry)
	}

	if err := storage.Remove(ctx); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := storage.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() after Remove() error = %v, want ErrNoSession", err)
	}
}

// jsonEqual compares documents ignoring formatting (jsonb does not keep the original text)
func jsonEqual(t *testing.T, a, b []byte) bool {
	t.Helper()
	var va, vb any
	if err := json.Unmarshal(a, &va); err != nil {
		t.Fatalf("invalid JSON %s: %v", a, err)
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		t.Fatalf("invalid JSON %s: %v", b, err)
	}
	ja, _ := json.Marshal(va)
	jb, _ := json.Marshal(vb)
	return bytes.Equal(ja, jb)
}

func TestMemoryStorage(t *testing.T) {
	storageContract(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "petly")
	storage := NewFileStorage(dir)

	storageContract(t, storage)

	if err := storage.Save(context.Background(), []byte(testEntry)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(storage.Path())
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
	if filepath.Base(storage.Path()) != "petly.auth.json" {
		t.Errorf("unexpected session file name %s", storage.Path())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the session file in %s, found %d entries", dir, len(entries))
	}
}

func TestSealedStorage(t *testing.T) {
	inner := NewMemoryStorage()
	sealed, err := NewSealedStorage(inner, "correct horse battery staple")
	if err != nil {
		t.Fatalf("NewSealedStorage() error = %v", err)
	}

	storageContract(t, sealed)

	ctx := context.Background()
	if err := sealed.Save(ctx, []byte(testEntry)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := inner.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, []byte("tok-secret")) {
		t.Errorf("the token is stored in clear text: %s", raw)
	}
	if !json.Valid(raw) {
		t.Errorf("the sealed envelope should be JSON: %s", raw)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewSealedStorage(inner, "another secret")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := other.Load(ctx); !errors.Is(err, ErrCorruptEntry) {
			t.Errorf("Load() error = %v, want ErrCorruptEntry", err)
		}
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		var entry sealedEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			t.Fatal(err)
		}
		entry.Ciphertext[0] ^= 0xff
		tampered, _ := json.Marshal(entry)
		if err := inner.Save(ctx, tampered); err != nil {
			t.Fatal(err)
		}
		if _, err := sealed.Load(ctx); !errors.Is(err, ErrCorruptEntry) {
			t.Errorf("Load() error = %v, want ErrCorruptEntry", err)
		}
	})

	t.Run("empty secret", func(t *testing.T) {
		if _, err := NewSealedStorage(inner, ""); err == nil {
			t.Errorf("expected an error for an empty secret")
		}
	})
}

func TestInitializeDiscardsEntrySealedWithAnotherKey(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStorage()

	before, _ := NewSealedStorage(inner, "old secret")
	first := NewStore(loginAs(1, types.RoleUser, "tok"), before, discardLogger)
	if err := first.Login(ctx, "a@b.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	after, _ := NewSealedStorage(inner, "rotated secret")
	restarted := NewStore(loginAs(1, types.RoleUser, "tok"), after, discardLogger)
	if err := restarted.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if restarted.Authenticated() {
		t.Errorf("a session sealed with another secret must not be restored")
	}
	if _, err := inner.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("the unreadable entry should be removed")
	}
}
