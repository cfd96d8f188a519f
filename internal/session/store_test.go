package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStoreRoundTrip(t *testing.T) {
	st := tempStore(t)
	in := &Session{Token: "tok", UserID: "u1", Email: "ada@example.com", DisplayName: "Ada"}

	if err := st.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out == nil || *out != *in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestStoreJSONKeysAreStable(t *testing.T) {
	st := tempStore(t)
	if err := st.Save(&Session{Token: "tok", UserID: "u1", Email: "ada@example.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(st.Path)
	if err != nil {
		t.Fatalf("read session file: %v", err)
	}
	for _, key := range []string{`"token"`, `"userId"`, `"userEmail"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("session file missing key %s: %s", key, raw)
		}
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	st := tempStore(t)
	sess, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess != nil {
		t.Fatalf("got %+v, want nil", sess)
	}
}

func TestStoreLoadIgnoresTokenlessFile(t *testing.T) {
	st := tempStore(t)
	if err := os.MkdirAll(filepath.Dir(st.Path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(st.Path, []byte(`{"userId":"u1"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	sess, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess != nil {
		t.Fatalf("got %+v, want nil", sess)
	}
}

func TestStoreSaveRefusesTokenless(t *testing.T) {
	st := tempStore(t)
	if err := st.Save(&Session{UserID: "u1"}); err == nil {
		t.Fatal("expected error saving session without token")
	}
}

func TestStoreSavePermissions(t *testing.T) {
	st := tempStore(t)
	if err := st.Save(&Session{Token: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(st.Path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm: got %o, want 600", perm)
	}
}

func TestStoreClearIsIdempotent(t *testing.T) {
	st := tempStore(t)
	if err := st.Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}
	if err := st.Save(&Session{Token: "tok"}); err != nil {
		t.Fatal(err)
	}
	if err := st.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := st.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if sess, _ := st.Load(); sess != nil {
		t.Fatalf("session survived Clear: %+v", sess)
	}
}
