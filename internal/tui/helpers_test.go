package tui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"docme/internal/api"
	"docme/internal/app"
	"docme/internal/session"
)

// fakeBackend serves canned JSON per path and counts requests, so tests
// can assert which endpoints a command hit.
type fakeBackend struct {
	mu        sync.Mutex
	responses map[string]interface{}
	status    map[string]int
	hits      map[string]int
	bodies    map[string]map[string]string
	methods   map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		responses: make(map[string]interface{}),
		status:    make(map[string]int),
		hits:      make(map[string]int),
		bodies:    make(map[string]map[string]string),
		methods:   make(map[string]string),
	}
}

func (f *fakeBackend) set(path string, v interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = v
}

func (f *fakeBackend) fail(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[path] = status
}

func (f *fakeBackend) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.hits {
		n += c
	}
	return n
}

func (f *fakeBackend) lastBody(path string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[path]
}

func (f *fakeBackend) lastMethod(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.methods[path]
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.methods[r.URL.Path] = r.Method
	if body != nil {
		f.bodies[r.URL.Path] = body
	}
	status := f.status[r.URL.Path]
	resp := f.responses[r.URL.Path]
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, `{"message":"boom"}`, status)
		return
	}
	if resp == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	json.NewEncoder(w).Encode(resp)
}

// newTestCtx wires an appCtx against a local fake backend. signedIn
// controls whether a session with a token is present.
func newTestCtx(t *testing.T, signedIn bool) (*appCtx, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	log := app.NewLogger(io.Discard)
	ctx := &appCtx{
		cfg:   app.DefaultConfig(),
		log:   log,
		store: session.NewStore(filepath.Join(t.TempDir(), "session.json")),
		theme: NewTheme("no-color"),
	}
	if signedIn {
		ctx.sess = &session.Session{Token: "tok", UserID: "u1", Email: "ada@example.com"}
	}
	ctx.client = api.NewClient(srv.URL, func() string {
		if ctx.sess.Valid() {
			return ctx.sess.Token
		}
		return ""
	}, log)
	return ctx, backend
}

func driveFolder(id, name string) api.DriveFile {
	return api.DriveFile{ID: id, Name: name, MimeType: api.FolderMimeType}
}

func driveDoc(id, name string) api.DriveFile {
	return api.DriveFile{ID: id, Name: name, MimeType: api.DocumentMimeType, CreatedTime: "2026-02-10T12:00:00Z"}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// runCmd executes a command synchronously and feeds its message back
// into the model, the way the bubbletea runtime would.
func runCmd(t *testing.T, m screenModel, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	m.Update(cmd())
}
