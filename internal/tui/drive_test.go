package tui

import (
	"strings"
	"testing"

	"docme/internal/api"
)

func loadedDriveModel(t *testing.T, backend *fakeBackend, ctx *appCtx, files []api.DriveFile) *DriveModel {
	t.Helper()
	backend.set("/letters/drive-files", files)
	m := NewDriveModel(ctx)
	runCmd(t, m, m.refresh())
	return m
}

func TestDriveRefreshWithoutToken(t *testing.T) {
	ctx, backend := newTestCtx(t, false)
	m := NewDriveModel(ctx)

	if cmd := m.refresh(); cmd != nil {
		t.Fatal("refresh without a token should not issue a command")
	}
	if m.errText != "You must be logged in to view files" {
		t.Fatalf("errText: got %q", m.errText)
	}
	if backend.total() != 0 {
		t.Fatalf("backend was hit %d times", backend.total())
	}
}

func TestDriveRootLoadKeepsServerOrder(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	files := []api.DriveFile{
		driveDoc("d1", "zeta.txt"),
		driveFolder("f1", "Alpha"),
		driveDoc("d2", "middle.txt"),
	}
	m := loadedDriveModel(t, backend, ctx, files)

	rows := m.visibleRows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, want := range []string{"d1", "f1", "d2"} {
		if rows[i].file.ID != want {
			t.Fatalf("row %d: got %q, want %q", i, rows[i].file.ID, want)
		}
	}
}

func TestDriveExpandCollapseExpandRefetches(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	m := loadedDriveModel(t, backend, ctx, []api.DriveFile{driveFolder("f1", "Letters")})

	backend.set("/letters/drive-files/f1", []api.DriveFile{driveDoc("c1", "first.doc")})
	runCmd(t, m, m.toggleFolder("f1"))

	if got := backend.count("/letters/drive-files/f1"); got != 1 {
		t.Fatalf("expand fetches: got %d, want 1", got)
	}
	rows := m.visibleRows()
	if len(rows) != 2 || rows[1].file.ID != "c1" || rows[1].depth != 1 {
		t.Fatalf("after expand: %+v", rows)
	}

	// Collapse: children stay cached but leave the visible rows, and no
	// request goes out.
	if cmd := m.toggleFolder("f1"); cmd != nil {
		t.Fatal("collapse should not issue a command")
	}
	if got := backend.count("/letters/drive-files/f1"); got != 1 {
		t.Fatalf("collapse fetched: got %d requests", got)
	}
	if len(m.visibleRows()) != 1 {
		t.Fatal("collapsed children still visible")
	}
	if st := m.folders["f1"]; st == nil || len(st.children) != 1 {
		t.Fatal("collapse dropped cached children")
	}

	// Re-expand always refetches, picking up server-side changes.
	backend.set("/letters/drive-files/f1", []api.DriveFile{
		driveDoc("c2", "newest.doc"),
		driveDoc("c1", "first.doc"),
	})
	runCmd(t, m, m.toggleFolder("f1"))

	if got := backend.count("/letters/drive-files/f1"); got != 2 {
		t.Fatalf("re-expand fetches: got %d, want 2", got)
	}
	rows = m.visibleRows()
	if len(rows) != 3 || rows[1].file.ID != "c2" || rows[2].file.ID != "c1" {
		t.Fatalf("after re-expand: %+v", rows)
	}
}

func TestDriveToggleWithoutTokenNoFetch(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	m := loadedDriveModel(t, backend, ctx, []api.DriveFile{driveFolder("f1", "Letters")})

	ctx.sess = nil
	before := backend.total()
	if cmd := m.toggleFolder("f1"); cmd != nil {
		t.Fatal("toggle without a token should not issue a command")
	}
	if backend.total() != before {
		t.Fatal("toggle without a token hit the backend")
	}
}

func TestDriveFolderLastWriteWins(t *testing.T) {
	ctx, _ := newTestCtx(t, true)
	m := NewDriveModel(ctx)
	m.files = []api.DriveFile{driveFolder("f1", "Letters")}
	m.expanded["f1"] = true
	m.folders["f1"] = &folderState{phase: folderLoading}

	// Two in-flight responses for the same folder resolve in arrival
	// order; the later one is the one kept.
	m.Update(folderFilesMsg{folderID: "f1", files: []api.DriveFile{driveDoc("old", "stale.doc")}})
	m.Update(folderFilesMsg{folderID: "f1", files: []api.DriveFile{driveDoc("new", "fresh.doc")}})

	st := m.folders["f1"]
	if st == nil || st.phase != folderLoaded {
		t.Fatalf("folder state: %+v", st)
	}
	if len(st.children) != 1 || st.children[0].ID != "new" {
		t.Fatalf("children: %+v", st.children)
	}
}

func TestDriveFolderErrorThenRecovery(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	m := loadedDriveModel(t, backend, ctx, []api.DriveFile{driveFolder("f1", "Letters")})

	backend.fail("/letters/drive-files/f1", 500)
	runCmd(t, m, m.toggleFolder("f1"))

	rows := m.visibleRows()
	if len(rows) != 2 || rows[1].placeholder != "Error loading folder contents" {
		t.Fatalf("after failure: %+v", rows)
	}

	// Collapse and re-expand retries the fetch.
	m.toggleFolder("f1")
	backend.fail("/letters/drive-files/f1", 0)
	backend.set("/letters/drive-files/f1", []api.DriveFile{driveDoc("c1", "ok.doc")})
	runCmd(t, m, m.toggleFolder("f1"))

	rows = m.visibleRows()
	if len(rows) != 2 || rows[1].file.ID != "c1" {
		t.Fatalf("after recovery: %+v", rows)
	}
}

func TestDriveEmptyFolderPlaceholder(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	m := loadedDriveModel(t, backend, ctx, []api.DriveFile{driveFolder("f1", "Empty")})

	backend.set("/letters/drive-files/f1", []api.DriveFile{})
	runCmd(t, m, m.toggleFolder("f1"))

	rows := m.visibleRows()
	if len(rows) != 2 || rows[1].placeholder != "This folder is empty" {
		t.Fatalf("got %+v", rows)
	}
}

func TestDriveLoadingPlaceholderWhileFetchInFlight(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	m := loadedDriveModel(t, backend, ctx, []api.DriveFile{driveFolder("f1", "Slow")})

	// Toggle but do not deliver the response yet.
	if cmd := m.toggleFolder("f1"); cmd == nil {
		t.Fatal("expected a fetch command")
	}
	rows := m.visibleRows()
	if len(rows) != 2 || rows[1].placeholder != "Loading folder contents..." {
		t.Fatalf("got %+v", rows)
	}
}

func TestDriveRootRefreshLeavesFolderArenaAlone(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	m := loadedDriveModel(t, backend, ctx, []api.DriveFile{driveFolder("f1", "Letters")})

	backend.set("/letters/drive-files/f1", []api.DriveFile{driveDoc("c1", "kept.doc")})
	runCmd(t, m, m.toggleFolder("f1"))

	backend.set("/letters/drive-files", []api.DriveFile{
		driveFolder("f1", "Letters"),
		driveDoc("d9", "new-root.doc"),
	})
	runCmd(t, m, m.refresh())

	if st := m.folders["f1"]; st == nil || st.phase != folderLoaded || len(st.children) != 1 {
		t.Fatalf("root refresh clobbered folder state: %+v", st)
	}
	if !m.expanded["f1"] {
		t.Fatal("root refresh collapsed the folder")
	}
	rows := m.visibleRows()
	if len(rows) != 3 || rows[1].file.ID != "c1" || rows[2].file.ID != "d9" {
		t.Fatalf("rows after refresh: %+v", rows)
	}
}

func TestDriveRootErrorKeepsStaleListing(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	m := loadedDriveModel(t, backend, ctx, []api.DriveFile{driveDoc("d1", "keep.doc")})

	backend.fail("/letters/drive-files", 500)
	runCmd(t, m, m.refresh())

	if m.errText != "" {
		t.Fatalf("error surfaced despite stale data: %q", m.errText)
	}
	if len(m.files) != 1 || m.files[0].ID != "d1" {
		t.Fatalf("stale listing lost: %+v", m.files)
	}
}

func TestDriveRootErrorWithNothingLoaded(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	backend.fail("/letters/drive-files", 500)
	m := NewDriveModel(ctx)
	runCmd(t, m, m.refresh())

	if m.errText != "Failed to fetch Google Drive files" {
		t.Fatalf("errText: got %q", m.errText)
	}
}

func TestDriveNestedExpansionDepth(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	m := loadedDriveModel(t, backend, ctx, []api.DriveFile{driveFolder("f1", "Outer")})

	backend.set("/letters/drive-files/f1", []api.DriveFile{driveFolder("f2", "Inner")})
	runCmd(t, m, m.toggleFolder("f1"))
	backend.set("/letters/drive-files/f2", []api.DriveFile{driveDoc("c1", "deep.doc")})
	runCmd(t, m, m.toggleFolder("f2"))

	rows := m.visibleRows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[1].file.ID != "f2" || rows[1].depth != 1 {
		t.Fatalf("inner folder row: %+v", rows[1])
	}
	if rows[2].file.ID != "c1" || rows[2].depth != 2 {
		t.Fatalf("deep file row: %+v", rows[2])
	}
}

func TestDriveViewEmptyAndErrorStates(t *testing.T) {
	ctx, backend := newTestCtx(t, true)
	m := loadedDriveModel(t, backend, ctx, []api.DriveFile{})

	if out := m.View(); !strings.Contains(out, "No files found in your Google Drive.") {
		t.Fatalf("empty view: %q", out)
	}

	m2 := NewDriveModel(ctx)
	m2.errText = "You must be logged in to view files"
	if out := m2.View(); !strings.Contains(out, "You must be logged in to view files") {
		t.Fatalf("error view: %q", out)
	}
}

func TestFileIcon(t *testing.T) {
	cases := []struct {
		mime     string
		expanded bool
		want     string
	}{
		{api.FolderMimeType, false, "📁"},
		{api.FolderMimeType, true, "📂"},
		{api.DocumentMimeType, false, "📄"},
		{api.SpreadsheetMimeType, false, "📊"},
		{"image/png", false, "🖼️"},
		{"text/plain", false, "📝"},
		{"application/pdf", false, "📎"},
	}
	for _, tc := range cases {
		if got := fileIcon(tc.mime, tc.expanded); got != tc.want {
			t.Fatalf("fileIcon(%q, %v) = %q, want %q", tc.mime, tc.expanded, got, tc.want)
		}
	}
}

func TestMimeTypeLabel(t *testing.T) {
	if got := mimeTypeLabel(api.DocumentMimeType); got != "document" {
		t.Fatalf("got %q", got)
	}
	if got := mimeTypeLabel("image/png"); got != "image/png" {
		t.Fatalf("got %q", got)
	}
}
