package browse

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lumipallolabs/sftpdive/internal/model"
)

func dir(name string) model.Entry {
	return model.Entry{Name: name, Kind: model.KindDir}
}

func file(name string, size int64) model.Entry {
	return model.Entry{Name: name, Kind: model.KindFile, Size: size}
}

func listed(start string, entries ...model.Entry) *Browser {
	b := New(start)
	b.BeginRefresh()
	b.ApplyListing(entries)
	return b
}

func TestNewParsesStartPath(t *testing.T) {
	b := New("/home/alice")
	if got := b.Path(); got != "/home/alice" {
		t.Errorf("Path: got %q, want /home/alice", got)
	}
	if b.AtRoot() {
		t.Error("expected AtRoot false below the root")
	}

	root := New("/")
	if !root.AtRoot() {
		t.Error("expected AtRoot true for /")
	}

	rel := New("not-absolute")
	if got := rel.Path(); got != "/" {
		t.Errorf("relative start should land at root, got %q", got)
	}
}

func TestCursorIsAbsentOnlyWhenEmpty(t *testing.T) {
	b := listed("/")
	if got := b.Cursor(); got != -1 {
		t.Errorf("empty listing: cursor %d, want -1", got)
	}
	if _, ok := b.Selected(); ok {
		t.Error("empty listing must have no selection")
	}

	b.BeginRefresh()
	b.ApplyListing([]model.Entry{file("a.txt", 1)})
	if got := b.Cursor(); got != 0 {
		t.Errorf("non-empty listing: cursor %d, want 0", got)
	}
}

func TestMoveWrapsCyclically(t *testing.T) {
	b := listed("/", file("a", 1), file("b", 1), file("c", 1))

	b.MoveUp()
	if got := b.Cursor(); got != 2 {
		t.Errorf("MoveUp from 0: got %d, want 2", got)
	}
	b.MoveDown()
	if got := b.Cursor(); got != 0 {
		t.Errorf("MoveDown from last: got %d, want 0", got)
	}

	// n presses from index i land on (i+n) mod len
	for n := 1; n <= 7; n++ {
		b.MoveDown()
		if got, want := b.Cursor(), n%3; got != want {
			t.Errorf("after %d downs: got %d, want %d", n, got, want)
		}
	}
}

func TestMoveOnEmptyListingIsNoop(t *testing.T) {
	b := listed("/")
	b.MoveDown()
	b.MoveUp()
	b.JumpBottom()
	if got := b.Cursor(); got != -1 {
		t.Errorf("cursor moved on empty listing: %d", got)
	}
}

func TestJumpTopAndBottom(t *testing.T) {
	b := listed("/", file("a", 1), file("b", 1), file("c", 1))

	b.JumpBottom()
	if got := b.Cursor(); got != 2 {
		t.Errorf("JumpBottom: got %d, want 2", got)
	}
	b.JumpTop()
	if got := b.Cursor(); got != 0 {
		t.Errorf("JumpTop: got %d, want 0", got)
	}
}

func TestAscendPopsSegment(t *testing.T) {
	b := listed("/home/alice", file("a", 1))

	if !b.Ascend() {
		t.Fatal("Ascend below root should report a path change")
	}
	if got := b.Path(); got != "/home" {
		t.Errorf("Path after Ascend: got %q, want /home", got)
	}

	root := listed("/", file("a", 1))
	if root.Ascend() {
		t.Error("Ascend at root should be a no-op")
	}

	b.BeginRefresh()
	if b.Ascend() {
		t.Error("Ascend while pending should be a no-op")
	}
}

func TestActivateParentAscends(t *testing.T) {
	b := listed("/home/alice", file("a", 1))

	action, _ := b.Activate(false)
	if action != ActionRefresh {
		t.Fatalf("expected ActionRefresh, got %v", action)
	}
	if got := b.Path(); got != "/home" {
		t.Errorf("Path after ascend: got %q, want /home", got)
	}
}

func TestActivateDirectoryDescends(t *testing.T) {
	b := listed("/srv", dir("data"), file("a", 1))
	// Skip the parent link
	b.MoveDown()

	action, entry := b.Activate(false)
	if action != ActionRefresh {
		t.Fatalf("expected ActionRefresh, got %v", action)
	}
	if entry.Name != "data" {
		t.Errorf("activated entry %q, want data", entry.Name)
	}
	if got := b.Path(); got != "/srv/data" {
		t.Errorf("Path after descend: got %q, want /srv/data", got)
	}
}

func TestActivateDirectoryRecursiveRequestsDownload(t *testing.T) {
	b := listed("/srv", dir("data"))
	b.MoveDown()

	action, entry := b.Activate(true)
	if action != ActionDownloadDir {
		t.Fatalf("expected ActionDownloadDir, got %v", action)
	}
	if entry.Name != "data" {
		t.Errorf("activated entry %q, want data", entry.Name)
	}
	if got := b.Path(); got != "/srv" {
		t.Errorf("recursive download must not change the path, got %q", got)
	}
}

func TestActivateFileRequestsDownload(t *testing.T) {
	for _, recursive := range []bool{false, true} {
		b := listed("/", file("report.pdf", 4096))

		action, entry := b.Activate(recursive)
		if action != ActionDownloadFile {
			t.Errorf("recursive=%v: expected ActionDownloadFile, got %v", recursive, action)
		}
		if entry.Name != "report.pdf" {
			t.Errorf("activated entry %q", entry.Name)
		}
		if got := b.Path(); got != "/" {
			t.Errorf("file download must not change the path, got %q", got)
		}
	}
}

func TestActivateIgnoredWhileRefreshPending(t *testing.T) {
	b := listed("/srv", dir("data"))
	b.MoveDown()
	b.Activate(false)
	b.BeginRefresh()

	action, _ := b.Activate(false)
	if action != ActionNone {
		t.Errorf("expected ActionNone while pending, got %v", action)
	}
	if got := b.Path(); got != "/srv/data" {
		t.Errorf("pending activation must not move the path again, got %q", got)
	}
}

func TestApplyListingPrefixesParentBelowRoot(t *testing.T) {
	b := listed("/home", file("a", 1))
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected parent link plus file, got %d items", len(items))
	}
	if items[0].Kind != model.KindParent {
		t.Errorf("first item should be the parent link, got %v", items[0].Kind)
	}

	root := listed("/", file("a", 1))
	if len(root.Items()) != 1 {
		t.Errorf("root listing must not have a parent link")
	}
}

func TestApplyErrorKeepsListing(t *testing.T) {
	b := listed("/srv", dir("data"), file("a", 1))
	b.MoveDown()
	before := b.Cursor()

	b.BeginRefresh()
	b.ApplyError(errors.New("permission denied"))

	if len(b.Items()) != 3 {
		t.Errorf("failed refresh must keep items, got %d", len(b.Items()))
	}
	if b.Cursor() != before {
		t.Errorf("failed refresh must keep the cursor, got %d", b.Cursor())
	}
	if b.Pending() {
		t.Error("pending flag must clear after a failed refresh")
	}

	logs := b.Logs()
	if got := logs[len(logs)-1]; got != "Error fetching files: permission denied" {
		t.Errorf("unexpected log line %q", got)
	}
}

func TestLogRingStaysBounded(t *testing.T) {
	b := New("/")
	for i := 0; i < LogCap+50; i++ {
		b.Logf("line %d", i)
	}
	logs := b.Logs()
	if len(logs) != LogCap {
		t.Fatalf("expected %d log lines, got %d", LogCap, len(logs))
	}
	if got := logs[len(logs)-1]; got != fmt.Sprintf("line %d", LogCap+49) {
		t.Errorf("newest line %q", got)
	}
}

func TestEntryPath(t *testing.T) {
	b := listed("/srv/data", file("a.txt", 1))
	// Index 0 is the parent link
	b.MoveDown()
	e, _ := b.Selected()
	if got := b.EntryPath(e); got != "/srv/data/a.txt" {
		t.Errorf("EntryPath: got %q", got)
	}
}
