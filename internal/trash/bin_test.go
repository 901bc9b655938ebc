package trash

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestBin(t *testing.T) *Bin {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"files", "info"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0700); err != nil {
			t.Fatal(err)
		}
	}
	b, err := Open(root, Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return b
}

// seedItem plants a content file and its trashinfo record directly in the
// bin, bypassing Trash so tests control the deletion date.
func seedItem(t *testing.T, b *Bin, name, original string, date time.Time, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(b.FilesDir(), name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	info := &TrashInfo{Path: original, DeletionDate: date}
	if err := info.Save(filepath.Join(b.InfoDir(), name+InfoSuffix)); err != nil {
		t.Fatal(err)
	}
}

func TestEmptyBeforeToleratesItemFailure(t *testing.T) {
	b := newTestBin(t)
	now := time.Now().UTC().Truncate(time.Second)

	seedItem(t, b, "broken", "/p/broken", now.Add(-72*time.Hour), "x")
	seedItem(t, b, "healthy", "/p/healthy", now.Add(-48*time.Hour), "six by")

	// Load the cache, then sabotage the older item so its Delete fails
	if _, err := b.Items(); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(b.InfoDir(), "broken"+InfoSuffix)); err != nil {
		t.Fatal(err)
	}

	result, err := b.EmptyBefore(now)
	if err != nil {
		t.Fatalf("EmptyBefore() error = %v", err)
	}

	// The broken item's failure is collected and the purge continues
	if result.Deleted != 1 {
		t.Errorf("Deleted = %d, want 1", result.Deleted)
	}
	if len(result.Failures) != 1 {
		t.Errorf("Failures = %v, want exactly one", result.Failures)
	}
	if want := int64(len("six by")); result.Reclaimed != want {
		t.Errorf("Reclaimed = %d, want %d", result.Reclaimed, want)
	}
	if _, err := os.Stat(filepath.Join(b.FilesDir(), "healthy")); !os.IsNotExist(err) {
		t.Error("healthy item should have been purged despite the earlier failure")
	}
}

func TestOpenInvalidBin(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
	}{
		{name: "empty root", dirs: nil},
		{name: "missing info", dirs: []string{"files"}},
		{name: "missing files", dirs: []string{"info"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, dir := range tt.dirs {
				if err := os.MkdirAll(filepath.Join(root, dir), 0700); err != nil {
					t.Fatal(err)
				}
			}
			if _, err := Open(root, Options{}); !IsInvalidBin(err) {
				t.Errorf("Open() error = %v, want ErrInvalidBin", err)
			}
		})
	}
}

func TestOpenDoesNotCreateDirectories(t *testing.T) {
	root := t.TempDir()
	if _, err := Open(root, Options{}); err == nil {
		t.Fatal("Open() expected error for empty root")
	}
	if _, err := os.Stat(filepath.Join(root, "files")); !os.IsNotExist(err) {
		t.Error("Open() created the files directory")
	}
}

func TestItemExists(t *testing.T) {
	b := newTestBin(t)

	// Content without metadata still occupies the name
	if err := os.WriteFile(filepath.Join(b.FilesDir(), "content-only"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	// Metadata without content also occupies the name
	if err := os.WriteFile(filepath.Join(b.InfoDir(), "info-only"+InfoSuffix), nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"content-only", true},
		{"info-only", true},
		{"neither", false},
	}
	for _, tt := range tests {
		if got := b.ItemExists(tt.name); got != tt.want {
			t.Errorf("ItemExists(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestItemsClassification(t *testing.T) {
	b := newTestBin(t)
	now := time.Now().UTC().Truncate(time.Second)

	seedItem(t, b, "good", "/home/user/good", now, "data")

	// Orphaned: trashinfo with no content file
	orphanInfo := &TrashInfo{Path: "/home/user/gone", DeletionDate: now}
	if err := orphanInfo.Save(filepath.Join(b.InfoDir(), "gone"+InfoSuffix)); err != nil {
		t.Fatal(err)
	}

	// Corrupt: unparseable trashinfo
	if err := os.WriteFile(filepath.Join(b.InfoDir(), "bad"+InfoSuffix), []byte("not a trashinfo"), 0644); err != nil {
		t.Fatal(err)
	}

	items, err := b.Items()
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Items() returned %d items, want 1", len(items))
	}
	if items[0].OriginalPath != "/home/user/good" {
		t.Errorf("item original = %q", items[0].OriginalPath)
	}
	if !items[0].Trashed() {
		t.Error("loaded item should be marked trashed")
	}
	if got := b.OrphanedInfoFiles(); len(got) != 1 || filepath.Base(got[0]) != "gone"+InfoSuffix {
		t.Errorf("OrphanedInfoFiles() = %v", got)
	}
	if got := b.CorruptInfoFiles(); len(got) != 1 || filepath.Base(got[0]) != "bad"+InfoSuffix {
		t.Errorf("CorruptInfoFiles() = %v", got)
	}
}

func TestItemsSortedByDeletionDate(t *testing.T) {
	b := newTestBin(t)
	now := time.Now().UTC().Truncate(time.Second)

	seedItem(t, b, "newest", "/p/newest", now, "x")
	seedItem(t, b, "oldest", "/p/oldest", now.Add(-48*time.Hour), "x")
	seedItem(t, b, "middle", "/p/middle", now.Add(-24*time.Hour), "x")

	items, err := b.Items()
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, item := range items {
		got = append(got, item.GetName())
	}
	want := []string{"oldest", "middle", "newest"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Items() order = %v, want %v", got, want)
		}
	}
}

func TestOrphans(t *testing.T) {
	b := newTestBin(t)
	now := time.Now().UTC().Truncate(time.Second)

	seedItem(t, b, "paired", "/p/paired", now, "x")
	if err := os.WriteFile(filepath.Join(b.FilesDir(), "stray"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	orphans, err := b.Orphans()
	if err != nil {
		t.Fatalf("Orphans() error = %v", err)
	}
	if len(orphans) != 1 || filepath.Base(orphans[0]) != "stray" {
		t.Errorf("Orphans() = %v, want only stray", orphans)
	}
}

func TestEmptyBefore(t *testing.T) {
	b := newTestBin(t)
	now := time.Now().UTC().Truncate(time.Second)

	seedItem(t, b, "old", "/p/old", now.Add(-48*time.Hour), "twelve bytes")
	seedItem(t, b, "mid", "/p/mid", now.Add(-24*time.Hour), "x")
	seedItem(t, b, "new", "/p/new", now, "x")

	result, err := b.EmptyBefore(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("EmptyBefore() error = %v", err)
	}

	if result.Deleted != 1 {
		t.Errorf("Deleted = %d, want 1", result.Deleted)
	}
	if want := int64(len("twelve bytes")); result.Reclaimed != want {
		t.Errorf("Reclaimed = %d, want %d", result.Reclaimed, want)
	}
	if len(result.Failures) != 0 {
		t.Errorf("Failures = %v", result.Failures)
	}

	// The cutoff item itself and anything newer survive
	for _, name := range []string{"mid", "new"} {
		if _, err := os.Stat(filepath.Join(b.FilesDir(), name)); err != nil {
			t.Errorf("item %q should survive: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(b.InfoDir(), name+InfoSuffix)); err != nil {
			t.Errorf("info %q should survive: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(b.FilesDir(), "old")); !os.IsNotExist(err) {
		t.Error("old content should be deleted")
	}
	if _, err := os.Stat(filepath.Join(b.InfoDir(), "old"+InfoSuffix)); !os.IsNotExist(err) {
		t.Error("old info should be deleted")
	}
}
