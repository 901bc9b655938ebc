// Package trash implements the trash-bin item lifecycle: moving paths into
// an XDG trash bin, enumerating and restoring what it holds, and purging
// items by age or orphan status.
//
// The engine is deliberately single-actor: no locking guards the bin
// directories, and the races between existence checks and the renames that
// follow them are documented rather than eliminated.
package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Options configures how a Bin performs its operations.
type Options struct {
	// FollowSymlinks makes size accounting traverse symlink targets.
	// When false (the default), a symlink counts as its own link size and
	// is never followed.
	FollowSymlinks bool

	// FallbackCopy enables copy-and-delete when a rename fails because
	// source and destination are on different devices.
	FallbackCopy bool
}

// Bin represents a single XDG trash bin: a root directory with files/ and
// info/ subdirectories.
//
// A Bin is constructed once per invocation and is read-only after
// construction except for its cached item list. The cache is never
// refreshed; callers observe new bin state by opening a new Bin.
type Bin struct {
	root     string
	filesDir string
	infoDir  string
	opts     Options

	items   []*Item
	orphans []string // info files without content, recorded during load
	corrupt []string // info files that failed to parse
	loaded  bool
}

// Open validates root as a trash bin and returns a Bin for it. The root is
// considered valid if both the files/ and info/ subdirectories exist as
// directories; Open fails with ErrInvalidBin otherwise and never creates
// them.
func Open(root string, opts Options) (*Bin, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, NewOpError("open", root, err)
	}

	b := &Bin{
		root:     abs,
		filesDir: filepath.Join(abs, "files"),
		infoDir:  filepath.Join(abs, "info"),
		opts:     opts,
	}

	for _, dir := range []string{b.filesDir, b.infoDir} {
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidBin, abs)
		}
	}

	slog.Debug("opened trash bin", "root", abs)
	return b, nil
}

// Root returns the root directory of the bin
func (b *Bin) Root() string { return b.root }

// FilesDir returns the directory holding trashed content
func (b *Bin) FilesDir() string { return b.filesDir }

// InfoDir returns the directory holding trashinfo files
func (b *Bin) InfoDir() string { return b.infoDir }

// ItemExists reports whether name is taken in the bin: either a content
// entry files/name or a metadata file info/name.trashinfo. A dangling half
// of an entry still occupies the name, so both sides are checked.
func (b *Bin) ItemExists(name string) bool {
	if _, err := os.Lstat(filepath.Join(b.filesDir, name)); err == nil {
		return true
	}
	if _, err := os.Lstat(filepath.Join(b.infoDir, name+InfoSuffix)); err == nil {
		return true
	}
	return false
}

// Items returns the items held by the bin, sorted by deletion time
// ascending. The list is loaded from the info directory on first use and
// cached for the lifetime of the Bin.
//
// Metadata files whose content is missing are classified as orphaned and
// excluded; unparseable ones are classified as corrupt and excluded. Both
// are reported through OrphanedInfoFiles and CorruptInfoFiles.
func (b *Bin) Items() ([]*Item, error) {
	if b.loaded {
		return b.items, nil
	}

	entries, err := os.ReadDir(b.infoDir)
	if err != nil {
		return nil, NewOpError("list", b.infoDir, err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), InfoSuffix) {
			continue
		}
		if strings.HasPrefix(entry.Name(), "._") {
			// exclude mac resource forks
			slog.Debug("skipped mac resource fork", "name", entry.Name())
			continue
		}

		infoPath := filepath.Join(b.infoDir, entry.Name())
		item, err := newItemFromInfoFile(b, infoPath)
		switch {
		case err == nil:
			b.items = append(b.items, item)
		case IsOrphaned(err):
			slog.Warn("trashinfo file appears to be orphaned", "path", infoPath)
			b.orphans = append(b.orphans, infoPath)
		default:
			slog.Warn("unable to read trashinfo file", "path", infoPath, "error", err)
			b.corrupt = append(b.corrupt, infoPath)
		}
	}

	slices.SortFunc(b.items, func(a, c *Item) int {
		return a.DeletionDate.Compare(c.DeletionDate)
	})

	b.loaded = true
	slog.Debug("loaded trash bin items",
		"items", len(b.items),
		"orphaned", len(b.orphans),
		"corrupt", len(b.corrupt))
	return b.items, nil
}

// OrphanedInfoFiles returns the info files found without paired content
// during the last Items load.
func (b *Bin) OrphanedInfoFiles() []string { return b.orphans }

// CorruptInfoFiles returns the info files that failed to parse during the
// last Items load.
func (b *Bin) CorruptInfoFiles() []string { return b.corrupt }

// Orphans returns the content paths in files/ that have no matching
// trashinfo file, the inverse of the orphaned-metadata check.
func (b *Bin) Orphans() ([]string, error) {
	entries, err := os.ReadDir(b.filesDir)
	if err != nil {
		return nil, NewOpError("orphans", b.filesDir, err)
	}

	var orphans []string
	for _, entry := range entries {
		infoPath := filepath.Join(b.infoDir, entry.Name()+InfoSuffix)
		if _, err := os.Lstat(infoPath); os.IsNotExist(err) {
			orphans = append(orphans, filepath.Join(b.filesDir, entry.Name()))
		}
	}
	return orphans, nil
}

// PurgeResult reports the outcome of a purge over the bin.
type PurgeResult struct {
	// Deleted is the number of items removed
	Deleted int

	// Reclaimed is the total recursive size of the removed content
	Reclaimed int64

	// Failures holds the per-item errors; a failed item never aborts the
	// rest of the purge
	Failures []error
}

// EmptyBefore deletes every item whose deletion time is strictly before
// cutoff, oldest first, and accumulates the reclaimed size. Individual item
// failures are collected in the result, not propagated.
func (b *Bin) EmptyBefore(cutoff time.Time) (*PurgeResult, error) {
	items, err := b.Items()
	if err != nil {
		return nil, err
	}

	result := &PurgeResult{}
	for _, item := range items {
		if !item.DeletionDate.Before(cutoff) {
			// Items are sorted ascending, nothing newer qualifies
			break
		}

		size, err := item.Size()
		if err != nil {
			slog.Warn("unable to size item before purge", "path", item.TrashedPath, "error", err)
			size = 0
		}

		if err := item.Delete(); err != nil {
			slog.Warn("unable to purge item", "path", item.TrashedPath, "error", err)
			result.Failures = append(result.Failures, err)
			continue
		}

		slog.Info("purged item", "original", item.OriginalPath, "size", size)
		result.Deleted++
		result.Reclaimed += size
	}

	return result, nil
}
