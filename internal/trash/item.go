package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alphapapa/rubbish/internal/fs"
)

// Item represents one trashed or to-be-trashed path. A non-orphan item has
// both a content file under files/ and a trashinfo file under info/, linked
// by a common stem; the two are removed together or not at all.
type Item struct {
	// OriginalPath is the absolute path of the source location
	OriginalPath string

	// TrashedPath is where the content lives under files/ once trashed
	TrashedPath string

	// InfoPath is the paired trashinfo file under info/
	InfoPath string

	// DeletionDate is when the item was trashed (UTC); zero until
	// trashing completes
	DeletionDate time.Time

	bin *Bin

	// trashed is set only after the content file has been confirmed to
	// exist at TrashedPath, not merely from metadata presence
	trashed bool
}

// NewItem returns a pending item for path, which is made absolute against
// the working directory. The item enters the bin only when Trash is called.
func NewItem(b *Bin, path string) (*Item, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOpError("item", path, err)
	}
	return &Item{bin: b, OriginalPath: abs}, nil
}

// newItemFromInfoFile constructs an item from a trashinfo file. It fails
// with ErrOrphaned if the paired content file does not exist.
func newItemFromInfoFile(b *Bin, infoPath string) (*Item, error) {
	info, err := LoadInfo(infoPath)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(infoPath), InfoSuffix)
	item := &Item{
		OriginalPath: info.Path,
		TrashedPath:  filepath.Join(b.filesDir, stem),
		InfoPath:     infoPath,
		DeletionDate: info.DeletionDate,
		bin:          b,
	}

	if _, err := os.Lstat(item.TrashedPath); err != nil {
		return nil, fmt.Errorf("%w: no content at %s", ErrOrphaned, item.TrashedPath)
	}
	item.trashed = true

	return item, nil
}

// Trashed reports whether the item's content has been confirmed to exist in
// the bin.
func (i *Item) Trashed() bool { return i.trashed }

// Size returns the recursive size of the item's trashed content.
func (i *Item) Size() (int64, error) {
	return fs.PathSize(i.TrashedPath, i.bin.opts.FollowSymlinks)
}

// Trash moves the item into the bin. The trashinfo file is written before
// the content is moved, so a metadata failure displaces nothing. If the
// content move itself fails, the already-written trashinfo file is left in
// place and reported by the next orphan scan; removing it here could race a
// concurrent actor that reused the name.
func (i *Item) Trash() error {
	base := filepath.Base(i.OriginalPath)

	name, err := ResolveName(base, i.bin.ItemExists)
	if err != nil {
		return NewOpError("trash", i.OriginalPath, err)
	}
	if name != base {
		slog.Debug("resolved name collision", "base", base, "name", name)
	}

	i.TrashedPath = filepath.Join(i.bin.filesDir, name)
	i.InfoPath = filepath.Join(i.bin.infoDir, name+InfoSuffix)
	i.DeletionDate = time.Now().UTC().Truncate(time.Second)

	info := &TrashInfo{Path: i.OriginalPath, DeletionDate: i.DeletionDate}
	if err := info.Save(i.InfoPath); err != nil {
		return NewOpError("trash", i.OriginalPath, err)
	}

	if err := fs.Move(i.OriginalPath, i.TrashedPath, i.bin.opts.FallbackCopy); err != nil {
		slog.Warn("content move failed, trashinfo file left in place",
			"info", i.InfoPath, "error", err)
		return NewOpError("trash", i.OriginalPath, err)
	}

	i.trashed = true
	slog.Info("trashed item", "original", i.OriginalPath, "trashed", i.TrashedPath)
	return nil
}

// Restore moves the item's content back out of the bin and removes its
// trashinfo file. If the item was identified by original path only, the
// matching trashinfo file is located first.
//
// The destination is dest/<basename> when dest is non-empty, otherwise the
// recorded original path. Restore never overwrites: it fails with
// ErrAlreadyExists if the destination exists. The exists-check and the move
// are not atomic; the window between them is an accepted property of a
// single-actor bin.
func (i *Item) Restore(dest string) error {
	if i.InfoPath == "" {
		if err := i.locateInfoFile(); err != nil {
			return NewOpError("restore", i.OriginalPath, err)
		}
	}

	target := i.OriginalPath
	if dest != "" {
		target = filepath.Join(dest, filepath.Base(i.OriginalPath))
	}

	if _, err := os.Lstat(target); err == nil {
		return NewOpError("restore", target, ErrAlreadyExists)
	}

	if err := fs.Move(i.TrashedPath, target, i.bin.opts.FallbackCopy); err != nil {
		// Content stays in the bin, trashinfo stays valid
		return NewOpError("restore", target, err)
	}

	if err := os.Remove(i.InfoPath); err != nil {
		// The content is already restored; a stale trashinfo file is
		// reported by the next orphan scan, not retried here
		slog.Warn("unable to remove trashinfo file after restore",
			"info", i.InfoPath, "error", err)
	}

	i.trashed = false
	slog.Info("restored item", "target", target)
	return nil
}

// Delete permanently removes the item: content first, trashinfo second.
// The ordering mirrors Trash, so a partial failure trends toward a stray
// trashinfo file rather than content without a record. Directories are
// removed recursively; symlinks are unlinked, never followed.
func (i *Item) Delete() error {
	if err := os.RemoveAll(i.TrashedPath); err != nil {
		return NewOpError("delete", i.TrashedPath, err)
	}
	i.trashed = false

	if err := os.Remove(i.InfoPath); err != nil {
		return NewOpError("delete", i.InfoPath, err)
	}

	slog.Debug("deleted item", "trashed", i.TrashedPath, "info", i.InfoPath)
	return nil
}

// locateInfoFile finds the trashinfo file recording this item's original
// path. Candidates are info files whose stem is the path's base name or
// that name followed by a numeric suffix. A single candidate is adopted as
// is; among multiple candidates exactly one must record the requested path.
func (i *Item) locateInfoFile() error {
	base := filepath.Base(i.OriginalPath)
	candidates, err := i.bin.matchingInfoFiles(base)
	if err != nil {
		return err
	}

	switch len(candidates) {
	case 0:
		return fmt.Errorf("%w: %s", ErrNotFound, i.OriginalPath)

	case 1:
		slog.Debug("found one trashinfo file matching name", "path", candidates[0])
		return i.adoptInfoFile(candidates[0])

	default:
		slog.Debug("found multiple trashinfo files matching name", "count", len(candidates))
		var matches []string
		for _, c := range candidates {
			info, err := LoadInfo(c)
			if err != nil {
				slog.Warn("skipping unreadable trashinfo file", "path", c, "error", err)
				continue
			}
			if info.Path == i.OriginalPath {
				matches = append(matches, c)
			}
		}

		switch len(matches) {
		case 0:
			return fmt.Errorf("%w: %s", ErrNotFound, i.OriginalPath)
		case 1:
			return i.adoptInfoFile(matches[0])
		default:
			// Distinct originals resolve to distinct names, so a
			// well-formed bin cannot reach this
			return fmt.Errorf("%w: %s", ErrAmbiguousMatch, i.OriginalPath)
		}
	}
}

// adoptInfoFile populates the item from a located trashinfo file.
func (i *Item) adoptInfoFile(infoPath string) error {
	info, err := LoadInfo(infoPath)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(infoPath), InfoSuffix)
	i.OriginalPath = info.Path
	i.TrashedPath = filepath.Join(i.bin.filesDir, stem)
	i.InfoPath = infoPath
	i.DeletionDate = info.DeletionDate

	if _, err := os.Lstat(i.TrashedPath); err == nil {
		i.trashed = true
	}
	return nil
}

// matchingInfoFiles returns the info files whose stem is base or base
// followed by "_<number>".
func (b *Bin) matchingInfoFiles(base string) ([]string, error) {
	entries, err := os.ReadDir(b.infoDir)
	if err != nil {
		return nil, NewOpError("match", b.infoDir, err)
	}

	suffixed := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `_[0-9]+$`)

	var paths []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), InfoSuffix) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), InfoSuffix)
		if stem == base || suffixed.MatchString(stem) {
			paths = append(paths, filepath.Join(b.infoDir, entry.Name()))
		}
	}
	return paths, nil
}

// Filterable implementation, used by List filtering.

// GetName returns the original base name of the item
func (i *Item) GetName() string { return filepath.Base(i.OriginalPath) }

// GetPath returns the item's current path in the bin
func (i *Item) GetPath() string { return i.TrashedPath }

// GetDeletedAt returns when the item was trashed
func (i *Item) GetDeletedAt() time.Time { return i.DeletionDate }
