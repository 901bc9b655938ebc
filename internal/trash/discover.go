package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alphapapa/rubbish/internal/env"
	"github.com/moby/sys/mountinfo"
)

// Skip file systems that can't have trash directories
var skipFSTypes = map[string]bool{
	"proc":        true,
	"sysfs":       true,
	"devtmpfs":    true,
	"devpts":      true,
	"tmpfs":       true,
	"cgroup":      true,
	"cgroup2":     true,
	"pstore":      true,
	"securityfs":  true,
	"debugfs":     true,
	"configfs":    true,
	"fusectl":     true,
	"bpf":         true,
	"nsfs":        true,
	"efivarfs":    true,
	"hugetlbfs":   true,
	"mqueue":      true,
	"binfmt_misc": true,
}

// Candidate is a trash bin location found on the system. Valid reports
// whether it passes bin validation (files/ and info/ both present).
type Candidate struct {
	// Root is the bin root directory
	Root string

	// Home marks the per-user home trash
	Home bool

	// Valid reports whether Open would accept the root
	Valid bool
}

// Discover returns the home trash plus every $topdir/.Trash/$uid and
// $topdir/.Trash-$uid candidate on mounted filesystems. Discovery is
// reporting only; operations always run against a single bin.
func Discover() ([]Candidate, error) {
	candidates := []Candidate{newCandidate(env.RUBBISH_TRASH_PATH, true)}

	mounts, err := mountPoints()
	if err != nil {
		return candidates, fmt.Errorf("failed to scan mount points: %w", err)
	}

	uid := strconv.Itoa(os.Getuid())
	for _, mount := range mounts {
		for _, root := range []string{
			filepath.Join(mount, ".Trash", uid),
			filepath.Join(mount, ".Trash-"+uid),
		} {
			if _, err := os.Stat(root); err != nil {
				continue
			}
			candidates = append(candidates, newCandidate(root, false))
		}
	}

	return candidates, nil
}

func newCandidate(root string, home bool) Candidate {
	_, err := Open(root, Options{})
	return Candidate{Root: root, Home: home, Valid: err == nil}
}

// mountPoints returns the mount points that can contain trash directories
func mountPoints() ([]string, error) {
	mounts, err := mountinfo.GetMounts(func(info *mountinfo.Info) (skip, stop bool) {
		// Skip known unsuitable filesystems
		if skipFSTypes[info.FSType] {
			return true, false
		}

		// Skip read-only filesystems
		for _, opt := range strings.Split(info.Options, ",") {
			if opt == "ro" {
				return true, false
			}
		}

		return false, false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get mount info: %w", err)
	}

	seen := make(map[string]bool)
	var points []string
	for _, m := range mounts {
		if !seen[m.Mountpoint] {
			points = append(points, m.Mountpoint)
			seen[m.Mountpoint] = true
			slog.Debug("found mount point", "mountpoint", m.Mountpoint, "fstype", m.FSType)
		}
	}

	return points, nil
}
