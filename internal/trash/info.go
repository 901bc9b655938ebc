package trash

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alphapapa/rubbish/internal/fs"
)

const (
	// According to XDG spec
	trashInfoHeader = "[Trash Info]"
	timeFormat      = "2006-01-02T15:04:05"

	// InfoSuffix is the suffix of metadata files in the info directory
	InfoSuffix = ".trashinfo"
)

// TrashInfo represents the contents of a .trashinfo file: the original
// absolute path of an item and the time it was trashed.
//
// The key names Path and DeletionDate are written and matched with their
// exact case. Other trash-spec consumers read these files case-sensitively,
// so the casing is part of the wire contract, not a style choice.
type TrashInfo struct {
	// Path is the absolute original path of the file
	Path string

	// DeletionDate is when the file was moved to trash, in UTC
	DeletionDate time.Time
}

// ParseInfo reads a TrashInfo from r. It fails with ErrInvalidMetadata if
// the section header is missing, either field is missing, or the deletion
// date does not match the fixed format.
func ParseInfo(r io.Reader) (*TrashInfo, error) {
	scanner := bufio.NewScanner(r)
	info := &TrashInfo{}
	var headerFound bool

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for header
		if line == trashInfoHeader {
			headerFound = true
			continue
		}

		// Skip until header is found
		if !headerFound {
			continue
		}

		// Parse key=value pairs
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Keys are matched case-sensitively
		switch key {
		case "Path":
			info.Path = value

		case "DeletionDate":
			date, err := time.ParseInLocation(timeFormat, value, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid DeletionDate format: %v", ErrInvalidMetadata, err)
			}
			info.DeletionDate = date
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading info file: %w", err)
	}

	// Validate required fields
	if !headerFound {
		return nil, fmt.Errorf("%w: missing %s header", ErrInvalidMetadata, trashInfoHeader)
	}
	if info.Path == "" {
		return nil, fmt.Errorf("%w: missing Path field", ErrInvalidMetadata)
	}
	if info.DeletionDate.IsZero() {
		return nil, fmt.Errorf("%w: missing DeletionDate field", ErrInvalidMetadata)
	}

	return info, nil
}

// Save writes the trash info to a new file at path. It fails with
// ErrAlreadyExists if path exists; a metadata file is never overwritten,
// since that would clobber another item's record.
func (i *TrashInfo) Save(path string) error {
	content := new(strings.Builder)
	fmt.Fprintln(content, trashInfoHeader)
	fmt.Fprintf(content, "Path=%s\n", i.Path)
	fmt.Fprintf(content, "DeletionDate=%s\n", i.DeletionDate.UTC().Format(timeFormat))

	// O_EXCL keeps the exists-check and the create a single step
	f, err := fs.CreateExclusive(path, 0600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}
		return fmt.Errorf("failed to create info file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content.String()); err != nil {
		// Try to remove the file if write fails
		os.Remove(path)
		return fmt.Errorf("failed to write info file: %w", err)
	}

	return nil
}

// LoadInfo loads and parses a .trashinfo file
func LoadInfo(path string) (*TrashInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open info file: %w", err)
	}
	defer f.Close()

	return ParseInfo(f)
}
