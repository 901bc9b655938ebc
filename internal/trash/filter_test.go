package trash

import (
	"fmt"
	"testing"
	"time"

	"github.com/alphapapa/rubbish/internal/config"
)

// testEntry is a minimal Filterable for exercising filter rules
type testEntry struct {
	name      string
	path      string
	deletedAt time.Time
}

func (t testEntry) GetName() string         { return t.name }
func (t testEntry) GetPath() string         { return t.path }
func (t testEntry) GetDeletedAt() time.Time { return t.deletedAt }

func testEntries() []testEntry {
	now := time.Now()
	return []testEntry{
		{name: "file1.txt", path: "/trash/file1.txt", deletedAt: now.Add(-24 * time.Hour)},
		{name: "file2.log", path: "/trash/file2.log", deletedAt: now.Add(-48 * time.Hour)},
		{name: "important.txt", path: "/trash/important.txt", deletedAt: now.Add(-72 * time.Hour)},
		{name: "temp.tmp", path: "/trash/temp.tmp", deletedAt: now.Add(-96 * time.Hour)},
	}
}

func mockSizeFunc() SizeFunc {
	sizemap := map[string]int64{
		"/trash/file1.txt":     100,    // 100 bytes
		"/trash/file2.log":     1024,   // 1 KB
		"/trash/important.txt": 10240,  // 10 KB
		"/trash/temp.tmp":      102400, // 100 KB
	}
	return func(path string) (int64, error) {
		size, exists := sizemap[path]
		if !exists {
			return 0, fmt.Errorf("path not found in mock")
		}
		return size, nil
	}
}

func TestFilter(t *testing.T) {
	testCases := []struct {
		name          string
		opts          FilterOptions
		expectedNames []string
	}{
		{
			name:          "no filters",
			opts:          FilterOptions{SizeOf: mockSizeFunc()},
			expectedNames: []string{"file1.txt", "file2.log", "important.txt", "temp.tmp"},
		},
		{
			name: "exclude by name",
			opts: FilterOptions{
				Exclude: config.ExcludeConfig{Files: []string{"important.txt"}},
				SizeOf:  mockSizeFunc(),
			},
			expectedNames: []string{"file1.txt", "file2.log", "temp.tmp"},
		},
		{
			name: "exclude by pattern",
			opts: FilterOptions{
				Exclude: config.ExcludeConfig{Patterns: []string{`^temp`}},
				SizeOf:  mockSizeFunc(),
			},
			expectedNames: []string{"file1.txt", "file2.log", "important.txt"},
		},
		{
			name: "exclude by glob",
			opts: FilterOptions{
				Exclude: config.ExcludeConfig{Globs: []string{"*.txt"}},
				SizeOf:  mockSizeFunc(),
			},
			expectedNames: []string{"file2.log", "temp.tmp"},
		},
		{
			name: "filter by min size",
			opts: FilterOptions{
				Exclude: config.ExcludeConfig{Size: config.SizeConfig{Min: "1KB"}},
				SizeOf:  mockSizeFunc(),
			},
			expectedNames: []string{"file2.log", "important.txt", "temp.tmp"},
		},
		{
			name: "filter by max size",
			opts: FilterOptions{
				Exclude: config.ExcludeConfig{Size: config.SizeConfig{Max: "10KB"}},
				SizeOf:  mockSizeFunc(),
			},
			expectedNames: []string{"file1.txt", "file2.log"},
		},
		{
			name: "include period keeps recent items only",
			opts: FilterOptions{
				Include: config.IncludeConfig{Period: 2},
				SizeOf:  mockSizeFunc(),
			},
			expectedNames: []string{"file1.txt"},
		},
		{
			name: "combined filters",
			opts: FilterOptions{
				Include: config.IncludeConfig{Period: 3},
				Exclude: config.ExcludeConfig{
					Files:    []string{"file1.txt"},
					Patterns: []string{`^temp`},
				},
				SizeOf: mockSizeFunc(),
			},
			expectedNames: []string{"file2.log"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filtered := Filter(testEntries(), tc.opts)

			if len(filtered) != len(tc.expectedNames) {
				t.Fatalf("Expected %d items, got %d", len(tc.expectedNames), len(filtered))
			}
			for i, item := range filtered {
				if item.GetName() != tc.expectedNames[i] {
					t.Errorf("item %d = %s, want %s", i, item.GetName(), tc.expectedNames[i])
				}
			}
		})
	}
}
