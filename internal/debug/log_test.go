package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alphapapa/rubbish/internal/env"
)

func TestLogsNonTerminalWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := os.WriteFile(path, []byte("first line\nsecond line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	orig := env.RUBBISH_LOG_PATH
	env.RUBBISH_LOG_PATH = path
	defer func() { env.RUBBISH_LOG_PATH = orig }()

	// A non-file writer is never a terminal, so Logs must not follow
	// the file and must return once it is drained
	var buf bytes.Buffer
	if err := Logs(&buf); err != nil {
		t.Fatalf("Logs() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"first line", "second line"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}
