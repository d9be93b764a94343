package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/course-match/course-match/match/trace"
)

// WriteTraceLog renders the decision trace to matcher_log.txt in dir and
// returns the file path.
func WriteTraceLog(dir string, tr *trace.MatchTrace) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, TraceLogFile)
	lines := tr.Render()
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write trace log: %w", err)
	}
	return path, nil
}
