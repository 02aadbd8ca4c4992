package convert

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// expandPaths resolves a list of path entries for one input. Entries with
// glob metacharacters are expanded and sorted; literal entries pass through
// unchanged. Duplicates are dropped keeping the first occurrence, and
// multi-file glob matches are reported on the logger.
func expandPaths(entries []string, input string, log *zap.Logger) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, entry := range entries {
		if !strings.ContainsAny(entry, "*?[") {
			add(entry)
			continue
		}
		matches, err := filepath.Glob(entry)
		if err != nil {
			return nil, fmt.Errorf("glob %q for %s: %w", entry, input, err)
		}
		sort.Strings(matches)
		if len(matches) > 1 {
			log.Info("glob matched multiple files",
				zap.String("input", input),
				zap.String("pattern", entry),
				zap.Strings("paths", matches))
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}
