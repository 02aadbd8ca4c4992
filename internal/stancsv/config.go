package stancsv

import (
	"fmt"
	"strconv"
	"strings"
)

// RunConfig holds the sampler settings recovered from a file's comment
// header. Each file re-derives its RunConfig from scratch; values are never
// carried over from a previously parsed file.
type RunConfig struct {
	NumSamples int
	NumWarmup  int
	Thin       int
	SaveWarmup bool
}

// WarmupRows returns the number of warm-up draws written to the file.
func (c RunConfig) WarmupRows() int {
	if !c.SaveWarmup {
		return 0
	}
	return c.NumWarmup / c.Thin
}

// SampleRows returns the number of post-warm-up draws written to the file.
func (c RunConfig) SampleRows() int {
	return c.NumSamples / c.Thin
}

// ParseRunConfig extracts a RunConfig from the leading comment lines of an
// output file. Recognized entries have the form "key = value" with an
// optional "(Default)" suffix. All four fields are required; a missing field
// is an ErrMissingField, never a silent default.
func ParseRunConfig(comments []string) (RunConfig, error) {
	var cfg RunConfig
	found := make(map[string]bool, 4)

	for _, comment := range comments {
		line := strings.TrimSpace(strings.TrimLeft(comment, "#"))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "(Default)"))

		switch key {
		case "num_samples", "num_warmup", "thin", "save_warmup":
		default:
			continue
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return RunConfig{}, fmt.Errorf("%w: %s = %q: %v", ErrInvalidFormat, key, value, err)
		}
		found[key] = true

		switch key {
		case "num_samples":
			cfg.NumSamples = n
		case "num_warmup":
			cfg.NumWarmup = n
		case "thin":
			cfg.Thin = n
		case "save_warmup":
			cfg.SaveWarmup = n != 0
		}
	}

	for _, key := range []string{"num_samples", "num_warmup", "save_warmup", "thin"} {
		if !found[key] {
			return RunConfig{}, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}
	if cfg.Thin < 1 {
		return RunConfig{}, fmt.Errorf("%w: thin = %d (must be >= 1)", ErrInvalidFormat, cfg.Thin)
	}
	return cfg, nil
}
