// Package stancsv parses the CSV dialect written by the sampler: free-text
// comment headers, a column header row, draw rows, and optionally several
// per-chain blocks stacked in one file.
package stancsv

import (
	"fmt"
	"strings"
)

const (
	// commentMarker starts every metadata line.
	commentMarker = "#"
	// statsSuffix marks sampler-statistics columns (lp__, divergent__, ...).
	statsSuffix = "__"
	// maxTimingLines bounds the scan for timing comments after the last
	// draw row of a file region.
	maxTimingLines = 5
)

// scanState classifies lines during the metadata scan.
type scanState int

const (
	stateBeforeHeader scanState = iota // comment lines are configuration info
	stateAfterHeader                   // comment lines are adaptation info
	stateDone                          // first draw row reached
)

// ChainSegment is one chain's worth of parsed output: the draw table split
// into model variables and sampler statistics, plus the raw metadata comment
// blocks surrounding it.
type ChainSegment struct {
	Sample     *Table
	Stats      *Table
	ConfigInfo []string
	AdaptInfo  []string
	TimingInfo []string
}

// ReadOutput parses one output file into its chain segments, in the order
// the chains appear in the file. A plain file yields one segment; a stacked
// file (several chains' blocks concatenated) yields one per block, with the
// later blocks' metadata recovered by line-offset arithmetic.
func ReadOutput(path string) ([]ChainSegment, error) {
	fl, err := readFileLines(path)
	if err != nil {
		return nil, err
	}

	configInfo, adaptInfo, cfg, err := scanMetadata(fl)
	if err != nil {
		return nil, err
	}

	header, groups, err := splitBody(fl)
	if err != nil {
		return nil, err
	}

	segments := make([]ChainSegment, 0, len(groups))
	var layout segmentLayout
	for j, group := range groups {
		table, err := parseGroup(fl.path, header, group)
		if err != nil {
			return nil, err
		}
		rows := table.Rows()

		var timingInfo []string
		if j == 0 {
			timingInfo = readTiming(fl, len(configInfo)+len(adaptInfo)+rows+2)
			layout = segmentLayout{
				ConfigLines: len(configInfo),
				AdaptLines:  len(adaptInfo),
				TimingLines: len(timingInfo),
				LastLine:    len(configInfo) + len(adaptInfo) + len(timingInfo) + rows + 1,
			}
		} else {
			configInfo, err = readCommentRange(fl, layout.configRange(), "configuration")
			if err != nil {
				return nil, err
			}
			cfg, err = ParseRunConfig(configInfo)
			if err != nil {
				return nil, fmt.Errorf("%s: configuration of stacked chain %d: %w", fl.path, j+1, err)
			}
			warmup := cfg.WarmupRows()
			adaptInfo, err = readCommentRange(fl, layout.adaptRange(warmup), "adaptation")
			if err != nil {
				return nil, err
			}
			timingInfo, err = readCommentRange(fl, layout.timingRange(warmup, rows), "timing")
			if err != nil {
				return nil, err
			}
			layout = layout.advance(warmup, rows)
		}

		if cfg.SaveWarmup {
			table = table.Tail(cfg.SampleRows())
		}
		sample, stats := splitColumns(table)
		segments = append(segments, ChainSegment{
			Sample:     sample,
			Stats:      stats,
			ConfigInfo: configInfo,
			AdaptInfo:  adaptInfo,
			TimingInfo: timingInfo,
		})
	}
	return segments, nil
}

// scanMetadata classifies the file's leading lines: comments before the
// header row are configuration info, comments between the header row (plus
// any saved warm-up rows) and the first sampling row are adaptation info.
// The configuration is parsed as soon as the header row is seen, since the
// warm-up row count decides where the adaptation block starts.
func scanMetadata(fl *fileLines) (configInfo, adaptInfo []string, cfg RunConfig, err error) {
	state := stateBeforeHeader
	skip := 0
	for n := 1; n <= fl.Len() && state != stateDone; n++ {
		if skip > 0 {
			skip--
			continue
		}
		line := strings.TrimSpace(fl.Line(n))
		switch state {
		case stateBeforeHeader:
			if strings.HasPrefix(line, commentMarker) {
				configInfo = append(configInfo, line)
				continue
			}
			// Header row: the configuration is complete.
			cfg, err = ParseRunConfig(configInfo)
			if err != nil {
				return nil, nil, RunConfig{}, fmt.Errorf("%s: %w", fl.path, err)
			}
			skip = cfg.WarmupRows()
			state = stateAfterHeader
		case stateAfterHeader:
			if strings.HasPrefix(line, commentMarker) {
				adaptInfo = append(adaptInfo, line)
			} else {
				state = stateDone
			}
		}
	}
	if state == stateBeforeHeader {
		return nil, nil, RunConfig{}, &FormatError{Path: fl.path, Detail: "no header row found"}
	}
	return configInfo, adaptInfo, cfg, nil
}

// rawRow is one unparsed body row with its file position.
type rawRow struct {
	line   int
	fields []string
}

// splitBody collects the non-comment rows and splits them into per-chain
// groups at repeated header rows (a row whose first field repeats the first
// column name marks the start of a stacked chain block).
func splitBody(fl *fileLines) (header []string, groups [][]rawRow, err error) {
	var rows []rawRow
	for n := 1; n <= fl.Len(); n++ {
		trimmed := strings.TrimSpace(fl.Line(n))
		if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
			continue
		}
		fields := strings.Split(trimmed, ",")
		if header == nil {
			header = fields
			continue
		}
		rows = append(rows, rawRow{line: n, fields: fields})
	}
	if header == nil {
		return nil, nil, &FormatError{Path: fl.path, Detail: "no header row found"}
	}

	var current []rawRow
	for _, row := range rows {
		if row.fields[0] == header[0] { // repeated header row
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = nil
			continue
		}
		current = append(current, row)
	}
	if len(current) == 0 && len(groups) == 0 {
		return nil, nil, &FormatError{Path: fl.path, Detail: "no draw rows found"}
	}
	groups = append(groups, current)
	return header, groups, nil
}

func parseGroup(path string, header []string, group []rawRow) (*Table, error) {
	fields := make([][]string, len(group))
	for i, row := range group {
		fields[i] = row.fields
	}
	return parseTable(path, header, fields, func(r int) int { return group[r].line })
}

// readTiming collects the timing comments that follow a region's last draw
// row: at most maxTimingLines lines, stopping at the first blank one.
func readTiming(fl *fileLines, start int) []string {
	var timing []string
	for k := 0; k < maxTimingLines; k++ {
		line := strings.TrimSpace(fl.Line(start + k))
		if line == "" {
			break
		}
		timing = append(timing, line)
	}
	return timing
}

// readCommentRange re-reads a computed metadata line range of a stacked
// file. Every line must be a comment; anything else means the layout
// arithmetic and the file disagree.
func readCommentRange(fl *fileLines, r lineRange, block string) ([]string, error) {
	var out []string
	for n := r.Start; n < r.End; n++ {
		line := strings.TrimSpace(fl.Line(n))
		if !strings.HasPrefix(line, commentMarker) {
			return nil, &FormatError{
				Path:   fl.path,
				Block:  block,
				Line:   n,
				Detail: "header information missing from combined csv",
			}
		}
		out = append(out, line)
	}
	return out, nil
}

// splitColumns separates sampler-statistics columns (trailing statsSuffix)
// from model variable columns, both in file order.
func splitColumns(t *Table) (sample, stats *Table) {
	var sampleCols, statsCols []string
	for _, col := range t.Columns {
		if strings.HasSuffix(col, statsSuffix) {
			statsCols = append(statsCols, col)
		} else {
			sampleCols = append(sampleCols, col)
		}
	}
	return t.Select(sampleCols), t.Select(statsCols)
}
