package stancsv

// lineRange is a half-open range [Start, End) of 1-based line numbers.
type lineRange struct {
	Start int
	End   int
}

// Len returns the number of lines covered.
func (r lineRange) Len() int {
	return r.End - r.Start
}

// segmentLayout locates one chain segment inside a stacked file. The
// metadata line counts are those observed on the first segment; LastLine is
// the 1-based number of this segment's final line. From these, the next
// segment's metadata line ranges follow arithmetically, given that segment's
// own warm-up row count and total row count.
//
// Pure arithmetic only, so the fragile offset computation can be tested
// without touching a file.
type segmentLayout struct {
	ConfigLines int
	AdaptLines  int
	TimingLines int
	LastLine    int
}

// configRange returns the next segment's configuration comment lines. It
// depends only on the previous segment's extent; the configuration must be
// parsed from these lines before the remaining ranges can be computed.
func (l segmentLayout) configRange() lineRange {
	start := l.LastLine + 1
	return lineRange{Start: start, End: start + l.ConfigLines}
}

// adaptRange returns the next segment's adaptation comment lines, which sit
// after its header row and warm-up rows.
func (l segmentLayout) adaptRange(warmupRows int) lineRange {
	start := l.configRange().End + 1 + warmupRows
	return lineRange{Start: start, End: start + l.AdaptLines}
}

// timingRange returns the next segment's timing comment lines, which follow
// its sampling rows. rows is the segment's total row count including any
// warm-up rows.
func (l segmentLayout) timingRange(warmupRows, rows int) lineRange {
	start := l.adaptRange(warmupRows).End + rows - warmupRows
	return lineRange{Start: start, End: start + l.TimingLines}
}

// advance returns the layout positioned at the next segment's end.
func (l segmentLayout) advance(warmupRows, rows int) segmentLayout {
	next := l
	next.LastLine = l.timingRange(warmupRows, rows).End - 1
	return next
}
