package stancsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Layout of a stacked file with 5 config lines, 2 adaptation lines, 3 timing
// lines per block, 2 warm-up rows and 3 sampling rows per chain:
//
//	chain 1: config 1-5, header 6, warmup 7-8, adapt 9-10,
//	         samples 11-13, timing 14-16
//	chain 2: config 17-21, header 22, warmup 23-24, adapt 25-26,
//	         samples 27-29, timing 30-32
func TestSegmentLayoutStackedWithWarmup(t *testing.T) {
	first := segmentLayout{
		ConfigLines: 5,
		AdaptLines:  2,
		TimingLines: 3,
		LastLine:    16,
	}

	assert.Equal(t, lineRange{Start: 17, End: 22}, first.configRange())
	assert.Equal(t, lineRange{Start: 25, End: 27}, first.adaptRange(2))
	assert.Equal(t, lineRange{Start: 30, End: 33}, first.timingRange(2, 5))

	second := first.advance(2, 5)
	assert.Equal(t, 32, second.LastLine)
	assert.Equal(t, lineRange{Start: 33, End: 38}, second.configRange())
}

func TestSegmentLayoutNoWarmup(t *testing.T) {
	// config 1-4, header 5, adapt 6-7, samples 8-10, timing 11-12.
	first := segmentLayout{
		ConfigLines: 4,
		AdaptLines:  2,
		TimingLines: 2,
		LastLine:    12,
	}

	assert.Equal(t, lineRange{Start: 13, End: 17}, first.configRange())
	assert.Equal(t, lineRange{Start: 18, End: 20}, first.adaptRange(0))
	assert.Equal(t, lineRange{Start: 23, End: 25}, first.timingRange(0, 3))
	assert.Equal(t, 24, first.advance(0, 3).LastLine)
}

func TestLineRangeLen(t *testing.T) {
	assert.Equal(t, 0, lineRange{Start: 7, End: 7}.Len())
	assert.Equal(t, 3, lineRange{Start: 7, End: 10}.Len())
}
