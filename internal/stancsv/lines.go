package stancsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// fileLines is a per-file line table supporting 1-based random access by
// line number. It replaces random seeking with a single sequential read;
// nothing is shared or cached across files.
type fileLines struct {
	path  string
	lines []string
}

// readFileLines reads the whole file once and indexes it by line.
func readFileLines(path string) (*fileLines, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore close error on read-only file.
	}()

	fl := &fileLines{path: path}
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			fl.lines = append(fl.lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return fl, nil
}

// Line returns the 1-based numbered line, or "" when n is out of range.
func (fl *fileLines) Line(n int) string {
	if n < 1 || n > len(fl.lines) {
		return ""
	}
	return fl.lines[n-1]
}

// Len returns the number of lines in the file.
func (fl *fileLines) Len() int {
	return len(fl.lines)
}
