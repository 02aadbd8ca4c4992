// Package rdump parses the flat key-value data dump format the sampler
// consumes: statements of the form "name <- value", where a value is a
// scalar, a c(...) vector, or a structure(c(...), .Dim = c(...)) array
// stored in column-major order.
package rdump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/draws-ml/draws/internal/tensor"
)

// ErrParse reports a malformed data statement.
var ErrParse = errors.New("malformed data statement")

// assignMarker separates a statement's name from its value. A statement may
// span several physical lines; the next occurrence of the marker starts a
// new statement.
const assignMarker = "<-"

// Store maps variable names to tensors, preserving file order.
type Store struct {
	names []string
	vars  map[string]*tensor.Dense
}

// Names returns the variable names in file order.
func (s *Store) Names() []string {
	return s.names
}

// Var returns the named tensor.
func (s *Store) Var(name string) (*tensor.Dense, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Len returns the number of variables.
func (s *Store) Len() int {
	return len(s.names)
}

// ParseFile parses a flat data dump from disk.
func ParseFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore close error on read-only file.
	}()

	store, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Parse reads a flat data dump from r.
func Parse(r io.Reader) (*Store, error) {
	store := &Store{vars: make(map[string]*tensor.Dense)}

	flush := func(stmt string) error {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			return nil
		}
		key, value, err := parseStatement(stmt)
		if err != nil {
			return err
		}
		if _, dup := store.vars[key]; !dup {
			store.names = append(store.names, key)
		}
		store.vars[key] = value
		return nil
	}

	var current strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, assignMarker) {
			if err := flush(current.String()); err != nil {
				return nil, err
			}
			current.Reset()
		}
		current.WriteString(" ")
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read data dump: %w", err)
	}
	if err := flush(current.String()); err != nil {
		return nil, err
	}
	return store, nil
}

// parseStatement splits one "name <- value" statement and parses the value
// by its form: structure(...) array, c(...) vector, or scalar.
func parseStatement(stmt string) (string, *tensor.Dense, error) {
	key, value, ok := strings.Cut(stmt, assignMarker)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q: no %s marker", ErrParse, stmt, assignMarker)
	}
	key = strings.TrimSpace(key)

	var (
		parsed *tensor.Dense
		err    error
	)
	switch {
	case strings.Contains(value, "structure"):
		parsed, err = parseStructure(value)
	case strings.Contains(value, "c("):
		parsed, err = parseVectorValue(value)
	default:
		parsed, err = parseScalarValue(value)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: statement %q: %v", ErrParse, key, err)
	}
	return key, parsed, nil
}

func parseStructure(value string) (*tensor.Dense, error) {
	body, dimPart, ok := strings.Cut(value, ".Dim")
	if !ok {
		return nil, errors.New("structure without .Dim")
	}

	flat, err := vectorLiteral(body)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	dimValues, err := vectorLiteral(dimPart)
	if err != nil {
		return nil, fmt.Errorf("dimensions: %w", err)
	}

	shape := make(tensor.Shape, len(dimValues))
	for i, d := range dimValues {
		shape[i] = int(d)
		if float64(shape[i]) != d {
			return nil, fmt.Errorf("non-integer dimension %v", d)
		}
	}
	return tensor.FromColumnMajor(flat, shape)
}

func parseVectorValue(value string) (*tensor.Dense, error) {
	flat, err := vectorLiteral(value)
	if err != nil {
		return nil, err
	}
	return tensor.FromSlice(flat, tensor.Shape{len(flat)})
}

func parseScalarValue(value string) (*tensor.Dense, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil, err
	}
	return tensor.Scalar(v), nil
}

// vectorLiteral extracts the numbers inside the first c(...) in s. Elements
// are separated by commas and/or whitespace.
func vectorLiteral(s string) ([]float64, error) {
	open := strings.Index(s, "c(")
	if open < 0 {
		return nil, errors.New("no c(...) literal")
	}
	rest := s[open+2:]
	closing := strings.Index(rest, ")")
	if closing < 0 {
		return nil, errors.New("unterminated c(...) literal")
	}

	fields := strings.FieldsFunc(rest[:closing], func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("bad numeric literal %q", field)
		}
		out[i] = v
	}
	return out, nil
}
