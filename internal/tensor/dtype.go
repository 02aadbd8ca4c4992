// Package tensor provides the dense array types the draws converters build.
package tensor

// DataType represents runtime type information for a Dense array.
//
// The sampler dialect stores every value as text parsed to float64, so
// Float64 is the default everywhere. Int64 and Bool exist for the sampler
// statistics columns that carry counts and flags.
type DataType int

// Supported data types.
const (
	Float64 DataType = iota
	Int64
	Bool
)

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}
