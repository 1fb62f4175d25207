package smell

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags the numeric representation carried by a Value
type Kind int

const (
	// KindInt marks integral metrics such as LOC or WMC
	KindInt Kind = iota
	// KindFloat marks ratio metrics such as TCC
	KindFloat
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a measured metric value or threshold, either integer or floating point.
// The kind travels with the value so comparisons stay type-consistent.
type Value struct {
	kind Kind
	i    int64
	f    float64
}

// Int creates an integer value
func Int(n int64) Value {
	return Value{kind: KindInt, i: n}
}

// Float creates a floating point value
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Kind returns the value kind
func (v Value) Kind() Kind {
	return v.kind
}

// IsFloat reports whether the value holds a float
func (v Value) IsFloat() bool {
	return v.kind == KindFloat
}

// IntValue returns the integer payload (truncated for floats)
func (v Value) IntValue() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// FloatValue returns the payload as float64
func (v Value) FloatValue() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// Compare returns -1, 0 or +1. Values of different kinds are not comparable.
func (v Value) Compare(other Value) (int, error) {
	if v.kind != other.kind {
		return 0, fmt.Errorf("%w: %s vs %s", ErrKindMismatch, v.kind, other.kind)
	}

	if v.kind == KindFloat {
		switch {
		case v.f < other.f:
			return -1, nil
		case v.f > other.f:
			return 1, nil
		}
		return 0, nil
	}

	switch {
	case v.i < other.i:
		return -1, nil
	case v.i > other.i:
		return 1, nil
	}
	return 0, nil
}

// String formats integers with %d and floats with two decimals
func (v Value) String() string {
	if v.kind == KindFloat {
		return strconv.FormatFloat(v.f, 'f', 2, 64)
	}
	return strconv.FormatInt(v.i, 10)
}

// MarshalJSON writes the value as a plain JSON number
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindFloat {
		return json.Marshal(v.f)
	}
	return json.Marshal(v.i)
}

// MarshalYAML writes the value as a plain YAML number
func (v Value) MarshalYAML() (interface{}, error) {
	if v.kind == KindFloat {
		return v.f, nil
	}
	return v.i, nil
}
