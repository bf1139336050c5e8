package unicart

import (
	"fmt"
	"math"
	"strconv"
)

// ID identifies a line item within a cart. Integer and string values are
// accepted; floating-point values are rejected at creation to avoid numeric
// coercion ambiguity between e.g. 1, "1" and 1.0. The zero ID is invalid.
type ID struct {
	str     string
	num     int64
	numeric bool
	valid   bool
}

// NewID builds an ID from an integer or string value. Any other kind,
// including all floating-point types, yields an ItemCreationError.
func NewID(v any) (ID, error) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return ID{}, &ItemCreationError{ID: v, Reason: "id must not be empty"}
		}
		return ID{str: id, valid: true}, nil
	case int:
		return numericID(int64(id)), nil
	case int8:
		return numericID(int64(id)), nil
	case int16:
		return numericID(int64(id)), nil
	case int32:
		return numericID(int64(id)), nil
	case int64:
		return numericID(id), nil
	case uint:
		return numericID(int64(id)), nil
	case uint8:
		return numericID(int64(id)), nil
	case uint16:
		return numericID(int64(id)), nil
	case uint32:
		return numericID(int64(id)), nil
	case uint64:
		if id > math.MaxInt64 {
			return ID{}, &ItemCreationError{ID: v, Reason: "id out of range"}
		}
		return numericID(int64(id)), nil
	case float32, float64:
		return ID{}, &ItemCreationError{ID: v, Reason: "id must not be a floating-point value"}
	default:
		return ID{}, &ItemCreationError{ID: v, Reason: fmt.Sprintf("id must be an integer or string, got %T", v)}
	}
}

func numericID(n int64) ID {
	return ID{num: n, numeric: true, valid: true}
}

// Value returns the original dynamic value: int64 for numeric ids, string
// otherwise.
func (id ID) Value() any {
	if id.numeric {
		return id.num
	}
	return id.str
}

// String renders the id for display and error messages.
func (id ID) String() string {
	if id.numeric {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}

// IsZero reports whether the id was never initialized via NewID.
func (id ID) IsZero() bool {
	return !id.valid
}
