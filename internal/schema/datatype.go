package schema

import "regexp"

// DataType is a column type ordered by representational width. Merging
// observations only ever moves up the order, never down.
type DataType int

const (
	Bit DataType = iota
	Int
	Float
	NVarChar
	NText
)

// String returns the SQL spelling of the type.
func (t DataType) String() string {
	switch t {
	case Bit:
		return "BIT"
	case Int:
		return "INT"
	case Float:
		return "FLOAT"
	case NVarChar:
		return "NVARCHAR"
	case NText:
		return "NTEXT"
	default:
		return "UNKNOWN"
	}
}

// Classification precedence: boolean literal, then integer, then float,
// then the context fallback. "0" and "1" classify as Bit, not Int, and a
// signed integer like "+5" falls through to the float pattern.
var (
	boolPattern  = regexp.MustCompile(`^(1|0|True|False)$`)
	intPattern   = regexp.MustCompile(`^[0-9]+$`)
	floatPattern = regexp.MustCompile(`^[-+]?\d*\.?\d+([eE][-+]?\d+)?$`)
)

// Classify maps a single literal onto the narrowest type able to
// represent it. Attribute context falls back to NVarChar; element text
// context may reach NText.
func Classify(literal string, valueContext bool) DataType {
	switch {
	case literal == "" || boolPattern.MatchString(literal):
		return Bit
	case intPattern.MatchString(literal):
		return Int
	case floatPattern.MatchString(literal):
		return Float
	case valueContext:
		return NText
	default:
		return NVarChar
	}
}

// Merge widens prev so that it can also represent literal. It never
// narrows, and in attribute context it can reach at most NVarChar.
func Merge(prev DataType, literal string, valueContext bool) DataType {
	if next := Classify(literal, valueContext); next > prev {
		return next
	}
	return prev
}

// IsStorable reports whether a value of type candidate fits into a column
// of type target.
func IsStorable(target, candidate DataType) bool {
	return candidate <= target
}
