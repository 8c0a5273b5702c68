// Package value defines the runtime values of the expression language.
package value

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	NilKind Kind = iota
	NumberKind
	StringKind
	BooleanKind
)

func (k Kind) String() string {
	switch k {
	case NilKind:
		return "Nil"
	case NumberKind:
		return "Number"
	case StringKind:
		return "String"
	case BooleanKind:
		return "Boolean"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one of Number, String, Boolean or Nil.
// Values are plain data; there is no conversion between variants.
type Value interface {
	fmt.Stringer
	Kind() Kind
}

type Number float64

func (n Number) Kind() Kind {
	return NumberKind
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

var _ Value = Number(0)

type String string

func (s String) Kind() Kind {
	return StringKind
}

func (s String) String() string {
	return fmt.Sprintf("%q", string(s))
}

var _ Value = String("")

type Boolean bool

func (b Boolean) Kind() Kind {
	return BooleanKind
}

func (b Boolean) String() string {
	return strconv.FormatBool(bool(b))
}

var _ Value = Boolean(false)

type Nil struct{}

func (Nil) Kind() Kind {
	return NilKind
}

func (Nil) String() string {
	return "nil"
}

var _ Value = Nil{}

// Equal reports structural equality. Values of different kinds are never equal.
func Equal(x, y Value) bool {
	if x.Kind() != y.Kind() {
		return false
	}
	switch x := x.(type) {
	case Number:
		return x == y.(Number)
	case String:
		return x == y.(String)
	case Boolean:
		return x == y.(Boolean)
	case Nil:
		return true
	default:
		return false
	}
}
