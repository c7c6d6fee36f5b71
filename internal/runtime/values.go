package runtime

import (
	"fmt"

	"github.com/arnavsurve/lox/internal/compiler/lib"
	"github.com/arnavsurve/lox/internal/compiler/token"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindUndefined
	KindNumber
	KindBool
	KindString
	KindNativeFunction
	KindUnit
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindUndefined:
		return "undefined"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNativeFunction:
		return "native_function"
	case KindUnit:
		return "unit"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. String is the form
// `print` shows.
type Value interface {
	Kind() Kind
	String() string
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind     { return KindNil }
func (NilValue) String() string { return "nil" }

// UndefinedValue marks a binding that exists but was never given a value.
// Source code cannot produce it.
type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind     { return KindUndefined }
func (UndefinedValue) String() string { return "undefined" }

// UnitValue is the result of statements that produce no value.
type UnitValue struct{}

func (UnitValue) Kind() Kind     { return KindUnit }
func (UnitValue) String() string { return "()" }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind     { return KindNumber }
func (v NumberValue) String() string { return lib.FormatNumber(v.Val) }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }
func (v BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind     { return KindString }
func (v StringValue) String() string { return v.Val }

var (
	Nil       Value = NilValue{}
	Undefined Value = UndefinedValue{}
	Unit      Value = UnitValue{}
	True      Value = BoolValue{Val: true}
	False     Value = BoolValue{Val: false}
)

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// NativeFunc is the body of a function implemented in Go.
type NativeFunc func(args []Value) Value

type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind     { return KindNativeFunction }
func (v *NativeFunctionValue) String() string { return "<native fn " + v.Name + ">" }

// Call invokes the native body. Arity is checked by the caller.
func (v *NativeFunctionValue) Call(args []Value) Value {
	return v.Impl(args)
}

//-----------------------------------------------------------------------------
// Semantics
//-----------------------------------------------------------------------------

// FromLiteral converts a scanner literal into a runtime value.
func FromLiteral(lit token.Literal) Value {
	switch lit := lit.(type) {
	case token.StringLit:
		return StringValue{Val: string(lit)}
	case token.NumberLit:
		return NumberValue{Val: float64(lit)}
	case token.BoolLit:
		return BoolValue{Val: bool(lit)}
	default:
		return Nil
	}
}

// Truthy: nil and undefined are false, a bool is itself, everything else is
// true (including 0 and "").
func Truthy(v Value) bool {
	switch v := v.(type) {
	case NilValue, UndefinedValue:
		return false
	case BoolValue:
		return v.Val
	default:
		return true
	}
}

// Equal compares two values without any type coercion. Numbers compare
// approximately.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && lib.ApproxEqual(a.Val, bv.Val)
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && a.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && a.Val == bv.Val
	case *NativeFunctionValue:
		bv, ok := b.(*NativeFunctionValue)
		return ok && a == bv
	default:
		return false
	}
}
