package runtime

import (
	"math"
	"testing"
	"time"

	"github.com/arnavsurve/lox/internal/compiler/token"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Nil, false},
		{Undefined, false},
		{False, false},
		{True, true},
		{NumberValue{Val: 0}, true},
		{StringValue{Val: ""}, true},
		{Unit, true},
		{Clock(nil), true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

// tenth and fifth are variables so their sum is a run-time float64.
var tenth, fifth = 0.1, 0.2

func TestEqual(t *testing.T) {
	clock := Clock(nil)
	tests := []struct {
		a, b Value
		want bool
	}{
		{Nil, Nil, true},
		{NumberValue{Val: tenth + fifth}, NumberValue{Val: 0.3}, true},
		{NumberValue{Val: 0.3 + 0x1p-50}, NumberValue{Val: 0.3}, false},
		{NumberValue{Val: 1}, NumberValue{Val: 2}, false},
		{NumberValue{Val: math.NaN()}, NumberValue{Val: math.NaN()}, false},
		{StringValue{Val: "a"}, StringValue{Val: "a"}, true},
		{StringValue{Val: "a"}, StringValue{Val: "b"}, false},
		{True, True, true},
		{True, False, false},
		{clock, clock, true},
		{clock, Clock(nil), false},

		// no coercion
		{NumberValue{Val: 1}, StringValue{Val: "1"}, false},
		{True, NumberValue{Val: 1}, false},
		{Nil, False, false},
		{False, Nil, false},
		{Undefined, Undefined, false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{Undefined, "undefined"},
		{Unit, "()"},
		{True, "true"},
		{NumberValue{Val: 56}, "56"},
		{NumberValue{Val: 2.5}, "2.5"},
		{NumberValue{Val: tenth + fifth}, "0.30000000000000004"},
		{NumberValue{Val: math.Inf(-1)}, "-inf"},
		{StringValue{Val: "hi there"}, "hi there"},
		{Clock(nil), "<native fn clock>"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFromLiteral(t *testing.T) {
	tests := []struct {
		lit  token.Literal
		want Value
	}{
		{token.StringLit("s"), StringValue{Val: "s"}},
		{token.NumberLit(4), NumberValue{Val: 4}},
		{token.BoolLit(false), False},
		{token.NilLit{}, Nil},
	}
	for _, tt := range tests {
		if got := FromLiteral(tt.lit); got != tt.want {
			t.Errorf("FromLiteral(%#v) = %#v, want %#v", tt.lit, got, tt.want)
		}
	}
}

func TestClock(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	clock := Clock(func() time.Time { return fixed })

	if clock.Arity != 0 {
		t.Errorf("clock arity = %d", clock.Arity)
	}
	got, ok := clock.Call(nil).(NumberValue)
	if !ok {
		t.Fatalf("clock() returned %T", clock.Call(nil))
	}
	if want := float64(fixed.UnixMilli()); got.Val != want {
		t.Errorf("clock() = %v, want %v", got.Val, want)
	}

	natives := Natives(nil)
	if len(natives) != 1 || natives[0].Name != "clock" {
		t.Errorf("Natives() = %v", natives)
	}
}
