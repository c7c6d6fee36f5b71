package runtime

import "time"

// Clock returns the `clock` native: zero arguments, wall-clock time in
// milliseconds since the Unix epoch.
func Clock(now func() time.Time) *NativeFunctionValue {
	if now == nil {
		now = time.Now
	}
	return &NativeFunctionValue{
		Name:  "clock",
		Arity: 0,
		Impl: func([]Value) Value {
			t := now()
			ms := float64(t.UnixMilli()) + float64(t.Nanosecond()%int(time.Millisecond))/float64(time.Millisecond)
			return NumberValue{Val: ms}
		},
	}
}

// Natives lists the functions every global environment starts with.
func Natives(now func() time.Time) []*NativeFunctionValue {
	return []*NativeFunctionValue{
		Clock(now),
	}
}
