package scope

import (
	"fmt"
	"sort"

	"github.com/arnavsurve/lox/internal/compiler/token"
	"github.com/arnavsurve/lox/internal/runtime"
)

// UndeclaredError is returned when a name is bound in no frame of the chain.
type UndeclaredError struct {
	Name token.Token
}

func (e *UndeclaredError) Error() string {
	return fmt.Sprintf("Undeclared variable '%s'.", e.Name.Lexeme)
}

// --- Scope ---

// Scope is one frame of the lexical environment chain.
type Scope struct {
	values map[string]runtime.Value
	Outer  *Scope

	isLoop   bool // inside some loop body; inherited by child frames
	loopBody bool // this frame is the loop body itself
}

// NewScope creates a child frame of outer. The loop flag is copied from
// outer at creation time. A nil outer creates the global frame.
func NewScope(outer *Scope) *Scope {
	s := &Scope{
		values: make(map[string]runtime.Value),
		Outer:  outer,
	}
	if outer != nil {
		s.isLoop = outer.isLoop
	}
	return s
}

// NewLoopScope creates the frame for a loop body.
func NewLoopScope(outer *Scope) *Scope {
	s := NewScope(outer)
	s.isLoop = true
	s.loopBody = true
	return s
}

// Declare binds name in this frame only, overwriting any binding already
// here. Bindings of the same name in outer frames are shadowed, not touched.
func (s *Scope) Declare(name string, value runtime.Value) {
	s.values[name] = value
}

// Get looks name up from this frame outwards.
func (s *Scope) Get(name token.Token) (runtime.Value, error) {
	if frame := s.resolve(name.Lexeme); frame != nil {
		return frame.values[name.Lexeme], nil
	}
	return nil, &UndeclaredError{Name: name}
}

// Assign rebinds name in the nearest frame that already declares it. It never
// creates a binding.
func (s *Scope) Assign(name token.Token, value runtime.Value) (runtime.Value, error) {
	frame := s.resolve(name.Lexeme)
	if frame == nil {
		return nil, &UndeclaredError{Name: name}
	}
	frame.values[name.Lexeme] = value
	return value, nil
}

func (s *Scope) resolve(name string) *Scope {
	for frame := s; frame != nil; frame = frame.Outer {
		if _, ok := frame.values[name]; ok {
			return frame
		}
	}
	return nil
}

// Names lists the names bound in this frame, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- Loop tracking ---

// IsLoop reports the frame's own loop flag.
func (s *Scope) IsLoop() bool {
	return s.isLoop
}

// IsLoopBody reports whether this frame was created for a loop body.
func (s *Scope) IsLoopBody() bool {
	return s.loopBody
}

// IsInsideLoop is true if this frame or any ancestor is a loop frame.
func (s *Scope) IsInsideLoop() bool {
	for frame := s; frame != nil; frame = frame.Outer {
		if frame.isLoop {
			return true
		}
	}
	return false
}

// IsEnclosingLoop is true if the direct parent frame is a loop frame.
func (s *Scope) IsEnclosingLoop() bool {
	return s.Outer != nil && s.Outer.isLoop
}

// Depth counts the frames between this one and the global frame.
func (s *Scope) Depth() int {
	d := 0
	for frame := s.Outer; frame != nil; frame = frame.Outer {
		d++
	}
	return d
}
