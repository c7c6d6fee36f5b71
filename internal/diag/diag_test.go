package diag

import (
	"bytes"
	"testing"

	"github.com/arnavsurve/lox/internal/compiler/token"
)

func TestFormat(t *testing.T) {
	pos := token.Position{Line: 3, Column: 7}

	tests := []struct {
		cat     Category
		context string
		want    string
	}{
		{Parser, "at ';'", "[ln 3 col 7] Parser Error at ';': boom"},
		{Runtime, "at '/'", "[ln 3 col 7] Runtime Error at '/': boom"},
		{Panic, "", "[ln 3 col 7] Panic Error: boom"},
	}

	for _, tt := range tests {
		if got := Format(pos, tt.cat, tt.context, "boom"); got != tt.want {
			t.Errorf("Format(%s) = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestConsoleSplitsOutputAndDiagnostics(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut, false)

	c.Emit("hello")
	c.Report(token.Position{Line: 1, Column: 1}, Runtime, "at 'x'", "bad")

	if out.String() != "hello\n" {
		t.Errorf("out = %q", out.String())
	}
	if errOut.String() != "[ln 1 col 1] Runtime Error at 'x': bad\n" {
		t.Errorf("err = %q", errOut.String())
	}
}

func TestBufferCounts(t *testing.T) {
	var b Buffer
	b.Emit("a")
	b.Emit("b")
	b.Report(token.Position{Line: 1, Column: 1}, Parser, "", "one")
	b.Report(token.Position{Line: 2, Column: 1}, Parser, "", "two")
	b.Report(token.Position{Line: 3, Column: 1}, Panic, "", "three")

	if b.Output() != "a\nb" {
		t.Errorf("Output() = %q", b.Output())
	}
	if b.Count(Parser) != 2 || b.Count(Panic) != 1 || b.Count(Runtime) != 0 {
		t.Errorf("unexpected counts: %+v", b.Reports)
	}

	b.Reset()
	if len(b.Lines) != 0 || len(b.Reports) != 0 {
		t.Errorf("Reset left data behind")
	}
}
