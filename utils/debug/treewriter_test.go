package debug

import "testing"

func TestTreeWriter_Empty(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" {
		t.Errorf("String() = %q, want empty", tw.String())
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "record %d", args: []any{1}, want: "record 1\n"},
		{name: "nested", depth: 2, format: "%s", args: []any{"x"}, want: "    x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_KeyValue(t *testing.T) {
	tw := NewTreeWriter()
	tw.KeyValue(1, "CALL", "W1AW ")
	tw.KeyValue(1, "MODE", "")
	want := "  CALL: \"W1AW \"\n  MODE: \n"
	if got := tw.String(); got != want {
		t.Errorf("KeyValue() = %q, want %q", got, want)
	}
}
