package adif

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Field
	}{
		{
			name: "simple",
			body: "<call:4>W1AW <qsl_via:4>buro",
			want: []Field{
				{Name: "call", Length: 4, Value: "W1AW "},
				{Name: "qsl_via", Length: 4, Value: "buro"},
			},
		},
		{
			name: "type indicator",
			body: "<QSO_DATE:8:D>20240101<FREQ:6:N>14.074",
			want: []Field{
				{Name: "QSO_DATE", Length: 8, Type: "D", Value: "20240101"},
				{Name: "FREQ", Length: 6, Type: "N", Value: "14.074"},
			},
		},
		{
			name: "declared length ignored",
			body: "<call:2>W1AW\n<mode:2>CW",
			want: []Field{
				{Name: "call", Length: 2, Value: "W1AW\n"},
				{Name: "mode", Length: 2, Value: "CW"},
			},
		},
		{
			name: "empty value",
			body: "<comment:0><call:4>K1AB",
			want: []Field{
				{Name: "comment", Length: 0, Value: ""},
				{Name: "call", Length: 4, Value: "K1AB"},
			},
		},
		{
			name: "markers and junk skipped",
			body: "junk <eor> <call> <:3>abc <mode:x>CW <<band:3>20m",
			want: []Field{
				{Name: "band", Length: 3, Value: "20m"},
			},
		},
		{
			name: "unterminated tag",
			body: "<call:4>W1AW <mode:2",
			want: []Field{
				{Name: "call", Length: 4, Value: "W1AW "},
			},
		},
		{
			name: "no tags",
			body: "just text",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanFields(tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScanFields() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanFields_ValuesStopAtTagBoundary(t *testing.T) {
	alphabet := []string{"<", ">", ":", "1", "4", "a", "CALL", " ", "\n", "<call:4>", "<eor>", "<mode:2:s>"}
	rng := rand.New(rand.NewPCG(1, 2))

	for range 2000 {
		var sb strings.Builder
		for range rng.IntN(30) {
			sb.WriteString(alphabet[rng.IntN(len(alphabet))])
		}
		body := sb.String()
		for _, f := range ScanFields(body) {
			if strings.Contains(f.Value, "<") {
				t.Fatalf("ScanFields(%q) produced value with '<': %+v", body, f)
			}
			if strings.ContainsAny(f.Name, ":<>") || len(f.Name) == 0 {
				t.Fatalf("ScanFields(%q) produced bad name: %+v", body, f)
			}
		}
	}
}

func TestField_String(t *testing.T) {
	tests := []struct {
		f    Field
		want string
	}{
		{Field{Name: "CALL", Length: 4, Value: "W1AW"}, "<CALL:4>W1AW"},
		{Field{Name: "FREQ", Length: 6, Type: "N", Value: "14.074"}, "<FREQ:6:N>14.074"},
		{Field{Name: "NOTES", Length: 0}, "<NOTES:0>"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Field.String() = %q, want %q", got, tt.want)
		}
	}
}
