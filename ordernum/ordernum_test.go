package ordernum

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		prefix string
		seq    int64
		want   string
	}{
		{"ORD", 1, "ORD-000001"},
		{"ORD", 42, "ORD-000042"},
		{"ORD", 1234567, "ORD-1234567"},
		{"", 7, "ORD-000007"},
		{"INV", 3, "INV-000003"},
	}
	for _, tt := range tests {
		if got := Format(tt.prefix, tt.seq); got != tt.want {
			t.Errorf("Format(%q, %d): want %q, got %q", tt.prefix, tt.seq, tt.want, got)
		}
	}
}
