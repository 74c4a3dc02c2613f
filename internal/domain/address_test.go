package domain

import "testing"

func TestNormalizeAddress(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123 Main St, Queens, NY 11101", "123 main st, queens, ny 11101"},
		{"  123   Main St ", "123 main st"},
		{"123\tMain\nSt", "123 main st"},
		{"", ""},
		{"   ", ""},
	}

	for _, c := range cases {
		if got := NormalizeAddress(c.in); got != c.want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
