package util

import "testing"

func TestParseLeadingFloat(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"2", 2, true},
		{"2.5", 2.5, true},
		{"2.1/2", 2.1, true},
		{"1/2", 1, true},
		{".5", 0.5, true},
		{"3.", 3, true},
		{"2 1/2", 2, true},
		{"DN50", 0, false},
		{".", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseLeadingFloat(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseLeadingFloat(%q) = %v, %v; want %v, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
