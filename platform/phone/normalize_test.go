package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"local tanzanian", "0754123456", "+255754123456"},
		{"already e164", "+255754123456", "+255754123456"},
		{"with spaces", " 0754 123 456 ", "+255754123456"},
		{"invalid keeps input", "12", "12"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input); got != tc.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
