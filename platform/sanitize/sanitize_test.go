package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"tilapia", "tilapia"},
		{"  Mwanza  ", "Mwanza"},
		{"<b>tilapia</b>", "tilapia"},
		{"<script>alert(1)</script>dagaa", "alert(1)dagaa"},
		{"&lt;img src=x&gt;sardines", "sardines"},
		{"Lake   Victoria\n shore", "Lake Victoria shore"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Text(tc.in); got != tc.want {
			t.Errorf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
