package notification

import "testing"

func TestMatchAlertMessage(t *testing.T) {
	got := MatchAlertMessage(3, "Mwanza Fish Co", 78)
	want := "Found 3 potential buyers for your catch! Top match: Mwanza Fish Co - Score: 78%"
	if got != want {
		t.Fatalf("message mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestMatchAlertMessageUnknownBuyer(t *testing.T) {
	got := MatchAlertMessage(1, "", 45)
	want := "Found 1 potential buyers for your catch! Top match: Unknown - Score: 45%"
	if got != want {
		t.Fatalf("message mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestMatchAlertMessageZeroMatches(t *testing.T) {
	got := MatchAlertMessage(0, "", 0)
	want := "Found 0 potential buyers for your catch!"
	if got != want {
		t.Fatalf("message mismatch:\n got %q\nwant %q", got, want)
	}
}
