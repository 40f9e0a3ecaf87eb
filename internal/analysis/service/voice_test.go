package service

import "testing"

func TestResolveVoiceArtifactProduced(t *testing.T) {
	artifact := ResolveVoiceArtifact("d1f3a6c2.mp3")

	if artifact.Skipped {
		t.Fatalf("expected produced artifact, got skipped: %s", artifact.Reason)
	}
	if artifact.Filename != "d1f3a6c2.mp3" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
}

func TestResolveVoiceArtifactSoftFailures(t *testing.T) {
	sentinels := []string{
		"voice_generation_failed",
		"voice_generation_timeout",
		"voice_generation_skipped",
		"voice_connection_error",
	}

	for _, sentinel := range sentinels {
		artifact := ResolveVoiceArtifact(sentinel)
		if !artifact.Skipped {
			t.Fatalf("expected %q to collapse to skipped", sentinel)
		}
		if artifact.Filename != "" {
			t.Fatalf("skipped artifact must not carry a filename, got %q", artifact.Filename)
		}
	}
}

func TestResolveVoiceArtifactEmpty(t *testing.T) {
	artifact := ResolveVoiceArtifact("")

	if !artifact.Skipped {
		t.Fatal("expected empty result to be skipped")
	}
}
