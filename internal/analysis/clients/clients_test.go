package clients

import (
	"context"
	"errors"
	"testing"

	"samakicash_backend/internal/analysis/domain"
)

func priceFixture() domain.PriceEstimate {
	return domain.PriceEstimate{FairPricePerKg: 5200, Currency: "TZS"}
}

func marketFixture() domain.MarketInsight {
	return domain.MarketInsight{MarketTrend: "rising", Recommendation: "Sell now"}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"fair_price": 10}`, `{"fair_price": 10}`},
		{"json fence", "```json\n{\"fair_price\": 10}\n```", `{"fair_price": 10}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.input); got != tc.want {
				t.Fatalf("stripCodeFence(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestClassifyVoiceError(t *testing.T) {
	if got := classifyVoiceError(context.DeadlineExceeded); got != voiceTimeout {
		t.Fatalf("deadline exceeded classified as %q", got)
	}
	if got := classifyVoiceError(errors.New("listing returned 500")); got != voiceFailed {
		t.Fatalf("generic error classified as %q", got)
	}
}

type recordingStore struct {
	filename string
	audio    []byte
}

func (r *recordingStore) SaveVoiceMessage(ctx context.Context, filename string, audio []byte) error {
	r.filename = filename
	r.audio = audio
	return nil
}

func TestSynthesizeSkipsWithoutAPIKey(t *testing.T) {
	store := &recordingStore{}
	synth := NewElevenLabsSynthesizer("", "https://api.elevenlabs.io", store)

	result, err := synth.Synthesize(context.Background(), priceFixture(), marketFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != voiceSkipped {
		t.Fatalf("expected skip sentinel, got %q", result)
	}
	if store.filename != "" {
		t.Fatal("nothing should be stored when synthesis is skipped")
	}
}
