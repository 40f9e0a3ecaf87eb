package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"samakicash_backend/internal/analysis/domain"

	"github.com/google/uuid"
)

// Soft-failure sentinels. The pipeline's voice resolver collapses these
// into a skipped artifact instead of treating them as stage failures.
const (
	voiceSkipped         = "voice_generation_skipped"
	voiceFailed          = "voice_generation_failed"
	voiceTimeout         = "voice_generation_timeout"
	voiceConnectionError = "voice_connection_error"
)

// VoiceStore persists synthesized audio and is implemented by the media
// module's object storage.
type VoiceStore interface {
	SaveVoiceMessage(ctx context.Context, filename string, audio []byte) error
}

// ElevenLabsSynthesizer turns price and market results into a spoken
// Swahili-flavoured summary via the ElevenLabs TTS API.
type ElevenLabsSynthesizer struct {
	apiKey  string
	baseURL string
	store   VoiceStore
	client  *http.Client
}

func NewElevenLabsSynthesizer(apiKey, baseURL string, store VoiceStore) *ElevenLabsSynthesizer {
	return &ElevenLabsSynthesizer{
		apiKey:  apiKey,
		baseURL: baseURL,
		store:   store,
		client:  &http.Client{Timeout: 40 * time.Second},
	}
}

// Synthesize returns the stored MP3 filename, or a soft-failure
// sentinel. It only returns an error on unexpected local failures.
func (e *ElevenLabsSynthesizer) Synthesize(ctx context.Context, price domain.PriceEstimate, market domain.MarketInsight) (string, error) {
	if e.apiKey == "" {
		return voiceSkipped, nil
	}

	voiceID, err := e.firstVoiceID(ctx)
	if err != nil {
		return classifyVoiceError(err), nil
	}

	text := fmt.Sprintf("Habari! Your catch analysis is ready. The suggested price is %.0f %s per kilogram. The market trend is %s. %s",
		price.FairPricePerKg, price.Currency, market.MarketTrend, market.Recommendation)

	audio, err := e.textToSpeech(ctx, voiceID, text)
	if err != nil {
		return classifyVoiceError(err), nil
	}

	filename := uuid.NewString() + ".mp3"
	if err := e.store.SaveVoiceMessage(ctx, filename, audio); err != nil {
		return voiceFailed, nil
	}

	return filename, nil
}

func (e *ElevenLabsSynthesizer) firstVoiceID(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/v1/voices", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("voices listing returned %d", resp.StatusCode)
	}

	var decoded struct {
		Voices []struct {
			VoiceID string `json:"voice_id"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Voices) == 0 {
		return "", errors.New("no voices available")
	}
	return decoded.Voices[0].VoiceID, nil
}

func (e *ElevenLabsSynthesizer) textToSpeech(ctx context.Context, voiceID, text string) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{
		"text":     text,
		"model_id": "eleven_multilingual_v2",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/text-to-speech/"+voiceID, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("text-to-speech returned %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func classifyVoiceError(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return voiceTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return voiceTimeout
	case errors.As(err, &netErr):
		return voiceConnectionError
	default:
		return voiceFailed
	}
}
