package clients

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/platform/ai/chat"

	"github.com/rwcarlsen/goexif/exif"
)

const nebiusModel = "Qwen/Qwen2-VL-72B-Instruct"

// NebiusVision assesses catch photos with Nebius AI Studio's
// vision-capable chat endpoint.
type NebiusVision struct {
	client *chat.Client
}

func NewNebiusVision(apiKey, baseURL string) *NebiusVision {
	return &NebiusVision{
		client: chat.New(chat.Config{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   nebiusModel,
		}),
	}
}

func (v *NebiusVision) AssessImage(ctx context.Context, image []byte) (domain.ImageAssessment, error) {
	content, err := v.client.Complete(ctx, chat.Request{
		Messages: []chat.Message{
			{
				Role: "user",
				Content: []map[string]any{
					{
						"type": "text",
						"text": "Assess this fish catch photo for freshness and quality. " +
							"Respond with JSON containing description (string) and confidence (number between 0 and 1).",
					},
					{
						"type": "image_url",
						"image_url": map[string]string{
							"url": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image),
						},
					},
				},
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return domain.ImageAssessment{}, fmt.Errorf("nebius image assessment: %w", err)
	}

	var assessment domain.ImageAssessment
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &assessment); err != nil {
		// Model answered in prose; keep it as the description.
		assessment = domain.ImageAssessment{Description: content, Confidence: 0.5}
	}

	if captured := exifCaptureTime(image); captured != nil {
		assessment.CapturedAt = captured
	}

	return assessment, nil
}

// exifCaptureTime pulls the original capture timestamp out of the photo's
// EXIF block. Missing or malformed metadata is not an error.
func exifCaptureTime(image []byte) *time.Time {
	meta, err := exif.Decode(bytes.NewReader(image))
	if err != nil {
		return nil
	}
	captured, err := meta.DateTime()
	if err != nil {
		return nil
	}
	return &captured
}
