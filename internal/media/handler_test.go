package media

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeSigner struct {
	url string
	err error
}

func (f *fakeSigner) DownloadURL(_ context.Context, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url + "/" + filename, nil
}

func newAudioRouter(signer URLSigner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/audio/:filename", NewHandler(signer).Audio)
	return engine
}

func TestAudioRedirectsToSignedURL(t *testing.T) {
	engine := newAudioRouter(&fakeSigner{url: "http://minio.local/voice-messages"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audio/abc123.mp3", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}
	if loc := rec.Header().Get("Location"); loc != "http://minio.local/voice-messages/abc123.mp3" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestAudioUnknownObjectIs404(t *testing.T) {
	engine := newAudioRouter(&fakeSigner{err: errors.New("object not found")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audio/missing.mp3", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestAudioRejectsPathTraversal(t *testing.T) {
	engine := newAudioRouter(&fakeSigner{url: "http://minio.local/voice-messages"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audio/..secrets.txt", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
