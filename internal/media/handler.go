package media

import (
	"context"
	"net/http"
	"strings"

	"samakicash_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// URLSigner produces download URLs for stored voice messages.
type URLSigner interface {
	DownloadURL(ctx context.Context, filename string) (string, error)
}

// Handler serves stored voice messages by redirecting to presigned
// object-storage URLs.
type Handler struct {
	signer URLSigner
}

func NewHandler(signer URLSigner) *Handler {
	return &Handler{signer: signer}
}

// Audio redirects /audio/:filename to a presigned download URL.
func (h *Handler) Audio(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		httpkit.Error(c, http.StatusBadRequest, "invalid filename", nil)
		return
	}

	url, err := h.signer.DownloadURL(c.Request.Context(), filename)
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, "Audio file not found", nil)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}
