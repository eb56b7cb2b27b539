// README: Places photo proxy.
package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PhotoSource is satisfied by *imagery.PlacesLookup.
type PhotoSource interface {
	Photo(ctx context.Context, reference string) (string, io.ReadCloser, error)
}

type ImageHandler struct {
	photos PhotoSource
	logger *zap.Logger
}

func NewImageHandler(photos PhotoSource, logger *zap.Logger) *ImageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageHandler{photos: photos, logger: logger.Named("images")}
}

// PlacePhoto handles GET /api/images/places/:ref.
func (h *ImageHandler) PlacePhoto(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("ref"))
	if ref == "" {
		writeError(c, http.StatusBadRequest, "missing photo reference")
		return
	}
	contentType, body, err := h.photos.Photo(c.Request.Context(), ref)
	if err != nil {
		h.logger.Warn("place photo", zap.Error(err))
		writeError(c, http.StatusBadGateway, "image unavailable")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, body, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}
