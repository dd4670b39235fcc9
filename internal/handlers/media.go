package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitortoniolo/webapp-showme/internal/middleware"
	"github.com/vitortoniolo/webapp-showme/internal/service"
)

type uploadResponse struct {
	URL       string `json:"url"`
	Format    string `json:"format"`
	SizeBytes int64  `json:"size_bytes"`
}

func (h HandlerSet) UploadMedia(c *gin.Context) {
	if h.uploadService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media_storage_unavailable"})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	defer file.Close()

	result, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		User:   user,
		File:   file,
		Header: header,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		URL:       result.URL,
		Format:    result.Format,
		SizeBytes: result.SizeBytes,
	})
}
