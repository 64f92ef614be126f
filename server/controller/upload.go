package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	uploadFormField = "file"
	MaxUploadBytes  = 20 << 20
)

// Upload handles POST /api/uploads. Only images are accepted.
func (ctrl *Controller) Upload(c *gin.Context) {
	header, err := c.FormFile(uploadFormField)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "File is required")
		return
	}
	if header.Size > MaxUploadBytes {
		respondMessage(c, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondMessage(c, http.StatusBadRequest, "Only images can be uploaded")
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, err, "", "Server error while uploading file")
		return
	}
	defer f.Close()

	url, err := ctrl.Media.Store(c.Request.Context(), header.Filename, contentType, f)
	if err != nil {
		respondError(c, err, "", "Server error while uploading file")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
