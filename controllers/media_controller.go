package controllers

import (
	"rento/response"
	"rento/services"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	media *services.MediaService
}

func NewMediaController(media *services.MediaService) *MediaController {
	return &MediaController{media: media}
}

// Upload takes a multipart "file" field and returns the hosted image URL
func (ctrl *MediaController) Upload(c *gin.Context) {
	if !ctrl.media.Enabled() {
		response.ServiceUnavailable(c, "Image upload is not configured")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Could not open file")
		return
	}
	defer src.Close()

	url, err := ctrl.media.Upload(c.Request.Context(), src, file.Filename)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, gin.H{"url": url})
}
