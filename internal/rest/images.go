package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dfryer1193/gallery/api"
	"github.com/dfryer1193/gallery/gallery/application"
	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/dfryer1193/gallery/shared/huggingface"
)

// ImagesHandler serves the gallery API endpoints.
type ImagesHandler struct {
	service *application.GalleryService
}

func NewImagesHandler(service *application.GalleryService) *ImagesHandler {
	return &ImagesHandler{
		service: service,
	}
}

// UploadImage accepts one multipart image, runs the upload-and-tag
// pipeline, and returns the created record.
func (h *ImagesHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No image file uploaded"})
		return
	}

	f, err := file.Open()
	if err != nil {
		h.uploadFailed(c, err)
		return
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")

	img, err := h.service.Upload(c.Request.Context(), file.Filename, contentType, f, file.Size)
	if err != nil {
		h.uploadFailed(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRecord(img))
}

// ListImages returns every image record, most recent first.
func (h *ImagesHandler) ListImages(c *gin.Context) {
	images, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list images")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: errorDetail(err)})
		return
	}

	records := make([]api.ImageRecord, 0, len(images))
	for _, img := range images {
		records = append(records, toRecord(img))
	}

	c.JSON(http.StatusOK, records)
}

// DeleteImage removes an image's blob and record by record identifier.
func (h *ImagesHandler) DeleteImage(c *gin.Context) {
	id := c.Param("id")

	err := h.service.Delete(c.Request.Context(), id)
	if errors.Is(err, domain.ErrImageNotFound) {
		c.JSON(http.StatusNotFound, api.MessageResponse{Message: "Image not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to delete image")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: errorDetail(err)})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Image deleted"})
}

// uploadFailed reports any pipeline failure as one processing-failure
// response carrying the most specific message available.
func (h *ImagesHandler) uploadFailed(c *gin.Context, err error) {
	detail := errorDetail(err)
	log.Error().Err(err).Msg("Upload pipeline failed")

	c.JSON(http.StatusInternalServerError, api.ErrorResponse{
		Error:   "AI processing or upload failed",
		Details: detail,
	})
}

// errorDetail extracts the deepest available human-readable message from a
// pipeline error. Inference API errors carry the service's own message.
func errorDetail(err error) string {
	var apiErr *huggingface.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	return err.Error()
}

func toRecord(img *domain.Image) api.ImageRecord {
	tags := img.Tags
	if tags == nil {
		tags = []string{}
	}

	return api.ImageRecord{
		ID:        img.ID,
		ImageURL:  img.ImageURL,
		FileName:  img.FileName,
		Tags:      tags,
		CreatedAt: img.CreatedAt,
	}
}
