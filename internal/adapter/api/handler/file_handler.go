package handler

import (
	"campusmarket/internal/infrastructure/storage"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"

	"github.com/labstack/echo/v4"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
	}
}

// Upload accepts a multipart form with a single "file" field and returns
// the public URL of the stored image.
func (h *FileHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("A file field is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.storageClient.UploadImage(c.Request().Context(), src, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{"url": url})
}
