package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/morabaat/backend/internal/infrastructure/storage"
)

// UploadHandler accepts image uploads and hands them to the configured
// storage backend.
type UploadHandler struct {
	BaseHandler
	storage storage.FileStorage
	maxSize int64
}

// NewUploadHandler creates an UploadHandler. maxSize caps individual images.
func NewUploadHandler(store storage.FileStorage, maxSize int64) *UploadHandler {
	return &UploadHandler{storage: store, maxSize: maxSize}
}

// RegisterProtectedRoutes mounts the upload endpoint
func (h *UploadHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.Upload)
}

// Upload stores one multipart image and returns its key and public URL
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable file upload")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Unreadable file upload")
		return
	}
	contentType, err := storage.ValidateImage(data, h.maxSize)
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		h.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		return
	case errors.Is(err, storage.ErrUnsupportedType):
		h.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
		return
	case err != nil:
		h.InternalError(c, "Failed to validate upload")
		return
	}
	key, url, err := h.storage.Save(c.Request.Context(), data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"key": key, "url": url})
}
