package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"cms-backend/internal/domains/photography"
	"cms-backend/internal/infrastructure/storage"
	"cms-backend/internal/shared/authz"
	"cms-backend/internal/shared/middleware"
	"cms-backend/internal/shared/response"
	"cms-backend/pkg/logger"
)

const (
	maxImageSize   = 10 << 20 // 10 MB per file
	maxImagesCount = 10
)

// PhotographyHandler handles HTTP requests for the photography domain.
type PhotographyHandler struct {
	service photography.Service
	storage storage.Uploader
}

func NewPhotographyHandler(service photography.Service, storage storage.Uploader) *PhotographyHandler {
	return &PhotographyHandler{
		service: service,
		storage: storage,
	}
}

// Create handles POST /photography (multipart, admin mount)
func (h *PhotographyHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req photography.CreatePhotographyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	urls, err := h.uploadImages(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Image upload failed", err)
		return
	}
	req.ImageURLs = urls

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Photography created successfully", resp)
}

// Update handles PUT /photography/:id
func (h *PhotographyHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid photography id", err)
		return
	}

	var req photography.UpdatePhotographyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	urls, err := h.uploadImages(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Image upload failed", err)
		return
	}
	req.ImageURLs = urls

	resp, err := h.service.Update(c.Request.Context(), id, actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Photography updated successfully", resp)
}

// Archive handles PUT /photography/archive/:id
func (h *PhotographyHandler) Archive(c *gin.Context) {
	h.runAction(c, h.service.Archive, "Photography archived successfully")
}

// Delete handles DELETE /photography/:id (soft delete)
func (h *PhotographyHandler) Delete(c *gin.Context) {
	h.runAction(c, h.service.Delete, "Photography deleted successfully")
}

// List handles GET /photography
func (h *PhotographyHandler) List(c *gin.Context) {
	h.list(c, photography.Filter{})
}

// ListByCategory handles GET /photography/category/:category
func (h *PhotographyHandler) ListByCategory(c *gin.Context) {
	h.list(c, photography.Filter{Category: c.Param("category")})
}

func (h *PhotographyHandler) list(c *gin.Context, filter photography.Filter) {
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", items)
}

// GetByID handles GET /photography/:id
func (h *PhotographyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid photography id", err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}

// AdminListAll handles GET /photography/admin/all — raw rows for moderation.
func (h *PhotographyHandler) AdminListAll(c *gin.Context) {
	items, err := h.service.AdminListAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", items)
}

// ========================================
// HELPERS
// ========================================

// uploadImages resolves every file under the "images" field into a URL.
// Absent files are fine; creation validates the count service-side.
func (h *PhotographyHandler) uploadImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxImagesCount {
		return nil, fmt.Errorf("at most %d images per upload", maxImagesCount)
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.uploadImage(c, file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func (h *PhotographyHandler) uploadImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := fmt.Sprintf("photography/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	return h.storage.Upload(c.Request.Context(), key, data, file.Header.Get("Content-Type"))
}

func (h *PhotographyHandler) runAction(c *gin.Context, action func(ctx context.Context, id uuid.UUID, actor authz.Actor) error, message string) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid photography id", err)
		return
	}

	if err := action(c.Request.Context(), id, actor); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, message, nil)
}

// handleError maps domain errors to HTTP status codes.
func (h *PhotographyHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.Is(err, photography.ErrPhotographyNotFound):
		response.Error(c, http.StatusNotFound, "Photography not found", nil)
	case errors.Is(err, photography.ErrNotAuthorized):
		response.Error(c, http.StatusForbidden, "Not authorized", nil)
	case errors.Is(err, photography.ErrImageRequired):
		response.Error(c, http.StatusBadRequest, "At least one image is required", nil)
	case errors.As(err, &validationErrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", err)
	default:
		logger.Error("photography handler: unexpected error", err)
		response.Error(c, http.StatusInternalServerError, "Server error", nil)
	}
}
