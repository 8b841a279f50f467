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

	"cms-backend/internal/domains/blog"
	"cms-backend/internal/infrastructure/storage"
	"cms-backend/internal/shared/authz"
	"cms-backend/internal/shared/middleware"
	"cms-backend/internal/shared/response"
	"cms-backend/pkg/logger"
)

const maxImageSize = 10 << 20 // 10 MB per file

// BlogHandler handles HTTP requests for the blog domain. Image files are
// resolved to URLs here; the service only ever sees strings.
type BlogHandler struct {
	service blog.Service
	storage storage.Uploader
}

func NewBlogHandler(service blog.Service, storage storage.Uploader) *BlogHandler {
	return &BlogHandler{
		service: service,
		storage: storage,
	}
}

// ========================================
// LIFECYCLE ENDPOINTS
// ========================================

// Create handles POST /blogs (multipart, admin mount)
func (h *BlogHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req blog.CreateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := h.uploadImage(c, file)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Image upload failed", err)
			return
		}
		req.ImageURL = &url
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Blog created successfully", resp)
}

// Update handles PUT /blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid blog id", err)
		return
	}

	var req blog.UpdateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := h.uploadImage(c, file)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Image upload failed", err)
			return
		}
		req.ImageURL = &url
	}

	resp, err := h.service.Update(c.Request.Context(), id, actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Blog updated successfully", resp)
}

// Archive handles PUT /blogs/archive/:id
func (h *BlogHandler) Archive(c *gin.Context) {
	h.moderate(c, h.service.Archive, "Blog archived successfully")
}

// Delete handles DELETE /blogs/:id (soft delete)
func (h *BlogHandler) Delete(c *gin.Context) {
	h.moderate(c, h.service.Delete, "Blog deleted successfully")
}

// ========================================
// READ ENDPOINTS
// ========================================

// List handles GET /blogs
func (h *BlogHandler) List(c *gin.Context) {
	h.list(c, blog.Filter{})
}

// ListByUser handles GET /blogs/user/:user_id
func (h *BlogHandler) ListByUser(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}
	h.list(c, blog.Filter{OwnerID: &ownerID})
}

// ListByTag handles GET /blogs/tag/:tag
func (h *BlogHandler) ListByTag(c *gin.Context) {
	h.list(c, blog.Filter{Tag: c.Param("tag")})
}

// ListBySection handles GET /blogs/section/:section
func (h *BlogHandler) ListBySection(c *gin.Context) {
	section := blog.Section(c.Param("section"))
	if !section.IsValid() {
		response.Error(c, http.StatusBadRequest, "Invalid section", blog.ErrInvalidSection)
		return
	}
	h.list(c, blog.Filter{Section: section})
}

func (h *BlogHandler) list(c *gin.Context, filter blog.Filter) {
	blogs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", blogs)
}

// GetByID handles GET /blogs/:id
func (h *BlogHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid blog id", err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}

// AdminListAll handles GET /blogs/admin/all — raw rows for moderation.
func (h *BlogHandler) AdminListAll(c *gin.Context) {
	blogs, err := h.service.AdminListAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", blogs)
}

// ========================================
// INTERACTION ENDPOINTS
// ========================================

// Like handles PUT /blogs/like/:id
func (h *BlogHandler) Like(c *gin.Context) {
	h.interact(c, h.service.Like, "Blog liked")
}

// Unlike handles PUT /blogs/unlike/:id
func (h *BlogHandler) Unlike(c *gin.Context) {
	h.interact(c, h.service.Unlike, "Blog unliked")
}

// AddComment handles POST /blogs/comment/:id
func (h *BlogHandler) AddComment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid blog id", err)
		return
	}

	var req blog.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), id, actor, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Comment added", comment)
}

// DeleteComment handles DELETE /blogs/comment/:id/:comment_id
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid blog id", err)
		return
	}

	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid comment id", err)
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), id, commentID, actor); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Comment deleted", nil)
}

// ========================================
// UPLOAD ENDPOINTS
// ========================================

// UploadWysiwygImage handles POST /blogs/upload/wysiwyg-image. The editor
// uploads inline images ahead of the post itself and embeds the returned
// URL in the content.
func (h *BlogHandler) UploadWysiwygImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Image file is required", err)
		return
	}

	url, err := h.uploadImage(c, file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Image upload failed", err)
		return
	}

	response.Success(c, http.StatusOK, "Image uploaded", gin.H{"imageUrl": url})
}

func (h *BlogHandler) uploadImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
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

	key := fmt.Sprintf("blogs/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	return h.storage.Upload(c.Request.Context(), key, data, file.Header.Get("Content-Type"))
}

// ========================================
// HELPERS
// ========================================

// blogAction is the shared shape of the id-addressed mutations (archive,
// delete, like, unlike).
type blogAction func(ctx context.Context, id uuid.UUID, actor authz.Actor) error

func (h *BlogHandler) moderate(c *gin.Context, action blogAction, message string) {
	h.runAction(c, action, message)
}

func (h *BlogHandler) interact(c *gin.Context, action blogAction, message string) {
	h.runAction(c, action, message)
}

func (h *BlogHandler) runAction(c *gin.Context, action blogAction, message string) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid blog id", err)
		return
	}

	if err := action(c.Request.Context(), id, actor); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, message, nil)
}

// handleError maps domain errors to HTTP status codes.
func (h *BlogHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.Is(err, blog.ErrBlogNotFound):
		response.Error(c, http.StatusNotFound, "Blog not found", nil)
	case errors.Is(err, blog.ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, "Comment not found", nil)
	case errors.Is(err, blog.ErrNotAuthorized):
		response.Error(c, http.StatusForbidden, "Not authorized", nil)
	case errors.Is(err, blog.ErrAlreadyLiked):
		response.Error(c, http.StatusBadRequest, "Blog already liked", nil)
	case errors.Is(err, blog.ErrNotLiked):
		response.Error(c, http.StatusBadRequest, "Blog not liked", nil)
	case errors.Is(err, blog.ErrInvalidSection):
		response.Error(c, http.StatusBadRequest, "Invalid section", nil)
	case errors.As(err, &validationErrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", err)
	default:
		logger.Error("blog handler: unexpected error", err)
		response.Error(c, http.StatusInternalServerError, "Server error", nil)
	}
}
