package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backtrack/internal/domain"
	"backtrack/internal/service"
)

type PostHandler struct {
	logger *zap.Logger
	posts  *service.PostService
}

func NewPostHandler(logger *zap.Logger, posts *service.PostService) *PostHandler {
	return &PostHandler{logger: logger, posts: posts}
}

type createPostRequest struct {
	TargetAvatar    domain.AvatarConfig     `json:"target_avatar"`
	Note            string                  `json:"note"`
	SightingDate    *time.Time              `json:"sighting_date"`
	TimeGranularity *domain.TimeGranularity `json:"time_granularity"`
}

// CreatePost maneja POST /locations/:id/posts.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create post request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), service.CreatePostInput{
		ProducerID:      userID,
		LocationID:      c.Param("id"),
		TargetAvatar:    req.TargetAvatar,
		Note:            req.Note,
		SightingDate:    req.SightingDate,
		TimeGranularity: req.TimeGranularity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAvatar),
			errors.Is(err, service.ErrInvalidGranularity),
			errors.Is(err, service.ErrSightingPairing),
			errors.Is(err, service.ErrInvalidSightingDate),
			errors.Is(err, service.ErrNoteTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		default:
			h.logger.Error("create post failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create post"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}
