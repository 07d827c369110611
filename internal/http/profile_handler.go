package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backtrack/internal/domain"
	"backtrack/internal/service"
)

type ProfileHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{logger: logger, profiles: profiles}
}

// GetAvatar maneja GET /me/avatar.
func (h *ProfileHandler) GetAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	avatar, err := h.profiles.GetAvatar(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAvatarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "avatar not found"})
			return
		}
		h.logger.Error("get avatar failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": avatar})
}

// PutAvatar maneja PUT /me/avatar.
func (h *ProfileHandler) PutAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var avatar domain.AvatarConfig
	if err := c.ShouldBindJSON(&avatar); err != nil {
		h.logger.Warn("invalid avatar request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	profile, err := h.profiles.SaveAvatar(c.Request.Context(), userID, avatar)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAvatar) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("save avatar failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
