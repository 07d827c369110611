package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backtrack/internal/service"
	"backtrack/internal/temporal"
)

type FeedHandler struct {
	logger *zap.Logger
	feeds  *service.FeedService
}

func NewFeedHandler(logger *zap.Logger, feeds *service.FeedService) *FeedHandler {
	return &FeedHandler{logger: logger, feeds: feeds}
}

// LocationFeed maneja GET /locations/:id/feed?filter=&threshold=&sort=match&only_matches=true.
func (h *FeedHandler) LocationFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter, err := temporal.ParseFilterOption(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req := service.FeedRequest{
		ViewerID:    userID,
		LocationID:  c.Param("id"),
		Filter:      filter,
		SortByMatch: c.Query("sort") == "match",
		OnlyMatches: c.Query("only_matches") == "true",
	}
	if raw := c.Query("threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be an integer"})
			return
		}
		req.Threshold = &threshold
	}

	feed, err := h.feeds.LocationFeed(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		h.logger.Error("location feed failed", zap.String("location_id", req.LocationID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load feed"})
		return
	}
	c.JSON(http.StatusOK, feed)
}
