package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backtrack/internal/domain"
	"backtrack/internal/matching"
)

type MatchHandler struct {
	logger  *zap.Logger
	matcher *matching.Matcher
}

func NewMatchHandler(logger *zap.Logger, matcher *matching.Matcher) *MatchHandler {
	if matcher == nil {
		matcher = matching.DefaultMatcher
	}
	return &MatchHandler{logger: logger, matcher: matcher}
}

type matchPreviewRequest struct {
	Target    domain.AvatarConfig `json:"target"`
	Consumer  domain.AvatarConfig `json:"consumer"`
	Threshold *int                `json:"threshold"`
}

// Preview maneja POST /match/preview: compara dos avatares con desglose por atributo.
func (h *MatchHandler) Preview(c *gin.Context) {
	var req matchPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid match preview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := req.Target.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target: " + err.Error()})
		return
	}
	if err := req.Consumer.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consumer: " + err.Error()})
		return
	}

	threshold := h.matcher.Threshold()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	res := h.matcher.CompareDetailed(req.Target, req.Consumer, threshold)
	c.JSON(http.StatusOK, gin.H{
		"result":      res,
		"quick_match": matching.QuickMatch(req.Target, req.Consumer),
		"primary":     matching.PrimaryMatchCount(req.Target, req.Consumer),
		"summary":     matching.MatchSummary(req.Target, req.Consumer),
	})
}
