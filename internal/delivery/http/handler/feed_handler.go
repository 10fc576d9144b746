package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/matchmaker-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// Discover handles GET /discover
// @Summary Discovery feed
// @Description Ranked candidates for the current user
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of cards"
// @Param min_score query int false "Minimum compatibility"
// @Success 200 {array} feed.FeedUserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /discover [get]
func (h *FeedHandler) Discover(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req feed.DiscoverRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid query parameters",
		})
		return
	}

	cards, err := h.feedUseCase.Discover(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to load feed")
		return
	}

	c.JSON(http.StatusOK, cards)
}

// Compatibility handles GET /compatibility/:user_id
// @Summary Pairwise compatibility
// @Description Compatibility breakdown between the current user and another user
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param user_id path int true "Other user id"
// @Success 200 {object} feed.FeedUserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /compatibility/{user_id} [get]
func (h *FeedHandler) Compatibility(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	otherID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	card, err := h.feedUseCase.Compatibility(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, err, "failed to compute compatibility")
		return
	}

	c.JSON(http.StatusOK, card)
}
