package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/matchmaker-backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
	}
}

// CreateSwipe handles POST /swipe
// @Summary Swipe on a candidate
// @Description Record a like or pass. A mutual like creates a match with a conversation.
// @Tags swipe
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body swipe.SwipeRequest true "Swipe"
// @Success 201 {object} swipe.SwipeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipe [post]
func (h *SwipeHandler) CreateSwipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	resp, err := h.swipeUseCase.CreateSwipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to create swipe")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetLikesReceived handles GET /swipe/likes-received
// @Summary Likes received
// @Description Pending likes on the current user
// @Tags swipe
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} swipe.LikeReceived
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /swipe/likes-received [get]
func (h *SwipeHandler) GetLikesReceived(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, ok := bindPage(c, 20)
	if !ok {
		return
	}

	likes, err := h.swipeUseCase.GetLikesReceived(c.Request.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		respondError(c, err, "failed to get likes")
		return
	}

	c.JSON(http.StatusOK, likes)
}

// Unmatch handles DELETE /matches/:user_id
// @Summary Unmatch
// @Description Delete the match, its conversation and both swipes
// @Tags match
// @Security BearerAuth
// @Produce json
// @Param user_id path int true "Other user id"
// @Success 200 {object} domain.CleanupResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches/{user_id} [delete]
func (h *SwipeHandler) Unmatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	otherID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	res, err := h.swipeUseCase.Unmatch(c.Request.Context(), userID, otherID)
	if err != nil {
		respondError(c, err, "failed to unmatch")
		return
	}

	c.JSON(http.StatusOK, res)
}

// ResetMatches handles POST /matches/reset
// @Summary Reset matching
// @Description Delete every match, conversation and swipe of the current user
// @Tags match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.CleanupResult
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches/reset [post]
func (h *SwipeHandler) ResetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	res, err := h.swipeUseCase.Cleanup(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to reset matches")
		return
	}

	c.JSON(http.StatusOK, res)
}

// Block handles POST /blocks
// @Summary Block a user
// @Description Block a user and deactivate the match with them
// @Tags block
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body swipe.BlockRequest true "Block"
// @Success 201 {object} domain.Block
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /blocks [post]
func (h *SwipeHandler) Block(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req swipe.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	block, err := h.swipeUseCase.Block(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to block user")
		return
	}

	c.JSON(http.StatusCreated, block)
}

// Unblock handles DELETE /blocks/:user_id
// @Summary Unblock a user
// @Tags block
// @Security BearerAuth
// @Produce json
// @Param user_id path int true "Blocked user id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /blocks/{user_id} [delete]
func (h *SwipeHandler) Unblock(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	blockedID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.swipeUseCase.Unblock(c.Request.Context(), userID, blockedID); err != nil {
		respondError(c, err, "failed to unblock user")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "user unblocked",
	})
}

// ListBlocks handles GET /blocks
// @Summary List blocked users
// @Tags block
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Block
// @Failure 500 {object} ErrorResponse
// @Router /blocks [get]
func (h *SwipeHandler) ListBlocks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	blocks, err := h.swipeUseCase.ListBlocks(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list blocks")
		return
	}

	c.JSON(http.StatusOK, blocks)
}
