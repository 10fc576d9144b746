package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/matchmaker-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/matchmaker-backend/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// clientErrors are sentinels whose message is safe to return as is.
var clientErrors = []struct {
	err    error
	status int
}{
	{domain.ErrProfileNotFound, http.StatusNotFound},
	{domain.ErrMatchNotFound, http.StatusNotFound},
	{domain.ErrConversationNotFound, http.StatusNotFound},
	{domain.ErrBlockNotFound, http.StatusNotFound},
	{domain.ErrSwipeNotFound, http.StatusNotFound},
	{domain.ErrSwipeAlreadyExists, http.StatusBadRequest},
	{domain.ErrInvalidSwipeAction, http.StatusBadRequest},
	{domain.ErrCannotSwipeSelf, http.StatusBadRequest},
	{domain.ErrCannotBlockSelf, http.StatusBadRequest},
	{domain.ErrInvalidBlockReason, http.StatusBadRequest},
	{domain.ErrInvalidMessage, http.StatusBadRequest},
	{domain.ErrInvalidPreferences, http.StatusBadRequest},
	{domain.ErrUserBlocked, http.StatusForbidden},
	{domain.ErrBlockAlreadyExists, http.StatusConflict},
	{domain.ErrMatchInactive, http.StatusConflict},
	{domain.ErrLockNotAcquired, http.StatusConflict},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
}

// respondError maps known domain errors to their status and hides everything else behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			msg := ce.err.Error()
			if errors.Is(err, domain.ErrInvalidPreferences) {
				msg = err.Error()
			}
			c.JSON(ce.status, ErrorResponse{Error: msg})
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}

// currentUserID reads the authenticated user and answers 401 when it is missing.
func currentUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return 0, false
	}
	return userID.(int), true
}

// pathID parses a positive integer path parameter and answers 400 otherwise.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid " + name,
		})
		return 0, false
	}
	return id, true
}

// PageQuery is the limit/offset pair of list endpoints
type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

func bindPage(c *gin.Context, defaultLimit int) (PageQuery, bool) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid pagination",
		})
		return q, false
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	return q, true
}
