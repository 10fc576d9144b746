package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/matchmaker-backend/internal/usecase/auth"
)

type AuthHandler struct {
	tokens *auth.TokenService
}

func NewAuthHandler(tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
	}
}

// DevTokenRequest represents a development token request
type DevTokenRequest struct {
	UserID int `json:"user_id" binding:"required,gt=0"`
}

// AuthResponse is the response structure
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	UserID    int    `json:"user_id"`
}

// DevToken handles POST /auth/dev-token. Only routed outside production.
// @Summary Issue development token
// @Description Issue an access token for any user id
// @Tags auth
// @Accept json
// @Produce json
// @Param request body DevTokenRequest true "User id"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/dev-token [post]
func (h *AuthHandler) DevToken(c *gin.Context) {
	var req DevTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	token, expiresAt, err := h.tokens.IssueToken(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		UserID:    req.UserID,
	})
}

// Me handles GET /auth/me
// @Summary Get current user
// @Description Get the user id behind the access token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
	})
}
