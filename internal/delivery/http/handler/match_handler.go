package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/matchmaker-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// ListMatches handles GET /matches
// @Summary List matches
// @Tags match
// @Security BearerAuth
// @Produce json
// @Success 200 {array} match.MatchResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchUseCase.ListMatches(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get matches")
		return
	}

	c.JSON(http.StatusOK, matches)
}

// ListConversations handles GET /conversations
// @Summary List conversations
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Success 200 {array} match.ConversationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /conversations [get]
func (h *MatchHandler) ListConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	convs, err := h.matchUseCase.ListConversations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get conversations")
		return
	}

	c.JSON(http.StatusOK, convs)
}

// GetMessages handles GET /conversations/:id/messages
// @Summary Conversation messages
// @Description Messages of a conversation. Marks the other side's messages read.
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Param id path int true "Conversation id"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.Message
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /conversations/{id}/messages [get]
func (h *MatchHandler) GetMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	convID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, ok := bindPage(c, 50)
	if !ok {
		return
	}

	messages, err := h.matchUseCase.GetMessages(c.Request.Context(), userID, convID, page.Limit, page.Offset)
	if err != nil {
		respondError(c, err, "failed to get messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// SendMessage handles POST /conversations/:id/messages
// @Summary Send message
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Conversation id"
// @Param request body match.SendMessageRequest true "Message"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /conversations/{id}/messages [post]
func (h *MatchHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	convID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req match.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	message, err := h.matchUseCase.SendMessage(c.Request.Context(), userID, convID, &req)
	if err != nil {
		respondError(c, err, "failed to send message")
		return
	}

	c.JSON(http.StatusCreated, message)
}
