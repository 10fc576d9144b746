package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/matchmaker-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// GetMyFacts handles GET /profile/me/facts
// @Summary Get my matching facts
// @Description Get the profile facts the matching engine reads for the current user
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.ProfileFacts
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me/facts [get]
func (h *ProfileHandler) GetMyFacts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	facts, err := h.profileUseCase.GetFacts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, facts)
}

// UpdateMyFacts handles PUT /profile/me/facts
// @Summary Replace my matching facts
// @Description Replace the current user's profile facts and partner preferences
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpdateFactsRequest true "Profile facts"
// @Success 200 {object} domain.ProfileFacts
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me/facts [put]
func (h *ProfileHandler) UpdateMyFacts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profile.UpdateFactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	facts, err := h.profileUseCase.UpdateFacts(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, facts)
}
