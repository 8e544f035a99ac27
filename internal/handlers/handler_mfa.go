package handlers

import (
	"net/http"

	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// mfaHandler handles TOTP two-factor management for the current user.
type mfaHandler struct {
	mfaService portssvc.MFASvcFacade
}

func newMFAHandler(ms portssvc.MFASvcFacade) *mfaHandler {
	return &mfaHandler{mfaService: ms}
}

func registerMFARoutes(rg *gin.RouterGroup, mfaService portssvc.MFASvcFacade) {
	h := newMFAHandler(mfaService)

	mfa := rg.Group("/users/me/2fa")
	{
		mfa.POST("/enroll", h.enroll)
		mfa.POST("/activate", h.activate)
		mfa.POST("/disable", h.disable)
	}
}

// enroll godoc
// @Summary Start TOTP enrollment
// @Description Generates a TOTP secret and otpauth URL for the current user.
// @Tags mfa
// @Produce json
// @Success 200 {object} dto.MFAEnrollResponse
// @Failure 400 {object} ErrorResponse "Already enabled"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/2fa/enroll [post]
func (h *mfaHandler) enroll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.mfaService.EnrollTOTP(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to start two-factor enrollment")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// activate godoc
// @Summary Activate TOTP
// @Description Enables two-factor after verifying a code from the enrolled secret.
// @Tags mfa
// @Accept json
// @Produce json
// @Param code body dto.MFACodeRequest true "Six digit TOTP code"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid code"
// @Security BearerAuth
// @Router /users/me/2fa/activate [post]
func (h *mfaHandler) activate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.MFACodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.mfaService.ActivateTOTP(c.Request.Context(), userID, req.Code); err != nil {
		respondServiceError(c, err, "Failed to activate two-factor")
		return
	}
	c.Status(http.StatusNoContent)
}

// disable godoc
// @Summary Disable TOTP
// @Description Turns two-factor off after verifying a current code.
// @Tags mfa
// @Accept json
// @Produce json
// @Param code body dto.MFACodeRequest true "Six digit TOTP code"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid code"
// @Security BearerAuth
// @Router /users/me/2fa/disable [post]
func (h *mfaHandler) disable(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.MFACodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.mfaService.DisableTOTP(c.Request.Context(), userID, req.Code); err != nil {
		respondServiceError(c, err, "Failed to disable two-factor")
		return
	}
	c.Status(http.StatusNoContent)
}
