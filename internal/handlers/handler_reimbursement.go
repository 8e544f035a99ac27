package handlers

import (
	"net/http"

	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reimbursementHandler handles expense reimbursement requests.
type reimbursementHandler struct {
	reimbursementService portssvc.ReimbursementSvcFacade
}

func newReimbursementHandler(rs portssvc.ReimbursementSvcFacade) *reimbursementHandler {
	return &reimbursementHandler{reimbursementService: rs}
}

func registerReimbursementRoutes(rg *gin.RouterGroup, reimbursementService portssvc.ReimbursementSvcFacade) {
	h := newReimbursementHandler(reimbursementService)

	reimbursements := rg.Group("/reimbursements")
	{
		reimbursements.POST("", h.submitReimbursement)
		reimbursements.GET("", h.listReimbursements)
		reimbursements.GET("/mine", h.listMyReimbursements)
		reimbursements.GET("/:reimbursement_id", h.getReimbursement)
		reimbursements.POST("/:reimbursement_id/approve", h.approveReimbursement)
		reimbursements.POST("/:reimbursement_id/reject", h.rejectReimbursement)
		reimbursements.POST("/:reimbursement_id/pay", h.markReimbursementPaid)
	}
}

// submitReimbursement godoc
// @Summary Submit an expense reimbursement
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param reimbursement body dto.SubmitReimbursementRequest true "Expense details"
// @Success 201 {object} dto.ReimbursementResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/reimbursements [post]
func (h *reimbursementHandler) submitReimbursement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.SubmitReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	reimbursement, err := h.reimbursementService.SubmitReimbursement(c.Request.Context(), c.Param("agency_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to submit reimbursement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReimbursementResponse(reimbursement))
}

// listReimbursements godoc
// @Summary List all reimbursements in the agency
// @Tags reimbursements
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.ListReimbursementsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/reimbursements [get]
func (h *reimbursementHandler) listReimbursements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListReimbursementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	reimbursements, err := h.reimbursementService.ListReimbursements(c.Request.Context(), c.Param("agency_id"), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list reimbursements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReimbursementsResponse(reimbursements))
}

// listMyReimbursements godoc
// @Summary List the caller's reimbursements
// @Tags reimbursements
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Success 200 {object} dto.ListReimbursementsResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/reimbursements/mine [get]
func (h *reimbursementHandler) listMyReimbursements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reimbursements, err := h.reimbursementService.ListMyReimbursements(c.Request.Context(), c.Param("agency_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list reimbursements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReimbursementsResponse(reimbursements))
}

// getReimbursement godoc
// @Summary Get a reimbursement
// @Tags reimbursements
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param reimbursement_id path string true "Reimbursement ID"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/reimbursements/{reimbursement_id} [get]
func (h *reimbursementHandler) getReimbursement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reimbursement, err := h.reimbursementService.GetReimbursement(c.Request.Context(), c.Param("agency_id"), c.Param("reimbursement_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Reimbursement not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToReimbursementResponse(reimbursement))
}

// approveReimbursement godoc
// @Summary Approve a pending reimbursement
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param reimbursement_id path string true "Reimbursement ID"
// @Param decision body dto.DecideReimbursementRequest false "Optional decision note"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 400 {object} ErrorResponse "Not pending or deciding own claim"
// @Security BearerAuth
// @Router /agencies/{agency_id}/reimbursements/{reimbursement_id}/approve [post]
func (h *reimbursementHandler) approveReimbursement(c *gin.Context) {
	h.decideReimbursement(c, true)
}

// rejectReimbursement godoc
// @Summary Reject a pending reimbursement
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param reimbursement_id path string true "Reimbursement ID"
// @Param decision body dto.DecideReimbursementRequest false "Optional decision note"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/reimbursements/{reimbursement_id}/reject [post]
func (h *reimbursementHandler) rejectReimbursement(c *gin.Context) {
	h.decideReimbursement(c, false)
}

func (h *reimbursementHandler) decideReimbursement(c *gin.Context, approve bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.DecideReimbursementRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
	}

	reimbursement, err := h.reimbursementService.DecideReimbursement(c.Request.Context(), c.Param("agency_id"), c.Param("reimbursement_id"), approve, req.Note, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to decide reimbursement")
		return
	}
	c.JSON(http.StatusOK, dto.ToReimbursementResponse(reimbursement))
}

// markReimbursementPaid godoc
// @Summary Mark an approved reimbursement as paid out
// @Tags reimbursements
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param reimbursement_id path string true "Reimbursement ID"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 400 {object} ErrorResponse "Not approved"
// @Security BearerAuth
// @Router /agencies/{agency_id}/reimbursements/{reimbursement_id}/pay [post]
func (h *reimbursementHandler) markReimbursementPaid(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reimbursement, err := h.reimbursementService.MarkReimbursementPaid(c.Request.Context(), c.Param("agency_id"), c.Param("reimbursement_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to mark reimbursement paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToReimbursementResponse(reimbursement))
}
