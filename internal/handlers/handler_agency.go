package handlers

import (
	"net/http"

	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// agencyHandler handles HTTP requests related to agencies and memberships.
type agencyHandler struct {
	agencyService portssvc.AgencySvcFacade
}

func newAgencyHandler(as portssvc.AgencySvcFacade) *agencyHandler {
	return &agencyHandler{agencyService: as}
}

// registerAgencyTopLevelRoutes covers the routes that are not scoped to a
// single agency.
func registerAgencyTopLevelRoutes(rg *gin.RouterGroup, agencyService portssvc.AgencySvcFacade) {
	h := newAgencyHandler(agencyService)

	agencies := rg.Group("/agencies")
	{
		agencies.POST("", h.createAgency)
		agencies.GET("", h.listMyAgencies)
	}
}

// registerAgencyScopedRoutes covers routes under /agencies/:agency_id.
func registerAgencyScopedRoutes(rg *gin.RouterGroup, agencyService portssvc.AgencySvcFacade) {
	h := newAgencyHandler(agencyService)

	rg.GET("", h.getAgency)
	rg.PUT("", h.updateAgency)
	rg.DELETE("", h.deactivateAgency)

	members := rg.Group("/members")
	{
		members.POST("", h.addMember)
		members.GET("", h.listMembers)
		members.PUT("/:user_id", h.updateMemberRole)
		members.DELETE("/:user_id", h.removeMember)
	}
}

// createAgency godoc
// @Summary Create a new agency
// @Description Creates an agency and makes the caller its owner.
// @Tags agencies
// @Accept json
// @Produce json
// @Param agency body dto.CreateAgencyRequest true "Agency details"
// @Success 201 {object} dto.AgencyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies [post]
func (h *agencyHandler) createAgency(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	agency, err := h.agencyService.CreateAgency(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create agency")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAgencyResponse(agency))
}

// listMyAgencies godoc
// @Summary List the caller's agencies
// @Tags agencies
// @Produce json
// @Success 200 {object} dto.ListAgenciesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies [get]
func (h *agencyHandler) listMyAgencies(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	agencies, err := h.agencyService.ListUserAgencies(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list agencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAgenciesResponse(agencies))
}

// getAgency godoc
// @Summary Get agency details
// @Tags agencies
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Success 200 {object} dto.AgencyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id} [get]
func (h *agencyHandler) getAgency(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	agency, err := h.agencyService.FindAgencyByID(c.Request.Context(), c.Param("agency_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Agency not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToAgencyResponse(agency))
}

// updateAgency godoc
// @Summary Update agency details
// @Tags agencies
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param agency body dto.UpdateAgencyRequest true "Fields to update"
// @Success 200 {object} dto.AgencyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id} [put]
func (h *agencyHandler) updateAgency(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	agency, err := h.agencyService.UpdateAgency(c.Request.Context(), c.Param("agency_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update agency")
		return
	}
	c.JSON(http.StatusOK, dto.ToAgencyResponse(agency))
}

// deactivateAgency godoc
// @Summary Deactivate an agency
// @Description Owner-only. The agency and its data remain readable.
// @Tags agencies
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id} [delete]
func (h *agencyHandler) deactivateAgency(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.agencyService.DeactivateAgency(c.Request.Context(), c.Param("agency_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate agency")
		return
	}
	c.Status(http.StatusNoContent)
}

// addMember godoc
// @Summary Add a member to the agency
// @Tags members
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param member body dto.AddMemberRequest true "User and role"
// @Success 201 {object} nil
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/members [post]
func (h *agencyHandler) addMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.agencyService.AddUserToAgency(c.Request.Context(), userID, req.UserID, c.Param("agency_id"), req.Role); err != nil {
		respondServiceError(c, err, "Failed to add member")
		return
	}
	c.Status(http.StatusCreated)
}

// listMembers godoc
// @Summary List agency members
// @Tags members
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Success 200 {object} dto.ListMembersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/members [get]
func (h *agencyHandler) listMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	members, err := h.agencyService.ListMembers(c.Request.Context(), c.Param("agency_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

// updateMemberRole godoc
// @Summary Change a member's role
// @Tags members
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param user_id path string true "User ID"
// @Param role body dto.UpdateMemberRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/members/{user_id} [put]
func (h *agencyHandler) updateMemberRole(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.agencyService.UpdateMemberRole(c.Request.Context(), userID, c.Param("user_id"), c.Param("agency_id"), req.Role); err != nil {
		respondServiceError(c, err, "Failed to update member role")
		return
	}
	c.Status(http.StatusNoContent)
}

// removeMember godoc
// @Summary Remove a member from the agency
// @Tags members
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/members/{user_id} [delete]
func (h *agencyHandler) removeMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.agencyService.RemoveMember(c.Request.Context(), userID, c.Param("user_id"), c.Param("agency_id")); err != nil {
		respondServiceError(c, err, "Failed to remove member")
		return
	}
	c.Status(http.StatusNoContent)
}
