package handlers

import (
	"net/http"

	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// leadHandler handles HTTP requests for an agency's sales leads.
type leadHandler struct {
	leadService portssvc.LeadSvcFacade
}

func newLeadHandler(ls portssvc.LeadSvcFacade) *leadHandler {
	return &leadHandler{leadService: ls}
}

// RegisterLeadRoutes mounts the lead endpoints on an agency-scoped group.
func RegisterLeadRoutes(rg *gin.RouterGroup, leadService portssvc.LeadSvcFacade) {
	h := newLeadHandler(leadService)

	leads := rg.Group("/leads")
	{
		leads.POST("", h.createLead)
		leads.GET("", h.listLeads)
		leads.GET("/:lead_id", h.getLead)
		leads.PUT("/:lead_id", h.updateLead)
		leads.PUT("/:lead_id/status", h.updateLeadStatus)
		leads.POST("/:lead_id/convert", h.convertLead)
	}
}

// createLead godoc
// @Summary Create a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param lead body dto.CreateLeadRequest true "Lead details"
// @Success 201 {object} dto.LeadResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leads [post]
func (h *leadHandler) createLead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), c.Param("agency_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create lead")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLeadResponse(lead))
}

// listLeads godoc
// @Summary List leads
// @Tags leads
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListLeadsResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leads [get]
func (h *leadHandler) listLeads(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListLeadsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	leads, err := h.leadService.ListLeads(c.Request.Context(), c.Param("agency_id"), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list leads")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLeadsResponse(leads))
}

// getLead godoc
// @Summary Get a lead
// @Tags leads
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param lead_id path string true "Lead ID"
// @Success 200 {object} dto.LeadResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leads/{lead_id} [get]
func (h *leadHandler) getLead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	lead, err := h.leadService.GetLeadByID(c.Request.Context(), c.Param("agency_id"), c.Param("lead_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Lead not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// updateLead godoc
// @Summary Update a lead
// @Tags leads
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param lead_id path string true "Lead ID"
// @Param lead body dto.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} dto.LeadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leads/{lead_id} [put]
func (h *leadHandler) updateLead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), c.Param("agency_id"), c.Param("lead_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update lead")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// updateLeadStatus godoc
// @Summary Move a lead through the pipeline
// @Description Applies a pipeline transition. Conversion has its own endpoint.
// @Tags leads
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param lead_id path string true "Lead ID"
// @Param status body dto.UpdateLeadStatusRequest true "Target status"
// @Success 200 {object} dto.LeadResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leads/{lead_id}/status [put]
func (h *leadHandler) updateLeadStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lead, err := h.leadService.UpdateLeadStatus(c.Request.Context(), c.Param("agency_id"), c.Param("lead_id"), req.Status, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update lead status")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// convertLead godoc
// @Summary Convert a qualified lead into a client
// @Description Creates the client, and optionally an initial project, in one
// atomic step.
// @Tags leads
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param lead_id path string true "Lead ID"
// @Param convert body dto.ConvertLeadRequest true "Conversion options"
// @Success 201 {object} dto.ConvertLeadResponse
// @Failure 400 {object} ErrorResponse "Lead is not qualified"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leads/{lead_id}/convert [post]
func (h *leadHandler) convertLead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ConvertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.leadService.ConvertLead(c.Request.Context(), c.Param("agency_id"), c.Param("lead_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to convert lead")
		return
	}
	c.JSON(http.StatusCreated, dto.ToConvertLeadResponse(result))
}
