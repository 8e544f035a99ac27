package handlers

import (
	"net/http"

	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// leaveHandler handles leave types, holidays and leave requests.
type leaveHandler struct {
	leaveService portssvc.LeaveSvcFacade
}

func newLeaveHandler(ls portssvc.LeaveSvcFacade) *leaveHandler {
	return &leaveHandler{leaveService: ls}
}

func registerLeaveRoutes(rg *gin.RouterGroup, leaveService portssvc.LeaveSvcFacade) {
	h := newLeaveHandler(leaveService)

	leaveTypes := rg.Group("/leave-types")
	{
		leaveTypes.POST("", h.createLeaveType)
		leaveTypes.GET("", h.listLeaveTypes)
		leaveTypes.PUT("/:leave_type_id", h.updateLeaveType)
		leaveTypes.DELETE("/:leave_type_id", h.deleteLeaveType)
	}

	holidays := rg.Group("/holidays")
	{
		holidays.POST("", h.createHoliday)
		holidays.GET("", h.listHolidays)
		holidays.DELETE("/:holiday_id", h.deleteHoliday)
	}

	requests := rg.Group("/leave-requests")
	{
		requests.POST("", h.applyForLeave)
		requests.GET("", h.listLeaveRequests)
		requests.GET("/mine", h.listMyLeaveRequests)
		requests.GET("/:request_id", h.getLeaveRequest)
		requests.POST("/:request_id/approve", h.approveLeaveRequest)
		requests.POST("/:request_id/reject", h.rejectLeaveRequest)
		requests.POST("/:request_id/cancel", h.cancelLeaveRequest)
	}
}

// createLeaveType godoc
// @Summary Create a leave type
// @Tags leave
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param leaveType body dto.CreateLeaveTypeRequest true "Leave type details"
// @Success 201 {object} dto.LeaveTypeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Name already in use"
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-types [post]
func (h *leaveHandler) createLeaveType(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateLeaveTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	leaveType, err := h.leaveService.CreateLeaveType(c.Request.Context(), c.Param("agency_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create leave type")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLeaveTypeResponse(leaveType))
}

// listLeaveTypes godoc
// @Summary List leave types
// @Tags leave
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Success 200 {object} dto.ListLeaveTypesResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-types [get]
func (h *leaveHandler) listLeaveTypes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	leaveTypes, err := h.leaveService.ListLeaveTypes(c.Request.Context(), c.Param("agency_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list leave types")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLeaveTypesResponse(leaveTypes))
}

// updateLeaveType godoc
// @Summary Update a leave type
// @Tags leave
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param leave_type_id path string true "Leave type ID"
// @Param leaveType body dto.UpdateLeaveTypeRequest true "Fields to update"
// @Success 200 {object} dto.LeaveTypeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-types/{leave_type_id} [put]
func (h *leaveHandler) updateLeaveType(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateLeaveTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	leaveType, err := h.leaveService.UpdateLeaveType(c.Request.Context(), c.Param("agency_id"), c.Param("leave_type_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update leave type")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaveTypeResponse(leaveType))
}

// deleteLeaveType godoc
// @Summary Delete a leave type
// @Description Removes a leave type that no leave request references.
// @Tags leave
// @Param agency_id path string true "Agency ID"
// @Param leave_type_id path string true "Leave type ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Leave type is in use"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-types/{leave_type_id} [delete]
func (h *leaveHandler) deleteLeaveType(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.leaveService.DeleteLeaveType(c.Request.Context(), c.Param("agency_id"), c.Param("leave_type_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete leave type")
		return
	}
	c.Status(http.StatusNoContent)
}

// createHoliday godoc
// @Summary Add an agency holiday
// @Tags leave
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param holiday body dto.CreateHolidayRequest true "Holiday details"
// @Success 201 {object} dto.HolidayResponse
// @Failure 409 {object} ErrorResponse "Date already a holiday"
// @Security BearerAuth
// @Router /agencies/{agency_id}/holidays [post]
func (h *leaveHandler) createHoliday(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	holiday, err := h.leaveService.CreateHoliday(c.Request.Context(), c.Param("agency_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create holiday")
		return
	}
	c.JSON(http.StatusCreated, dto.ToHolidayResponse(holiday))
}

// listHolidays godoc
// @Summary List holidays for a year
// @Tags leave
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param year query int false "Calendar year, defaults to the current year"
// @Success 200 {object} dto.ListHolidaysResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/holidays [get]
func (h *leaveHandler) listHolidays(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListHolidaysParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	holidays, err := h.leaveService.ListHolidays(c.Request.Context(), c.Param("agency_id"), userID, params.Year)
	if err != nil {
		respondServiceError(c, err, "Failed to list holidays")
		return
	}
	c.JSON(http.StatusOK, dto.ToListHolidaysResponse(holidays))
}

// deleteHoliday godoc
// @Summary Remove a holiday
// @Tags leave
// @Param agency_id path string true "Agency ID"
// @Param holiday_id path string true "Holiday ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/holidays/{holiday_id} [delete]
func (h *leaveHandler) deleteHoliday(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.leaveService.DeleteHoliday(c.Request.Context(), c.Param("agency_id"), c.Param("holiday_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete holiday")
		return
	}
	c.Status(http.StatusNoContent)
}

// applyForLeave godoc
// @Summary Apply for leave
// @Description Working days are computed server-side, skipping weekends and
// agency holidays, and checked against the type's yearly allowance.
// @Tags leave
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param request body dto.ApplyLeaveRequest true "Leave request details"
// @Success 201 {object} dto.LeaveRequestResponse
// @Failure 400 {object} ErrorResponse "Overlap, zero working days or allowance exceeded"
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-requests [post]
func (h *leaveHandler) applyForLeave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	request, err := h.leaveService.ApplyForLeave(c.Request.Context(), c.Param("agency_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to apply for leave")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLeaveRequestResponse(request))
}

// listLeaveRequests godoc
// @Summary List all leave requests in the agency
// @Tags leave
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.ListLeaveRequestsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-requests [get]
func (h *leaveHandler) listLeaveRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListLeaveRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	requests, err := h.leaveService.ListLeaveRequests(c.Request.Context(), c.Param("agency_id"), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list leave requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLeaveRequestsResponse(requests))
}

// listMyLeaveRequests godoc
// @Summary List the caller's leave requests
// @Tags leave
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Success 200 {object} dto.ListLeaveRequestsResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-requests/mine [get]
func (h *leaveHandler) listMyLeaveRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.leaveService.ListMyLeaveRequests(c.Request.Context(), c.Param("agency_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list leave requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLeaveRequestsResponse(requests))
}

// getLeaveRequest godoc
// @Summary Get a leave request
// @Tags leave
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param request_id path string true "Leave request ID"
// @Success 200 {object} dto.LeaveRequestResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-requests/{request_id} [get]
func (h *leaveHandler) getLeaveRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	request, err := h.leaveService.GetLeaveRequest(c.Request.Context(), c.Param("agency_id"), c.Param("request_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Leave request not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaveRequestResponse(request))
}

// approveLeaveRequest godoc
// @Summary Approve a pending leave request
// @Tags leave
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param request_id path string true "Leave request ID"
// @Param decision body dto.DecideLeaveRequest false "Optional decision note"
// @Success 200 {object} dto.LeaveRequestResponse
// @Failure 400 {object} ErrorResponse "Not pending or deciding own request"
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-requests/{request_id}/approve [post]
func (h *leaveHandler) approveLeaveRequest(c *gin.Context) {
	h.decideLeaveRequest(c, true)
}

// rejectLeaveRequest godoc
// @Summary Reject a pending leave request
// @Tags leave
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param request_id path string true "Leave request ID"
// @Param decision body dto.DecideLeaveRequest false "Optional decision note"
// @Success 200 {object} dto.LeaveRequestResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-requests/{request_id}/reject [post]
func (h *leaveHandler) rejectLeaveRequest(c *gin.Context) {
	h.decideLeaveRequest(c, false)
}

func (h *leaveHandler) decideLeaveRequest(c *gin.Context, approve bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.DecideLeaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
	}

	request, err := h.leaveService.DecideLeaveRequest(c.Request.Context(), c.Param("agency_id"), c.Param("request_id"), approve, req.Note, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to decide leave request")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaveRequestResponse(request))
}

// cancelLeaveRequest godoc
// @Summary Cancel your own pending leave request
// @Tags leave
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param request_id path string true "Leave request ID"
// @Success 200 {object} dto.LeaveRequestResponse
// @Failure 400 {object} ErrorResponse "Not pending"
// @Failure 403 {object} ErrorResponse "Not the requester"
// @Security BearerAuth
// @Router /agencies/{agency_id}/leave-requests/{request_id}/cancel [post]
func (h *leaveHandler) cancelLeaveRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	request, err := h.leaveService.CancelLeaveRequest(c.Request.Context(), c.Param("agency_id"), c.Param("request_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel leave request")
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaveRequestResponse(request))
}
