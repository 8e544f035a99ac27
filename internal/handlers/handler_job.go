package handlers

import (
	"net/http"

	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// jobHandler handles HTTP requests for jobs and team assignments.
type jobHandler struct {
	jobService portssvc.JobSvcFacade
}

func newJobHandler(js portssvc.JobSvcFacade) *jobHandler {
	return &jobHandler{jobService: js}
}

func registerJobRoutes(rg *gin.RouterGroup, jobService portssvc.JobSvcFacade) {
	h := newJobHandler(jobService)

	jobs := rg.Group("/jobs")
	{
		jobs.POST("", h.createJob)
		jobs.GET("", h.listJobs)
		jobs.GET("/:job_id", h.getJob)
		jobs.PUT("/:job_id", h.updateJob)

		jobs.POST("/:job_id/assignments", h.assignMember)
		jobs.GET("/:job_id/assignments", h.listJobAssignments)
		jobs.DELETE("/:job_id/assignments/:user_id", h.unassignMember)
	}

	// A member's assignments across all jobs in the agency.
	rg.GET("/members/:user_id/assignments", h.listMemberAssignments)
}

// createJob godoc
// @Summary Create a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param job body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/jobs [post]
func (h *jobHandler) createJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), c.Param("agency_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJobResponse(job))
}

// listJobs godoc
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListJobsResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/jobs [get]
func (h *jobHandler) listJobs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListJobsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	jobs, err := h.jobService.ListJobs(c.Request.Context(), c.Param("agency_id"), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list jobs")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJobsResponse(jobs))
}

// getJob godoc
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param job_id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/jobs/{job_id} [get]
func (h *jobHandler) getJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJobByID(c.Request.Context(), c.Param("agency_id"), c.Param("job_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Job not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// updateJob godoc
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param job_id path string true "Job ID"
// @Param job body dto.UpdateJobRequest true "Fields to update"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/jobs/{job_id} [put]
func (h *jobHandler) updateJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), c.Param("agency_id"), c.Param("job_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// assignMember godoc
// @Summary Assign a member to a job
// @Description The assignee is notified of the assignment.
// @Tags jobs
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param job_id path string true "Job ID"
// @Param assignment body dto.AssignMemberRequest true "Member and note"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already assigned"
// @Security BearerAuth
// @Router /agencies/{agency_id}/jobs/{job_id}/assignments [post]
func (h *jobHandler) assignMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AssignMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	assignment, err := h.jobService.AssignMember(c.Request.Context(), c.Param("agency_id"), c.Param("job_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to assign member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssignmentResponse(assignment))
}

// listJobAssignments godoc
// @Summary List the members assigned to a job
// @Tags jobs
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param job_id path string true "Job ID"
// @Success 200 {object} dto.ListAssignmentsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/jobs/{job_id}/assignments [get]
func (h *jobHandler) listJobAssignments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	assignments, err := h.jobService.ListJobAssignments(c.Request.Context(), c.Param("agency_id"), c.Param("job_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list assignments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAssignmentsResponse(assignments))
}

// unassignMember godoc
// @Summary Remove a member from a job
// @Tags jobs
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param job_id path string true "Job ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/jobs/{job_id}/assignments/{user_id} [delete]
func (h *jobHandler) unassignMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.UnassignMember(c.Request.Context(), c.Param("agency_id"), c.Param("job_id"), c.Param("user_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to unassign member")
		return
	}
	c.Status(http.StatusNoContent)
}

// listMemberAssignments godoc
// @Summary List a member's job assignments
// @Description Members can list their own; listing someone else's requires
// manager rights.
// @Tags jobs
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.ListAssignmentsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/members/{user_id}/assignments [get]
func (h *jobHandler) listMemberAssignments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	assignments, err := h.jobService.ListMemberAssignments(c.Request.Context(), c.Param("agency_id"), c.Param("user_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list assignments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAssignmentsResponse(assignments))
}
