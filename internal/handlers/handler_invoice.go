package handlers

import (
	"net/http"

	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests for an agency's invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.POST("/:invoice_id/send", h.sendInvoice)
		invoices.POST("/:invoice_id/void", h.voidInvoice)
		invoices.POST("/refresh-overdue", h.refreshOverdue)
	}
}

// createInvoice godoc
// @Summary Create a draft invoice
// @Description Amounts are computed server-side and a sequential invoice
// number is allocated.
// @Tags invoices
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /agencies/{agency_id}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), c.Param("agency_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListInvoicesResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), c.Param("agency_id"), userID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices))
}

// getInvoice godoc
// @Summary Get an invoice with its lines
// @Tags invoices
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("agency_id"), c.Param("invoice_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Invoice not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// sendInvoice godoc
// @Summary Issue a draft invoice
// @Tags invoices
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Not a draft"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/invoices/{invoice_id}/send [post]
func (h *invoiceHandler) sendInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), c.Param("agency_id"), c.Param("invoice_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to send invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// voidInvoice godoc
// @Summary Void an invoice
// @Description Only invoices without recorded payments can be voided.
// @Tags invoices
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/invoices/{invoice_id}/void [post]
func (h *invoiceHandler) voidInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.VoidInvoice(c.Request.Context(), c.Param("agency_id"), c.Param("invoice_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to void invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// refreshOverdue godoc
// @Summary Mark past-due invoices overdue
// @Tags invoices
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Success 200 {object} map[string]int64
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/invoices/refresh-overdue [post]
func (h *invoiceHandler) refreshOverdue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.invoiceService.RefreshOverdue(c.Request.Context(), c.Param("agency_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to refresh overdue invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": count})
}
