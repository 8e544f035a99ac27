package handlers

import (
	"net/http"

	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles payment recording and ledger reads.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	rg.POST("/invoices/:invoice_id/payments", h.recordPayment)
	rg.GET("/invoices/:invoice_id/payments", h.listPayments)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/accounts", h.listAccounts)
		ledger.GET("/entries/:entry_id", h.getJournalEntry)
	}
}

// recordPayment godoc
// @Summary Record a payment against an invoice
// @Description Creates the payment and its balanced journal entry atomically
// and returns the updated invoice.
// @Tags payments
// @Accept json
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param invoice_id path string true "Invoice ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.RecordPaymentResponse
// @Failure 400 {object} ErrorResponse "Invoice not payable or amount exceeds outstanding"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/invoices/{invoice_id}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), c.Param("agency_id"), c.Param("invoice_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecordPaymentResponse(result))
}

// listPayments godoc
// @Summary List payments for an invoice
// @Tags payments
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/invoices/{invoice_id}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsByInvoice(c.Request.Context(), c.Param("agency_id"), c.Param("invoice_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

// listAccounts godoc
// @Summary List ledger accounts
// @Tags ledger
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/ledger/accounts [get]
func (h *paymentHandler) listAccounts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	accounts, err := h.paymentService.ListAccounts(c.Request.Context(), c.Param("agency_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// getJournalEntry godoc
// @Summary Get a journal entry with its lines
// @Tags ledger
// @Produce json
// @Param agency_id path string true "Agency ID"
// @Param entry_id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /agencies/{agency_id}/ledger/entries/{entry_id} [get]
func (h *paymentHandler) getJournalEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entry, err := h.paymentService.GetJournalEntry(c.Request.Context(), c.Param("agency_id"), c.Param("entry_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Journal entry not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
