package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	agencyRepo := newPgxAgencyRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	leadRepo := newPgxLeadRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	jobRepo := newPgxJobRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool, ledgerRepo)
	leaveRepo := newPgxLeaveRepository(dbPool)
	reimbursementRepo := newPgxReimbursementRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:          userRepo,
		AgencyRepo:        agencyRepo,
		ClientRepo:        clientRepo,
		LeadRepo:          leadRepo,
		ProjectRepo:       projectRepo,
		JobRepo:           jobRepo,
		LedgerRepo:        ledgerRepo,
		InvoiceRepo:       invoiceRepo,
		PaymentRepo:       paymentRepo,
		LeaveRepo:         leaveRepo,
		ReimbursementRepo: reimbursementRepo,
		NotificationRepo:  notificationRepo,
	}
}
