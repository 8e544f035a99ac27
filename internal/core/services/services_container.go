package services

import (
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/platform/config"
	"github.com/agencydesk/agency_desk_app/pkg/cache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cacheClient *cache.Redis) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The agency service first since everything else authorizes through it.
	container.Agency = NewAgencyService(repos.AgencyRepo, repos.UserRepo)
	authorizer := portssvc.AgencyAuthorizerSvc(container.Agency)

	// Notifications next; several services emit them.
	container.Notification = NewNotificationService(repos.NotificationRepo, cacheClient)
	notifier := portssvc.Notifier(container.Notification)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(repos.UserRepo, cfg)
	container.MFA = NewMFAService(repos.UserRepo, cfg.TOTPIssuer)
	container.GoogleOAuth = NewGoogleOAuthService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	container.Client = NewClientService(repos.ClientRepo, authorizer)
	container.Lead = NewLeadService(repos.LeadRepo, authorizer)
	container.Project = NewProjectService(repos.ProjectRepo, repos.ClientRepo, authorizer)
	container.Job = NewJobService(repos.JobRepo, repos.ProjectRepo, repos.AgencyRepo, authorizer, notifier)

	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ClientRepo, repos.AgencyRepo, authorizer)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, repos.LedgerRepo, authorizer, notifier)

	container.Leave = NewLeaveService(repos.LeaveRepo, authorizer, notifier)
	container.Reimbursement = NewReimbursementService(repos.ReimbursementRepo, repos.AgencyRepo, authorizer, notifier)

	return container
}
