package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers receive at route-registration time.
type ServiceContainer struct {
	User          UserSvcFacade
	Token         TokenSvcFacade
	MFA           MFASvcFacade
	GoogleOAuth   GoogleOAuthSvcFacade
	Agency        AgencySvcFacade
	Client        ClientSvcFacade
	Lead          LeadSvcFacade
	Project       ProjectSvcFacade
	Job           JobSvcFacade
	Invoice       InvoiceSvcFacade
	Payment       PaymentSvcFacade
	Leave         LeaveSvcFacade
	Reimbursement ReimbursementSvcFacade
	Notification  NotificationSvcFacade
}
