package repositories

// RepositoryProvider bundles every repository implementation so wiring only
// has to happen once, in the database adapter package.
type RepositoryProvider struct {
	UserRepo          UserRepository
	AgencyRepo        AgencyRepository
	ClientRepo        ClientRepository
	LeadRepo          LeadRepository
	ProjectRepo       ProjectRepository
	JobRepo           JobRepository
	LedgerRepo        LedgerRepository
	InvoiceRepo       InvoiceRepository
	PaymentRepo       PaymentRepository
	LeaveRepo         LeaveRepository
	ReimbursementRepo ReimbursementRepository
	NotificationRepo  NotificationRepository
}
