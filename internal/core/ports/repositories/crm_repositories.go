package repositories

import (
	"context"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
)

// ClientRepository persists client records.
type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClientsByAgency(ctx context.Context, agencyID string, limit int, offset int) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error
	MarkClientDeleted(ctx context.Context, clientID string, deletedAt time.Time, deletedBy string) error
}

// LeadRepository persists leads. ConvertLead performs the whole
// lead-to-client conversion inside a single database transaction.
type LeadRepository interface {
	SaveLead(ctx context.Context, lead domain.Lead) error
	FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error)
	ListLeadsByAgency(ctx context.Context, agencyID string, status *domain.LeadStatus, limit int, offset int) ([]domain.Lead, error)
	UpdateLead(ctx context.Context, lead domain.Lead) error
	ConvertLead(ctx context.Context, lead domain.Lead, client domain.Client, project *domain.Project) error
}
