package services_test

import (
	"context"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockAgencyAuthorizer is a mock type for the AgencyAuthorizerSvc interface,
// shared by the service test suites.
type MockAgencyAuthorizer struct {
	mock.Mock
}

func (m *MockAgencyAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, agencyID string, requiredRole domain.AgencyRole) error {
	args := m.Called(ctx, userID, agencyID, requiredRole)
	return args.Error(0)
}

// MockNotifier is a mock type for the Notifier interface.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, agencyID string, userID string, kind domain.NotificationKind, title string, body string, refID string) error {
	args := m.Called(ctx, agencyID, userID, kind, title, body, refID)
	return args.Error(0)
}
