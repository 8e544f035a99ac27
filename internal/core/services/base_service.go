package services

import (
	"context"
	"log/slog"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	AgencyAuthorizer portssvc.AgencyAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user has the required role for an agency
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, agencyID string, requiredRole domain.AgencyRole) error {
	if s.AgencyAuthorizer != nil {
		return s.AgencyAuthorizer.AuthorizeUserAction(ctx, userID, agencyID, requiredRole)
	}
	s.LogDebug(ctx, "No agency authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("agency_id", agencyID),
		slog.String("required_role", string(requiredRole)))
	return nil
}
