package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	portssvc "github.com/agencydesk/agency_desk_app/internal/core/ports/services"
	"github.com/agencydesk/agency_desk_app/internal/dto"
	"github.com/google/uuid"
)

// reimbursementService implements the ReimbursementSvcFacade interface
type reimbursementService struct {
	BaseService
	reimbursementRepo portsrepo.ReimbursementRepository
	agencyRepo        portsrepo.AgencyRepository
	notifier          portssvc.Notifier
}

// NewReimbursementService creates a new reimbursement service with the provided dependencies
func NewReimbursementService(
	reimbursementRepo portsrepo.ReimbursementRepository,
	agencyRepo portsrepo.AgencyRepository,
	authorizer portssvc.AgencyAuthorizerSvc,
	notifier portssvc.Notifier,
) portssvc.ReimbursementSvcFacade {
	return &reimbursementService{
		BaseService:       BaseService{AgencyAuthorizer: authorizer},
		reimbursementRepo: reimbursementRepo,
		agencyRepo:        agencyRepo,
		notifier:          notifier,
	}
}

var _ portssvc.ReimbursementSvcFacade = (*reimbursementService)(nil)

// SubmitReimbursement files an expense claim in the agency currency.
func (s *reimbursementService) SubmitReimbursement(ctx context.Context, agencyID string, req dto.SubmitReimbursementRequest, requestingUserID string) (*domain.Reimbursement, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleEmployee); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("reimbursement amount must be positive: %w", apperrors.ErrValidation)
	}

	agency, err := s.agencyRepo.FindAgencyByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reimbursement := domain.Reimbursement{
		ReimbursementID: uuid.NewString(),
		AgencyID:        agencyID,
		UserID:          requestingUserID,
		Category:        req.Category,
		Amount:          req.Amount,
		CurrencyCode:    agency.CurrencyCode,
		Description:     req.Description,
		ReceiptRef:      req.ReceiptRef,
		Status:          domain.ReimbursementPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.reimbursementRepo.SaveReimbursement(ctx, reimbursement); err != nil {
		s.LogError(ctx, err, "Failed to save reimbursement", slog.String("user_id", requestingUserID))
		return nil, err
	}
	s.LogInfo(ctx, "Reimbursement submitted",
		slog.String("reimbursement_id", reimbursement.ReimbursementID),
		slog.String("amount", req.Amount.String()))
	return &reimbursement, nil
}

func (s *reimbursementService) findAgencyReimbursement(ctx context.Context, agencyID string, reimbursementID string) (*domain.Reimbursement, error) {
	reimbursement, err := s.reimbursementRepo.FindReimbursementByID(ctx, reimbursementID)
	if err != nil {
		return nil, err
	}
	if reimbursement.AgencyID != agencyID {
		return nil, fmt.Errorf("reimbursement %s not found in agency %s: %w", reimbursementID, agencyID, apperrors.ErrNotFound)
	}
	return reimbursement, nil
}

// GetReimbursement returns a single claim. Claimants see their own; managers
// see everyone's.
func (s *reimbursementService) GetReimbursement(ctx context.Context, agencyID string, reimbursementID string, requestingUserID string) (*domain.Reimbursement, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	reimbursement, err := s.findAgencyReimbursement(ctx, agencyID, reimbursementID)
	if err != nil {
		return nil, err
	}
	if reimbursement.UserID != requestingUserID {
		if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
			return nil, err
		}
	}
	return reimbursement, nil
}

func (s *reimbursementService) ListReimbursements(ctx context.Context, agencyID string, requestingUserID string, params dto.ListReimbursementsParams) ([]domain.Reimbursement, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}
	reimbursements, err := s.reimbursementRepo.ListReimbursementsByAgency(ctx, agencyID, params.Status, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reimbursements", slog.String("agency_id", agencyID))
		return nil, err
	}
	if reimbursements == nil {
		return []domain.Reimbursement{}, nil
	}
	return reimbursements, nil
}

func (s *reimbursementService) ListMyReimbursements(ctx context.Context, agencyID string, requestingUserID string) ([]domain.Reimbursement, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, agencyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	reimbursements, err := s.reimbursementRepo.ListReimbursementsByUser(ctx, agencyID, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list own reimbursements", slog.String("user_id", requestingUserID))
		return nil, err
	}
	if reimbursements == nil {
		return []domain.Reimbursement{}, nil
	}
	return reimbursements, nil
}

// DecideReimbursement approves or rejects a pending claim. Claimants cannot
// decide their own.
func (s *reimbursementService) DecideReimbursement(ctx context.Context, agencyID string, reimbursementID string, approve bool, note string, actingUserID string) (*domain.Reimbursement, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleManager); err != nil {
		return nil, err
	}

	reimbursement, err := s.findAgencyReimbursement(ctx, agencyID, reimbursementID)
	if err != nil {
		return nil, err
	}
	if reimbursement.Status != domain.ReimbursementPending {
		return nil, fmt.Errorf("reimbursement is already %s: %w", reimbursement.Status, apperrors.ErrValidation)
	}
	if reimbursement.UserID == actingUserID {
		return nil, fmt.Errorf("claimants cannot decide their own reimbursement: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	if approve {
		reimbursement.Status = domain.ReimbursementApproved
	} else {
		reimbursement.Status = domain.ReimbursementRejected
	}
	reimbursement.DecidedBy = &actingUserID
	reimbursement.DecidedAt = &now
	reimbursement.DecisionNote = note
	reimbursement.Touch(actingUserID, now)

	if err := s.reimbursementRepo.UpdateReimbursement(ctx, *reimbursement); err != nil {
		s.LogError(ctx, err, "Failed to update reimbursement", slog.String("reimbursement_id", reimbursementID))
		return nil, err
	}

	if notifyErr := s.notifier.Notify(ctx, agencyID, reimbursement.UserID, domain.NotifyReimbursementDecision,
		fmt.Sprintf("Reimbursement %s", reimbursement.Status),
		fmt.Sprintf("Your %s claim of %s %s was %s",
			reimbursement.Category, reimbursement.Amount, reimbursement.CurrencyCode, reimbursement.Status),
		reimbursementID); notifyErr != nil {
		s.LogError(ctx, notifyErr, "Failed to notify about reimbursement decision", slog.String("reimbursement_id", reimbursementID))
	}

	s.LogInfo(ctx, "Reimbursement decided",
		slog.String("reimbursement_id", reimbursementID),
		slog.String("status", string(reimbursement.Status)))
	return reimbursement, nil
}

// MarkReimbursementPaid records the payout of an approved claim.
func (s *reimbursementService) MarkReimbursementPaid(ctx context.Context, agencyID string, reimbursementID string, actingUserID string) (*domain.Reimbursement, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, agencyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	reimbursement, err := s.findAgencyReimbursement(ctx, agencyID, reimbursementID)
	if err != nil {
		return nil, err
	}
	if reimbursement.Status != domain.ReimbursementApproved {
		return nil, fmt.Errorf("only approved reimbursements can be paid, claim is %s: %w", reimbursement.Status, apperrors.ErrValidation)
	}

	now := time.Now()
	reimbursement.Status = domain.ReimbursementPaid
	reimbursement.PaidAt = &now
	reimbursement.Touch(actingUserID, now)

	if err := s.reimbursementRepo.UpdateReimbursement(ctx, *reimbursement); err != nil {
		s.LogError(ctx, err, "Failed to mark reimbursement paid", slog.String("reimbursement_id", reimbursementID))
		return nil, err
	}
	s.LogInfo(ctx, "Reimbursement paid", slog.String("reimbursement_id", reimbursementID))
	return reimbursement, nil
}
