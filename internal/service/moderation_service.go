package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bragboard/internal/domain"
	"github.com/spec-kit/bragboard/internal/events"
	"github.com/spec-kit/bragboard/internal/repository"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

// ModerationService drives the report workflow:
//
//	clean -> reported -> dismissed
//	any state -> deleted
//
// Any authenticated user can report; only admins resolve. The two-party split
// prevents unilateral takedown and self-exoneration.
type ModerationService struct {
	shoutouts  repository.ShoutoutRepository
	audit      repository.AuditLogRepository
	dispatcher events.Dispatcher
}

// NewModerationService constructs the service.
func NewModerationService(shoutouts repository.ShoutoutRepository, audit repository.AuditLogRepository, dispatcher events.Dispatcher) *ModerationService {
	return &ModerationService{shoutouts: shoutouts, audit: audit, dispatcher: dispatcher}
}

// Report flags a shoutout for moderation. Reporting an already-reported or
// already-dismissed post is a no-op returning the current status, so client
// retries never error. Returns NotFound when the shoutout does not exist.
func (s *ModerationService) Report(ctx context.Context, shoutoutID, reporterID string) (domain.ModerationStatus, error) {
	applied, err := s.shoutouts.UpdateModerationStatus(ctx, shoutoutID,
		domain.ModerationStatusClean, domain.ModerationStatusReported)
	if err != nil {
		return "", err
	}
	if applied {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:       events.EventShoutoutReported,
			ShoutoutID: shoutoutID,
			Actor:      events.Actor{UserID: reporterID},
			Payload: events.ModerationPayload{
				OldStatus: domain.ModerationStatusClean,
				NewStatus: domain.ModerationStatusReported,
			},
		})
		return domain.ModerationStatusReported, nil
	}

	shoutout, err := s.shoutouts.GetByID(ctx, shoutoutID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.NewNotFound("shoutout", map[string]any{"id": shoutoutID})
		}
		return "", err
	}
	return shoutout.ModerationStatus, nil
}

// Dismiss resolves a report as non-actionable. Only valid from the reported
// state; the post stays visible but carries no further moderation obligation.
func (s *ModerationService) Dismiss(ctx context.Context, adminID, shoutoutID string) (*domain.Shoutout, error) {
	applied, err := s.shoutouts.UpdateModerationStatus(ctx, shoutoutID,
		domain.ModerationStatusReported, domain.ModerationStatusDismissed)
	if err != nil {
		return nil, err
	}
	if !applied {
		shoutout, err := s.shoutouts.GetByID(ctx, shoutoutID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("shoutout", map[string]any{"id": shoutoutID})
			}
			return nil, err
		}
		return nil, apperrors.NewInvalidTransition("only reported shoutouts can be dismissed",
			map[string]any{"status": shoutout.ModerationStatus})
	}

	s.recordAudit(ctx, adminID, domain.AuditActionReportDismissed, "shoutout", shoutoutID)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventReportDismissed,
		ShoutoutID: shoutoutID,
		Actor:      events.Actor{UserID: adminID, Admin: true},
		Payload: events.ModerationPayload{
			OldStatus: domain.ModerationStatusReported,
			NewStatus: domain.ModerationStatusDismissed,
		},
	})
	return s.shoutouts.GetByID(ctx, shoutoutID)
}

// Delete removes a shoutout entirely, valid from any state. Its comments and
// reactions go with it.
func (s *ModerationService) Delete(ctx context.Context, adminID, shoutoutID string) error {
	shoutout, err := s.shoutouts.GetByID(ctx, shoutoutID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("shoutout", map[string]any{"id": shoutoutID})
		}
		return err
	}

	if err := s.shoutouts.Delete(ctx, shoutoutID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("shoutout", map[string]any{"id": shoutoutID})
		}
		return err
	}

	s.recordAudit(ctx, adminID, domain.AuditActionShoutoutDeleted, "shoutout", shoutoutID)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventShoutoutDeleted,
		ShoutoutID: shoutoutID,
		Actor:      events.Actor{UserID: adminID, Admin: true},
		Payload: events.ShoutoutDeletedPayload{
			SenderID: shoutout.SenderID,
			Status:   shoutout.ModerationStatus,
		},
	})
	return nil
}

func (s *ModerationService) recordAudit(ctx context.Context, adminID string, action domain.AuditAction, targetType, targetID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, &domain.AuditEntry{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	})
}
