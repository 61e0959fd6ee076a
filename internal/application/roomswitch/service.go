package roomswitch

import (
	"context"
	"fmt"
	"time"

	"github.com/gharzo/engine/internal/domain/roomswitch"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockTTL = 10 * time.Second

// OccupancyService is the port to the accommodation records. Reassign moves
// the tenant to the requested bed and frees the old one as a single unit.
type OccupancyService interface {
	IsBedOccupied(ctx context.Context, propertyID uuid.UUID, roomID, bedID string, excludeTenant uuid.UUID) (bool, error)
	Reassign(ctx context.Context, tenantID, propertyID uuid.UUID, roomID, bedID string) error
}

// Service handles room switch requests and their approval workflow
type Service struct {
	requests  roomswitch.Repository
	occupancy OccupancyService
	locker    shared.Locker
	eventBus  shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new room switch Service
func NewService(
	requests roomswitch.Repository,
	occupancy OccupancyService,
	locker shared.Locker,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		requests:  requests,
		occupancy: occupancy,
		locker:    locker,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// SubmitRequest represents a tenant asking to move to another bed
type SubmitRequest struct {
	TenantID        uuid.UUID
	PropertyID      uuid.UUID
	CurrentRoomID   string
	CurrentBedID    string
	RequestedRoomID string
	RequestedBedID  string
}

// Submit files a new room switch request. The target bed must be free and the
// tenant must not already have a pending request for the same bed.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*roomswitch.RoomSwitchRequest, error) {
	exists, err := s.requests.ExistsPendingForTarget(ctx, req.TenantID, req.RequestedRoomID, req.RequestedBedID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A pending request for this bed already exists")
	}

	occupied, err := s.occupancy.IsBedOccupied(ctx, req.PropertyID, req.RequestedRoomID, req.RequestedBedID, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check bed occupancy: %w", err)
	}
	if occupied {
		return nil, shared.NewDomainError("INVALID_TARGET", "Requested bed is already occupied")
	}

	r, err := roomswitch.NewRoomSwitchRequest(req.TenantID, req.PropertyID,
		req.CurrentRoomID, req.CurrentBedID, req.RequestedRoomID, req.RequestedBedID)
	if err != nil {
		return nil, err
	}

	if err := s.requests.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save room switch request: %w", err)
	}

	s.publishEvents(ctx, r)
	s.logger.Info("room switch requested",
		zap.String("request_id", r.ID.String()),
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("room_id", req.RequestedRoomID),
		zap.String("bed_id", req.RequestedBedID))
	return r, nil
}

// List returns requests matching the filter, newest first
func (s *Service) List(ctx context.Context, filter roomswitch.Filter) ([]roomswitch.RoomSwitchRequest, error) {
	return s.requests.FindAll(ctx, filter)
}

// Summary returns the per-status request counts
func (s *Service) Summary(ctx context.Context) (*roomswitch.StatusSummary, error) {
	return s.requests.Summary(ctx)
}

// Approve commits the approval and then reassigns the tenant's accommodation.
// If reassignment fails the approval is rolled back to pending so the request
// can be retried or rejected, and the caller sees REASSIGNMENT_FAILED.
func (s *Service) Approve(ctx context.Context, requestID, actor uuid.UUID) (*roomswitch.RoomSwitchRequest, error) {
	release, err := s.lock(ctx, requestID)
	if err != nil {
		return nil, err
	}
	defer release()

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := r.Approve(actor); err != nil {
		return nil, err
	}

	if err := s.requests.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}

	if err := s.occupancy.Reassign(ctx, r.TenantID, r.PropertyID, r.RequestedRoomID, r.RequestedBedID); err != nil {
		s.logger.Error("reassignment failed, reverting approval",
			zap.String("request_id", requestID.String()),
			zap.Error(err))

		r.ClearDomainEvents()
		if revertErr := r.RevertApproval(); revertErr != nil {
			return nil, shared.ErrReassignmentFailed
		}
		if revertErr := s.requests.SaveWithLock(ctx, r); revertErr != nil {
			s.logger.Error("failed to revert approval",
				zap.String("request_id", requestID.String()),
				zap.Error(revertErr))
		}
		return nil, shared.ErrReassignmentFailed
	}

	s.publishEvents(ctx, r)
	s.logger.Info("room switch approved",
		zap.String("request_id", requestID.String()),
		zap.String("actor", actor.String()))
	return r, nil
}

// Reject declines a pending request with a reason
func (s *Service) Reject(ctx context.Context, requestID, actor uuid.UUID, reason string) (*roomswitch.RoomSwitchRequest, error) {
	release, err := s.lock(ctx, requestID)
	if err != nil {
		return nil, err
	}
	defer release()

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := r.Reject(actor, reason); err != nil {
		return nil, err
	}

	if err := s.requests.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, r)
	s.logger.Info("room switch rejected",
		zap.String("request_id", requestID.String()),
		zap.String("actor", actor.String()))
	return r, nil
}

func (s *Service) lock(ctx context.Context, requestID uuid.UUID) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	return s.locker.Acquire(ctx, "roomswitch:"+requestID.String(), lockTTL)
}

// publishEvents publishes domain events from the aggregate
func (s *Service) publishEvents(ctx context.Context, r *roomswitch.RoomSwitchRequest) {
	if s.eventBus == nil {
		return
	}

	for _, event := range r.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	r.ClearDomainEvents()
}
