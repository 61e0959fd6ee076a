package complaint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gharzo/engine/internal/domain/complaint"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockTTL = 10 * time.Second

// Config carries the resolution challenge policy.
type Config struct {
	CodeTTL     time.Duration
	MaxAttempts int
}

// DefaultConfig returns the stock challenge policy.
func DefaultConfig() Config {
	return Config{
		CodeTTL:     15 * time.Minute,
		MaxAttempts: 5,
	}
}

// Service handles the complaint lifecycle from filing to OTP-verified resolution
type Service struct {
	complaints complaint.Repository
	locker     shared.Locker
	eventBus   shared.EventPublisher
	logger     *zap.Logger
	cfg        Config
}

// NewService creates a new complaint Service
func NewService(
	complaints complaint.Repository,
	locker shared.Locker,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
	cfg Config,
) *Service {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = DefaultConfig().CodeTTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Service{
		complaints: complaints,
		locker:     locker,
		eventBus:   eventBus,
		logger:     logger,
		cfg:        cfg,
	}
}

// FileComplaintRequest represents a tenant filing a new complaint
type FileComplaintRequest struct {
	TenantID    uuid.UUID
	PropertyID  uuid.UUID
	RoomID      string
	BedID       string
	Subject     string
	Description string
	Priority    complaint.Priority
}

// File registers a new complaint and assigns it a sequential number
func (s *Service) File(ctx context.Context, req FileComplaintRequest) (*complaint.Complaint, error) {
	number, err := s.complaints.NextNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate complaint number: %w", err)
	}

	c, err := complaint.NewComplaint(number, req.TenantID, req.PropertyID, req.RoomID, req.BedID,
		req.Subject, req.Description, req.Priority)
	if err != nil {
		return nil, err
	}

	if err := s.complaints.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save complaint: %w", err)
	}

	s.publishEvents(ctx, c)
	s.logger.Info("complaint filed",
		zap.String("complaint_id", c.ID.String()),
		zap.String("number", c.Number),
		zap.String("priority", string(c.Priority)))
	return c, nil
}

// ListAssigned returns the complaints matching the filter, newest first
func (s *Service) ListAssigned(ctx context.Context, filter complaint.Filter) ([]complaint.Complaint, error) {
	return s.complaints.FindAll(ctx, filter)
}

// Get returns a single complaint by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	return s.complaints.FindByID(ctx, id)
}

// Accept moves a pending complaint to accepted under the given actor
func (s *Service) Accept(ctx context.Context, complaintID, actor uuid.UUID) (*complaint.Complaint, error) {
	var result *complaint.Complaint
	err := s.withComplaint(ctx, complaintID, func(c *complaint.Complaint) error {
		if err := c.Accept(actor); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("complaint accepted",
		zap.String("complaint_id", complaintID.String()),
		zap.String("actor", actor.String()))
	return result, nil
}

// Reject moves a pending complaint to rejected with a mandatory reason
func (s *Service) Reject(ctx context.Context, complaintID, actor uuid.UUID, reason string) (*complaint.Complaint, error) {
	var result *complaint.Complaint
	err := s.withComplaint(ctx, complaintID, func(c *complaint.Complaint) error {
		if err := c.Reject(actor, reason); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("complaint rejected",
		zap.String("complaint_id", complaintID.String()),
		zap.String("actor", actor.String()))
	return result, nil
}

// ChallengeResult reports the challenge metadata without exposing the code.
// The code itself travels out of band to the tenant.
type ChallengeResult struct {
	ComplaintID uuid.UUID
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// IssueChallenge generates a fresh resolution code for an accepted complaint.
// Reissuing replaces any outstanding code and resets the attempt counter.
func (s *Service) IssueChallenge(ctx context.Context, complaintID uuid.UUID) (*ChallengeResult, error) {
	code, err := complaint.GenerateResolutionCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate resolution code: %w", err)
	}

	var result *ChallengeResult
	err = s.withComplaint(ctx, complaintID, func(c *complaint.Complaint) error {
		if err := c.IssueResolutionCode(code, time.Now(), s.cfg.CodeTTL); err != nil {
			return err
		}
		result = &ChallengeResult{
			ComplaintID: c.ID,
			IssuedAt:    c.OTP.IssuedAt,
			ExpiresAt:   c.OTP.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("resolution challenge issued",
		zap.String("complaint_id", complaintID.String()),
		zap.Time("expires_at", result.ExpiresAt))
	return result, nil
}

// VerifyAndResolve checks the submitted code against the outstanding challenge.
// A match resolves the complaint; a mismatch burns one attempt. Failed attempts
// are persisted so the lockout survives restarts.
func (s *Service) VerifyAndResolve(ctx context.Context, complaintID uuid.UUID, submitted string) (*complaint.Complaint, error) {
	release, err := s.lock(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	verifyErr := c.VerifyAndResolve(submitted, time.Now(), s.cfg.MaxAttempts)
	if verifyErr != nil {
		// The attempt counter advanced on a mismatch; flush it before reporting
		var domainErr *shared.DomainError
		if errors.As(verifyErr, &domainErr) && domainErr.Code == "INVALID_CODE" {
			if saveErr := s.complaints.SaveWithLock(ctx, c); saveErr != nil {
				return nil, saveErr
			}
		}
		return nil, verifyErr
	}

	if err := s.complaints.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)
	s.logger.Info("complaint resolved",
		zap.String("complaint_id", complaintID.String()),
		zap.String("number", c.Number))
	return c, nil
}

// withComplaint runs a mutation against a complaint under its per-aggregate
// lock and persists the result with an optimistic version check.
func (s *Service) withComplaint(ctx context.Context, complaintID uuid.UUID, fn func(*complaint.Complaint) error) error {
	release, err := s.lock(ctx, complaintID)
	if err != nil {
		return err
	}
	defer release()

	c, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return err
	}

	if err := fn(c); err != nil {
		return err
	}

	if err := s.complaints.SaveWithLock(ctx, c); err != nil {
		return err
	}

	s.publishEvents(ctx, c)
	return nil
}

func (s *Service) lock(ctx context.Context, complaintID uuid.UUID) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	return s.locker.Acquire(ctx, "complaint:"+complaintID.String(), lockTTL)
}

// publishEvents publishes domain events from the aggregate
func (s *Service) publishEvents(ctx context.Context, c *complaint.Complaint) {
	if s.eventBus == nil {
		return
	}

	for _, event := range c.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	c.ClearDomainEvents()
}
