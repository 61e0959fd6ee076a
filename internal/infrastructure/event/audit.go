package event

import (
	"context"

	"github.com/gharzo/engine/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler records every domain event to the structured log so
// operational transitions (complaint lifecycle, room switches, billing)
// leave an audit trail. Notification delivery is a separate consumer.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// Handle implements shared.EventHandler
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes implements shared.EventHandler; empty means all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}
