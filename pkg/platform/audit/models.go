package audit

import (
	"context"
	"time"

	id "minnetherapy/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// Sinks use it for routing and retention.
type EventCategory string

const (
	// CategorySecurity covers events relevant to security monitoring:
	// failed logins, rate-limit rejections.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for operational
	// visibility: logins, profile and availability edits.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID
	Subject   string
	Action    string
	Reason    string
	RequestID string
}

// Store is the append-only sink behind a Publisher.
type Store interface {
	Append(ctx context.Context, event Event) error
}

type AuditEvent string

const (
	EventLoginSucceeded AuditEvent = "login_succeeded"
	EventAuthFailed     AuditEvent = "auth_failed"

	EventProviderProfileUpdated      AuditEvent = "provider_profile_updated"
	EventProviderAvailabilityUpdated AuditEvent = "provider_availability_updated"

	EventRateLimitExceeded AuditEvent = "rate_limit_exceeded"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAuthFailed:        CategorySecurity,
	EventRateLimitExceeded: CategorySecurity,

	EventLoginSucceeded:              CategoryOperations,
	EventProviderProfileUpdated:      CategoryOperations,
	EventProviderAvailabilityUpdated: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
