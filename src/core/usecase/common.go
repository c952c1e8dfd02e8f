package usecase

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"candlepin/src/core/domain"
	"candlepin/src/core/ports"
)

var (
	newID = uuid.NewString
	now   = func() time.Time { return time.Now().UTC() }
)

var keyPattern = regexp.MustCompile(`^[\w-]+$`)

func validKey(field, v string) error {
	if v == "" {
		return domain.NewValidationError(field, "must not be empty")
	}
	if !keyPattern.MatchString(v) {
		return domain.NewValidationError(field, "may only contain letters, digits, '_' and '-'")
	}
	return nil
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	Type       string
	Name       string
	SuperAdmin bool
}

// System is used for work the server performs on its own behalf.
var System = &Principal{Type: "system", Name: "System"}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller stored in ctx, or System.
func PrincipalFrom(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalKey{}).(*Principal); ok && p != nil {
		return p
	}
	return System
}

// emitter records audit events. Publishing failures are logged and never
// fail the operation that caused them.
type emitter struct {
	events ports.EventPublisher
	log    *slog.Logger
}

type eventInfo struct {
	typ          domain.EventType
	target       domain.EventTarget
	targetName   string
	entityID     string
	ownerID      string
	consumerUUID string
	data         string
}

func (e emitter) emit(ctx context.Context, info eventInfo) {
	if e.events == nil {
		return
	}
	p := PrincipalFrom(ctx)
	ev := &domain.Event{
		ID:            newID(),
		Type:          info.typ,
		Target:        info.target,
		TargetName:    info.targetName,
		PrincipalType: p.Type,
		PrincipalName: p.Name,
		Timestamp:     now(),
		EntityID:      info.entityID,
		OwnerID:       info.ownerID,
		ConsumerUUID:  info.consumerUUID,
		EventData:     info.data,
	}
	if err := e.events.Publish(ctx, ev); err != nil {
		e.log.Warn("failed to publish event",
			"target", info.target,
			"type", info.typ,
			"entity_id", info.entityID,
			"error", err,
		)
	}
}
