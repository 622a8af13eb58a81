package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/colts18seth/jobly/internal/auth"
	"github.com/colts18seth/jobly/internal/events"
	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

// publisher emits change events after a statement succeeds. Publication
// failures are logged and never reach the caller.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return publisher{dispatcher: dispatcher, logger: logger}
}

func (p publisher) publish(ctx context.Context, eventType events.EventType, resource, key string, payload any) {
	if p.dispatcher == nil {
		return
	}
	event := events.NewEvent(eventType, resource, key, actorFrom(ctx), payload)
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_id", event.ID),
			zap.String("type", string(eventType)),
			zap.Error(err))
	}
}

func actorFrom(ctx context.Context) string {
	if cred, ok := auth.CredentialFrom(ctx); ok {
		return cred.Subject
	}
	return ""
}

// resolveMissing turns a zero-row result into a NotFound naming the key that
// was looked up. Other errors pass through untouched.
func resolveMissing(err error, resource string, details map[string]any) error {
	if err != nil && apperrors.IsNotFound(err) {
		return apperrors.NewNotFound(resource, details)
	}
	return err
}

// resolveDuplicate rewrites a unique-constraint failure with a message that
// names the resource.
func resolveDuplicate(err error, message string, details map[string]any) error {
	if err == nil {
		return nil
	}
	if de := apperrors.ToDomainError(err); de.Code == apperrors.CodeConflict {
		if details == nil {
			details = map[string]any{}
		}
		if c, ok := de.Details["constraint"]; ok {
			details["constraint"] = c
		}
		return apperrors.NewConflict(message, details)
	}
	return err
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
