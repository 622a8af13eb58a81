package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/colts18seth/jobly/internal/events"
)

const defaultAuditBuffer = 256

// AuditWorker writes every resource change event to the audit log. Events are
// queued by the dispatcher and drained on a separate goroutine so request
// handling never waits on the log sink.
type AuditWorker struct {
	logger *zap.Logger
	queue  chan events.Event
	wg     sync.WaitGroup
}

// NewAuditWorker subscribes the worker to every event type. Call Start to
// begin draining.
func NewAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, buffer int) *AuditWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = defaultAuditBuffer
	}
	w := &AuditWorker{
		logger: logger.Named("audit"),
		queue:  make(chan events.Event, buffer),
	}
	if dispatcher != nil {
		for _, t := range events.AllEventTypes {
			dispatcher.Subscribe(t, w.enqueue)
		}
	}
	return w
}

// enqueue never blocks. A full queue drops the event with a warning.
func (w *AuditWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("audit queue full, dropping event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)))
	}
	return nil
}

// Start drains the queue until ctx is cancelled, then flushes what is left.
func (w *AuditWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case event := <-w.queue:
				w.write(event)
			case <-ctx.Done():
				w.Flush()
				return
			}
		}
	}()
}

// Wait blocks until the drain goroutine has exited.
func (w *AuditWorker) Wait() {
	w.wg.Wait()
}

// Flush writes every queued event on the calling goroutine.
func (w *AuditWorker) Flush() {
	for {
		select {
		case event := <-w.queue:
			w.write(event)
		default:
			return
		}
	}
}

func (w *AuditWorker) write(event events.Event) {
	w.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("resource", event.Resource),
		zap.String("key", event.Key),
		zap.String("actor", event.Actor),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
}
