package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/colts18seth/jobly/internal/events"
)

func TestAuditWorker_LogsPublishedEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	w := NewAuditWorker(dispatcher, zap.New(core), 8)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventCompanyUpdated, "company", "acme", "root",
		events.UpdatedFieldsPayload{Fields: []string{"description"}})))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventJobDeleted, "job", "3", "root", nil)))

	cancel()
	w.Wait()

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "company_updated", entries[0].Message)
	assert.Equal(t, "acme", entries[0].ContextMap()["key"])
	assert.Equal(t, "job_deleted", entries[1].Message)
}

func TestAuditWorker_DropsWhenFull(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditWorker(dispatcher, zap.New(core), 1)

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventUserCreated, "user", "a", "", nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventUserCreated, "user", "b", "", nil)))

	assert.Equal(t, 1, logs.FilterMessage("audit queue full, dropping event").Len())
}
