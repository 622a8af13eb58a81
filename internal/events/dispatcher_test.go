package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []Event
	d.Subscribe(EventCompanyCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	ev := NewEvent(EventCompanyCreated, "company", "acme", "admin", nil)
	require.NoError(t, d.Publish(context.Background(), ev))
	require.NoError(t, d.Publish(context.Background(), NewEvent(EventJobCreated, "job", "1", "", nil)))

	require.Len(t, got, 1)
	assert.Equal(t, "acme", got[0].Key)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestDispatcher_RunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	calls := 0
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error { calls++; return boom })
	d.Subscribe(EventUserDeleted, func(context.Context, Event) error { calls++; return nil })

	err := d.Publish(context.Background(), NewEvent(EventUserDeleted, "user", "u1", "u1", nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
