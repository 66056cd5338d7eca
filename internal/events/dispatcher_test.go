package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventUserDeleted, func(_ context.Context, e Event) error {
		got = append(got, "deleted")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserRegistered, SubjectID: "u1"}))
	assert.Equal(t, []string{"first:u1", "second:u1"}, got)
}

func TestInMemoryDispatcher_ContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	called := false
	d.Subscribe(EventNotificationCreated, func(context.Context, Event) error { return boom })
	d.Subscribe(EventNotificationCreated, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventNotificationCreated})
	require.ErrorIs(t, err, boom)
	assert.True(t, called)
}

func TestInMemoryDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventUserLoggedIn}))
}
