package events

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/shared/logger"
)

func TestInMemoryEventDispatcher_DeliversInOrder(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewDiscard())

	var mu sync.Mutex
	var got []string
	require.NoError(t, d.Subscribe("complaint.escalated", HandlerFunc(func(e DomainEvent) error {
		mu.Lock()
		got = append(got, e.GetAggregateID())
		mu.Unlock()
		return nil
	})))
	require.NoError(t, d.Subscribe("complaint.escalated", HandlerFunc(func(DomainEvent) error {
		return errors.New("handler failure must not stop delivery")
	})))

	require.NoError(t, d.Start())
	now := time.Now()
	require.NoError(t, d.PublishAll([]DomainEvent{
		NewBaseEvent("c-1", "complaint.escalated", now),
		NewBaseEvent("c-2", "complaint.ignored", now),
		NewBaseEvent("c-3", "complaint.escalated", now),
	}))
	require.NoError(t, d.Stop())

	assert.Equal(t, []string{"c-1", "c-3"}, got)
}

func TestInMemoryEventDispatcher_RejectsWhenStopped(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewDiscard())

	err := d.Publish(NewBaseEvent("c-1", "complaint.submitted", time.Now()))
	assert.Error(t, err)
	assert.Error(t, d.Stop())
	assert.Error(t, d.Subscribe("", HandlerFunc(func(DomainEvent) error { return nil })))
}

func TestInMemoryEventDispatcher_WildcardAndPanics(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewDiscard())

	var mu sync.Mutex
	var types []string
	require.NoError(t, d.Subscribe("notice.published", HandlerFunc(func(DomainEvent) error {
		panic("broken handler")
	})))
	require.NoError(t, d.Subscribe(AllEvents, HandlerFunc(func(e DomainEvent) error {
		mu.Lock()
		types = append(types, e.GetEventType())
		mu.Unlock()
		return nil
	})))

	require.NoError(t, d.Start())
	now := time.Now()
	require.NoError(t, d.Publish(NewBaseEvent("1", "notice.published", now)))
	require.NoError(t, d.Publish(NewBaseEvent("c-1", "complaint.submitted", now)))
	require.NoError(t, d.Stop())

	assert.Equal(t, []string{"notice.published", "complaint.submitted"}, types)
}
