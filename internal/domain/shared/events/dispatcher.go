package events

import (
	"fmt"
	"sync"

	"campusvoice/internal/shared/goroutine"
	"campusvoice/internal/shared/logger"
)

// InMemoryEventDispatcher delivers events on a single background goroutine,
// in publication order.
type InMemoryEventDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
	running  bool
	eventCh  chan DomainEvent
	stopCh   chan struct{}
	wg       sync.WaitGroup
	logger   logger.Interface
}

func NewInMemoryEventDispatcher(bufferSize int, log logger.Interface) *InMemoryEventDispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &InMemoryEventDispatcher{
		handlers: make(map[string][]EventHandler),
		eventCh:  make(chan DomainEvent, bufferSize),
		stopCh:   make(chan struct{}),
		logger:   log,
	}
}

func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return fmt.Errorf("event dispatcher is not running")
	}

	select {
	case d.eventCh <- event:
		return nil
	default:
		return fmt.Errorf("event channel is full, dropped %s", event.GetEventType())
	}
}

func (d *InMemoryEventDispatcher) PublishAll(events []DomainEvent) error {
	for _, event := range events {
		if err := d.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

func (d *InMemoryEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	d.mu.Unlock()
	return nil
}

func (d *InMemoryEventDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return fmt.Errorf("event dispatcher is already running")
	}
	d.running = true

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.loop()
	}()
	return nil
}

// Stop delivers every queued event and then returns.
func (d *InMemoryEventDispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("event dispatcher is not running")
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
	return nil
}

func (d *InMemoryEventDispatcher) loop() {
	for {
		select {
		case event := <-d.eventCh:
			d.deliver(event)
		case <-d.stopCh:
			for {
				select {
				case event := <-d.eventCh:
					d.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (d *InMemoryEventDispatcher) deliver(event DomainEvent) {
	d.mu.RLock()
	handlers := append([]EventHandler(nil), d.handlers[event.GetEventType()]...)
	handlers = append(handlers, d.handlers[AllEvents]...)
	d.mu.RUnlock()

	for _, h := range handlers {
		err := goroutine.Protect(d.logger, "event-handler", func() error {
			return h.Handle(event)
		})
		if err != nil {
			d.logger.Errorw("event handler failed",
				"event_type", event.GetEventType(),
				"aggregate_id", event.GetAggregateID(),
				"error", err,
			)
		}
	}
}
