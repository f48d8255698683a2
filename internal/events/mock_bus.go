package events

import (
	"fmt"
	"sync"
)

// MockEventBus provides an in-memory implementation of EventBus for testing
type MockEventBus struct {
	subscriptions   map[string][]interface{}
	publishedEvents map[string][]interface{}
	mutex           sync.RWMutex
	errors          []error
	synchronousMode bool
}

// NewMockEventBus creates a new MockEventBus instance
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subscriptions:   make(map[string][]interface{}),
		publishedEvents: make(map[string][]interface{}),
	}
}

// Subscribe implements the EventBus interface
func (m *MockEventBus) Subscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions[topic] = append(m.subscriptions[topic], handler)
	return nil
}

// Unsubscribe implements the EventBus interface
func (m *MockEventBus) Unsubscribe(topic string, handler interface{}) error {
	// Not needed by the current tests
	return nil
}

// Publish implements the EventBus interface
func (m *MockEventBus) Publish(topic string, event interface{}) error {
	m.mutex.Lock()
	m.publishedEvents[topic] = append(m.publishedEvents[topic], event)

	handlersToInvoke := make([]interface{}, len(m.subscriptions[topic]))
	copy(handlersToInvoke, m.subscriptions[topic])
	m.mutex.Unlock()

	// Invoke handlers outside of the mutex to avoid deadlocks
	for _, handler := range handlersToInvoke {
		if m.synchronousMode {
			m.invokeHandler(handler, event)
		} else {
			go m.invokeHandler(handler, event)
		}
	}

	return nil
}

// Close implements the EventBus interface
func (m *MockEventBus) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions = make(map[string][]interface{})
	m.publishedEvents = make(map[string][]interface{})
	return nil
}

// SetSynchronousMode enables or disables synchronous event handling
func (m *MockEventBus) SetSynchronousMode(enabled bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.synchronousMode = enabled
}

// GetPublishedEvents returns published events for a topic
func (m *MockEventBus) GetPublishedEvents(topic string) []interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	events := m.publishedEvents[topic]
	result := make([]interface{}, len(events))
	copy(result, events)
	return result
}

// GetSubscriberCount returns the number of subscribers for a topic
func (m *MockEventBus) GetSubscriberCount(topic string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.subscriptions[topic])
}

// HandlerErrors returns errors captured from panicking or mismatched handlers.
func (m *MockEventBus) HandlerErrors() []error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make([]error, len(m.errors))
	copy(result, m.errors)
	return result
}

// invokeHandler safely invokes an event handler
func (m *MockEventBus) invokeHandler(handler interface{}, event interface{}) {
	defer func() {
		if r := recover(); r != nil {
			m.mutex.Lock()
			m.errors = append(m.errors, fmt.Errorf("handler panic: %v", r))
			m.mutex.Unlock()
		}
	}()

	handlerInvoked := false
	switch h := handler.(type) {
	case func(ReminderCreated):
		if e, ok := event.(ReminderCreated); ok {
			h(e)
			handlerInvoked = true
		}
	case func(PremiumActivated):
		if e, ok := event.(PremiumActivated); ok {
			h(e)
			handlerInvoked = true
		}
	case func(interface{}):
		h(event)
		handlerInvoked = true
	}

	if !handlerInvoked {
		m.mutex.Lock()
		m.errors = append(m.errors, fmt.Errorf("type mismatch: handler type does not match event type %T", event))
		m.mutex.Unlock()
	}
}
