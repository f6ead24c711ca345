package core

import "sync"

// System internal event codes. Applications should use codes beyond 255.
type SystemEventCode int

const (
	// Resized/resolution changed by the host.
	/* Context usage:
	 * u32 width = data.U32[0];
	 * u32 height = data.U32[1];
	 */
	EventCodeResized SystemEventCode = 0x01

	// A window message reached the overlay.
	/* Context usage:
	 * u32 msg = data.U32[0];
	 * uptr hwnd = data.UPtr[0];
	 * uptr wparam = data.UPtr[1];
	 * uptr lparam = data.UPtr[2];
	 */
	EventCodeWindowMessage SystemEventCode = 0x02

	// The overlay was detached from the host.
	EventCodeDetached SystemEventCode = 0x03

	MaxEventCode SystemEventCode = 0xFF
)

type EventContext struct {
	Data struct {
		U32  [4]uint32
		UPtr [4]uintptr
	}
}

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listener interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches events to listeners in registration order.
type EventBus struct {
	mu         sync.RWMutex
	registered map[SystemEventCode][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return false.
 */
func (eb *EventBus) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for _, e := range eb.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	eb.registered[code] = append(eb.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister removes the listener registered for code. Returns false if none was found.
func (eb *EventBus) Unregister(code SystemEventCode, listener interface{}) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	events := eb.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eb.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 */
func (eb *EventBus) Fire(code SystemEventCode, sender interface{}, context EventContext) bool {
	eb.mu.RLock()
	events := append([]*registeredEvent(nil), eb.registered[code]...)
	eb.mu.RUnlock()

	for _, e := range events {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
