// internal/event/event.go
package event

import "sync"

// EventType — тип события
type EventType string

// Event — структура события
type Event struct {
	Type EventType
	Data any // Данные события, если нужны
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher — диспетчер событий. Подписка возможна из любой горутины,
// слушатели вызываются в горутине, которая отправила событие.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]Listener
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe — подписка на одно или несколько событий
func (d *Dispatcher) Subscribe(listener Listener, types ...EventType) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range types {
		d.listeners[t] = append(d.listeners[t], listener)
	}
}

// Unsubscribe — отписка слушателя от всех событий
func (d *Dispatcher) Unsubscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for t, listeners := range d.listeners {
		kept := listeners[:0]
		for _, l := range listeners {
			if l != listener {
				kept = append(kept, l)
			}
		}
		d.listeners[t] = kept
	}
}

// Dispatch — отправка события всем подписчикам
func (d *Dispatcher) Dispatch(event Event) {
	d.mu.RLock()
	listeners := append([]Listener(nil), d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, listener := range listeners {
		listener.OnEvent(event)
	}
}
