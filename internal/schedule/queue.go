// internal/schedule/queue.go
package schedule

import (
	"errors"
	"sync"
)

// Queue — очередь кадровых колбэков, аналог requestAnimationFrame.
// Хост вызывает Step один раз на обновление экрана; колбэки, запрошенные
// во время Step, выполняются уже на следующем шаге.
type Queue struct {
	mu        sync.Mutex
	nextID    uint64
	order     []uint64
	callbacks map[uint64]func() error
	frames    uint64
}

// NewQueue создаёт пустую очередь
func NewQueue() *Queue {
	return &Queue{
		callbacks: make(map[uint64]func() error),
	}
}

// RequestFrame ставит колбэк на следующий шаг и возвращает его идентификатор.
// Идентификатор никогда не равен 0.
func (q *Queue) RequestFrame(fn func() error) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	id := q.nextID
	q.callbacks[id] = fn
	q.order = append(q.order, id)
	return id
}

// CancelFrame снимает колбэк, если он ещё не выполнен
func (q *Queue) CancelFrame(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.callbacks, id)
}

// Pending возвращает число ожидающих колбэков
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.callbacks)
}

// Frames возвращает число выполненных шагов
func (q *Queue) Frames() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.frames
}

// Step выполняет все колбэки, ожидавшие на момент вызова, в порядке запроса.
// Ошибки колбэков не перехватываются, а объединяются и возвращаются хосту.
func (q *Queue) Step() error {
	q.mu.Lock()
	order := q.order
	q.order = nil
	due := make([]func() error, 0, len(order))
	for _, id := range order {
		if fn, ok := q.callbacks[id]; ok {
			due = append(due, fn)
			delete(q.callbacks, id)
		}
	}
	q.frames++
	q.mu.Unlock()

	var errs []error
	for _, fn := range due {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
