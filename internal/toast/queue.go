package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

const (
	// DismissAfter is how long a toast stays before it starts leaving.
	DismissAfter = 4 * time.Second
	// exitDelay covers the exit transition between leaving and removal.
	exitDelay = 300 * time.Millisecond
)

type Toast struct {
	ID      string
	Type    string
	Message string
	Exiting bool
}

// Queue holds the transient status messages of one browser session, in
// insertion order. It is unbounded; nothing throttles toast spam.
type Queue struct {
	mu           sync.Mutex
	dismissAfter time.Duration
	exitDelay    time.Duration
	toasts       []*Toast
	timers       map[string]*time.Timer
}

func NewQueue() *Queue {
	return newQueueWithTiming(DismissAfter, exitDelay)
}

func newQueueWithTiming(dismissAfter time.Duration, exitDelay time.Duration) *Queue {
	return &Queue{
		dismissAfter: dismissAfter,
		exitDelay:    exitDelay,
		timers:       map[string]*time.Timer{},
	}
}

// Add appends a toast and schedules its self-dismissal. The generated id
// is unique per toast instance.
func (q *Queue) Add(kind string, message string) string {
	id := uuid.NewString()

	q.mu.Lock()
	q.toasts = append(q.toasts, &Toast{ID: id, Type: kind, Message: message})
	q.timers[id] = time.AfterFunc(q.dismissAfter, func() { q.Dismiss(id) })
	q.mu.Unlock()

	return id
}

// Dismiss starts a toast's exit transition; removal follows after the
// transition delay. Dismissing an unknown or already leaving toast is a
// no-op, so the timer and an impatient user cannot double-remove.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.toasts {
		if t.ID != id || t.Exiting {
			continue
		}

		t.Exiting = true
		if timer, ok := q.timers[id]; ok {
			timer.Stop()
		}
		q.timers[id] = time.AfterFunc(q.exitDelay, func() { q.Remove(id) })
		return
	}
}

// Remove deletes a toast immediately. Unknown ids are a no-op.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}

	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}

// List returns a snapshot in insertion order.
func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Toast, len(q.toasts))
	for i, t := range q.toasts {
		out[i] = *t
	}

	return out
}

// stop cancels every pending timer; used when the owning session ends.
func (q *Queue) stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
}
