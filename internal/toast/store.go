package toast

import "sync"

// Store owns one queue per session id. Queues are created lazily on
// first use and dropped when the session is cleared at logout.
type Store struct {
	mu     sync.Mutex
	queues map[string]*Queue
}

func NewStore() *Store {
	return &Store{queues: map[string]*Queue{}}
}

// Queue returns the session's queue, creating it if needed. The empty
// session id maps to a shared queue for unauthenticated visitors.
func (s *Store) Queue(sid string) *Queue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q, ok := s.queues[sid]; ok {
		return q
	}

	q := NewQueue()
	s.queues[sid] = q
	return q
}

// Drop discards a session's queue and cancels its pending timers.
func (s *Store) Drop(sid string) {
	s.mu.Lock()
	q, ok := s.queues[sid]
	delete(s.queues, sid)
	s.mu.Unlock()

	if ok {
		q.stop()
	}
}
