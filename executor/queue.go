package executor

import (
	"container/list"
	"sync"
)

// Queue is a mutex-guarded double-ended sequence of ready tasks.
// The lock is held only for the duration of a single mutation.
type Queue struct {
	mu    sync.Mutex
	tasks list.List
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) PushBack(t *Task) {
	q.mu.Lock()
	q.tasks.PushBack(t)
	q.mu.Unlock()
}

func (q *Queue) PushFront(t *Task) {
	q.mu.Lock()
	q.tasks.PushFront(t)
	q.mu.Unlock()
}

// PopFront removes and returns the first task, if any.
func (q *Queue) PopFront() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e := q.tasks.Front()
	if e == nil {
		return nil, false
	}
	return q.tasks.Remove(e).(*Task), true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tasks.Len()
}
