package executor

// Spawner is a cheap, copyable handle that submits tasks to a Queue.
type Spawner struct {
	queue *Queue
	guard bool
}

// Spawn appends t at the back of the queue.
func (s Spawner) Spawn(t *Task) {
	if !s.claim(t) {
		return
	}
	s.queue.PushBack(t)
}

// SpawnBlocking inserts t at the front of the queue so it is the next task
// the worker dequeues.
func (s Spawner) SpawnBlocking(t *Task) {
	if !s.claim(t) {
		return
	}
	s.queue.PushFront(t)
}

// claim sets the task's queued bit when the guard is on. Without the guard a
// task may sit in the queue more than once.
func (s Spawner) claim(t *Task) bool {
	if !s.guard {
		return true
	}
	return t.queued.CompareAndSwap(false, true)
}
