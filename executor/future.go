package executor

// Status is the outcome of a single poll.
type Status int

const (
	Suspended Status = iota
	Ready
)

func (s Status) String() string {
	switch s {
	case Suspended:
		return "suspended"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Waker requests that a suspended computation be polled again.
// Implementations are safe to call from any goroutine.
type Waker interface {
	Wake()
}

// Future is a computation driven forward one step per Poll. It may be polled
// from a goroutine other than the one that created it. Once polled, the
// executor keeps the same Future value for the rest of the task's lifetime.
type Future interface {
	Poll(w Waker) Status
}

// FutureFunc adapts a plain function to the Future interface.
type FutureFunc func(w Waker) Status

func (f FutureFunc) Poll(w Waker) Status { return f(w) }
