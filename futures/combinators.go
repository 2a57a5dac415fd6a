package futures

import "github.com/NetPo4ki/go-whorl/executor"

// Do runs fn on its first poll and is then Ready.
func Do(fn func()) executor.Future {
	return executor.FutureFunc(func(executor.Waker) executor.Status {
		if fn != nil {
			fn()
		}
		return executor.Ready
	})
}

// Countdown reports Suspended n times before it is Ready.
func Countdown(n int) executor.Future {
	return executor.FutureFunc(func(executor.Waker) executor.Status {
		if n <= 0 {
			return executor.Ready
		}
		n--
		return executor.Suspended
	})
}

// Seq drives each future to completion in order within the same task.
func Seq(fs ...executor.Future) executor.Future {
	return &seq{fs: fs}
}

// Then runs fn once f is Ready.
func Then(f executor.Future, fn func()) executor.Future {
	return Seq(f, Do(fn))
}

type seq struct {
	fs  []executor.Future
	cur int
}

func (s *seq) Poll(w executor.Waker) executor.Status {
	for s.cur < len(s.fs) {
		f := s.fs[s.cur]
		if f != nil && f.Poll(w) != executor.Ready {
			return executor.Suspended
		}
		s.fs[s.cur] = nil
		s.cur++
	}
	return executor.Ready
}
