package lazy

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	// ErrInitializationPoisoned is reported by every caller once a factory panicked.
	ErrInitializationPoisoned = errors.New("lazy: initialization poisoned")
	// ErrReleased is reported after the stored value was torn down.
	ErrReleased = errors.New("lazy: value released")
)

const (
	stateEmpty uint32 = iota
	stateReady
	statePoisoned
	stateReleased
)

// Value holds a T produced at most once, on first use.
type Value[T any] struct {
	state atomic.Uint32
	mu    sync.Mutex
	val   T
	err   error
}

// GetOrInit returns the stored value, running factory first if no caller has
// done so yet. Concurrent callers block until the winning call finishes and
// then observe the same value.
func (v *Value[T]) GetOrInit(factory func() T) (*T, error) {
	if p, ok, err := v.load(); ok {
		return p, err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if p, ok, err := v.load(); ok {
		return p, err
	}
	if err := v.init(factory); err != nil {
		return nil, err
	}
	return &v.val, nil
}

// MustGetOrInit is like GetOrInit but panics on error.
func (v *Value[T]) MustGetOrInit(factory func() T) *T {
	p, err := v.GetOrInit(factory)
	if err != nil {
		panic(err)
	}
	return p
}

// Initialized reports whether a value is currently stored.
func (v *Value[T]) Initialized() bool {
	return v.state.Load() == stateReady
}

// Release tears the stored value down. fn, if non-nil, receives the value.
// It runs at most once and only when a value was actually initialized;
// the return value reports whether it ran.
//
// The storage is zeroed in place, so pointers obtained from GetOrInit must
// not be used after Release.
func (v *Value[T]) Release(fn func(T)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch v.state.Load() {
	case stateReady:
	case stateEmpty:
		v.err = ErrReleased
		v.state.Store(stateReleased)
		return false
	default:
		return false
	}
	val := v.val
	var zero T
	v.val = zero
	v.err = ErrReleased
	v.state.Store(stateReleased)
	if fn != nil {
		fn(val)
	}
	return true
}

func (v *Value[T]) load() (*T, bool, error) {
	switch v.state.Load() {
	case stateReady:
		return &v.val, true, nil
	case statePoisoned, stateReleased:
		return nil, true, v.err
	}
	return nil, false, nil
}

// init must be called with mu held.
func (v *Value[T]) init(factory func() T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrInitializationPoisoned, r)
			v.err = err
			v.state.Store(statePoisoned)
		}
	}()
	v.val = factory()
	v.state.Store(stateReady)
	return nil
}
