package viewmodel

import "sync"

// Observable holds a value and notifies subscribers whenever it is set.
// It is safe for concurrent use. Writes and their notifications are
// serialized, so subscribers see values in write order and the last value
// they see is the one Get returns. Subscribers run on the setting goroutine
// and must not Set or Subscribe to the same Observable.
type Observable[T any] struct {
	notifyMu sync.Mutex // held across a write and its notifications
	mu       sync.RWMutex
	value    T
	nextID   int
	subs     map[int]func(T)
}

func NewObservable[T any](v T) *Observable[T] {
	return &Observable[T]{value: v, subs: make(map[int]func(T))}
}

func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

func (o *Observable[T]) Set(v T) {
	o.Update(func(T) T { return v })
}

// Update replaces the value with fn(current) and notifies subscribers. fn
// runs under the lock and must not call back into o.
func (o *Observable[T]) Update(fn func(T) T) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	v := fn(o.value)
	o.value = v
	subs := make([]func(T), 0, len(o.subs))
	for _, sub := range o.subs {
		subs = append(subs, sub)
	}
	o.mu.Unlock()

	for _, sub := range subs {
		sub(v)
	}
}

// Subscribe calls fn with the current value and again on every Set. The
// returned func removes the subscription.
func (o *Observable[T]) Subscribe(fn func(T)) func() {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	if o.subs == nil {
		o.subs = make(map[int]func(T))
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	v := o.value
	o.mu.Unlock()

	fn(v)
	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}
