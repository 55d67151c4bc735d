package portal

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrBusy is returned when an action is triggered while its previous request is outstanding.
	ErrBusy = errors.New("request already in flight")
	// ErrClosed is returned once the view has been closed; late results are dropped.
	ErrClosed = errors.New("view closed")
	// ErrNoSession routes the shopper back to login.
	ErrNoSession = errors.New("no session: log in first")
)

// inflight allows one outstanding request per view and cancels it on Close.
type inflight struct {
	mu     sync.Mutex
	busy   bool
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
}

func newInflight() *inflight {
	ctx, cancel := context.WithCancel(context.Background())
	return &inflight{ctx: ctx, cancel: cancel}
}

// begin reserves the slot. The returned context ends with parent or Close;
// done must be called once the request has returned.
func (f *inflight) begin(parent context.Context) (context.Context, func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, nil, ErrClosed
	}
	if f.busy {
		return nil, nil, ErrBusy
	}
	f.busy = true
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(f.ctx, cancel)
	done := func() {
		stop()
		cancel()
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}
	return ctx, done, nil
}

// commit applies a result unless the view was closed while the request ran.
func (f *inflight) commit(apply func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	apply()
	return nil
}

// Busy reports whether a request is outstanding.
func (f *inflight) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Close cancels the outstanding request and rejects new ones.
func (f *inflight) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.cancel()
}
