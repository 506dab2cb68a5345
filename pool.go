package clickhouse

import (
	"context"
	"sync"
	stdatomic "sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/clickhouse-native/ch/internal/atomic"
)

// PoolBinding tracks whether a ClientHandle currently belongs to a Pool's
// idle set, has been checked out (attached), or was deliberately pulled
// from rotation (detached) without being returned (§5).
type PoolBinding int

const (
	BindingNone PoolBinding = iota
	BindingAttached
	BindingDetached
)

// ClientHandle is one connection: a Session plus the bookkeeping Pool
// needs to route it back to idle (or drop it) on release (§5).
type ClientHandle struct {
	session *Session
	pool    *Pool
	binding PoolBinding
	inside  atomic.Bool
}

// Session exposes the underlying driver session for issuing commands.
func (h *ClientHandle) Session() *Session { return h.session }

// Release returns the handle to its Pool. A Detached handle is closed
// instead of returned; a handle with no owning Pool is always closed.
func (h *ClientHandle) Release() {
	if h.pool == nil || h.binding == BindingDetached {
		h.session.Close()
		return
	}
	h.pool.putBack(h)
}

// Detach removes the handle from pool rotation without closing it; the
// caller now owns it exclusively and Release will close rather than pool it.
func (h *ClientHandle) Detach() {
	h.binding = BindingDetached
}

// Pool manages a bounded set of Sessions against one or more ClickHouse
// hosts: new dials round-robin across hosts, idle Sessions are reused up to
// Min, and the total live count never exceeds Max (§5).
type Pool struct {
	cfg   *PoolConfig
	hosts []string
	sem   *semaphore.Weighted

	mu     sync.Mutex
	idle   []*ClientHandle
	closed bool

	ongoing        int64
	connectionsNum uint64
}

// NewPool constructs a Pool from cfg, applying default Min/Max/timeouts
// where unset.
func NewPool(cfg *PoolConfig) *Pool {
	cfg.normalize()
	return &Pool{
		cfg:   cfg,
		hosts: cfg.Hosts,
		sem:   semaphore.NewWeighted(int64(cfg.Max)),
	}
}

// getAddr picks the next host in round-robin order (§5).
func (p *Pool) getAddr() string {
	n := uint64(len(p.hosts))
	idx := stdatomic.AddUint64(&p.connectionsNum, 1) - 1
	return p.hosts[idx%n]
}

// Get returns an idle Session if one is available, otherwise blocks on the
// Max-sized semaphore and dials a fresh one against the next round-robin
// host (§5).
func (p *Pool) Get(ctx context.Context) (*ClientHandle, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if n := len(p.idle); n > 0 {
		h := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		h.binding = BindingAttached
		h.inside.Set(false)
		stdatomic.AddInt64(&p.ongoing, 1)
		if err := h.session.checkConnection(ctx); err != nil {
			stdatomic.AddInt64(&p.ongoing, -1)
			h.session.Close()
			p.sem.Release(1)
			return nil, err
		}
		return h, nil
	}
	p.mu.Unlock()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	addr := p.getAddr()
	session, err := dialSession(ctx, p.cfg, addr)
	if err != nil {
		p.sem.Release(1)
		return nil, err
	}
	h := &ClientHandle{session: session, pool: p, binding: BindingAttached}
	stdatomic.AddInt64(&p.ongoing, 1)
	return h, nil
}

// putBack returns an attached handle to idle (up to Min capacity) and wakes
// one waiter; beyond Min it is closed and its semaphore slot freed.
func (p *Pool) putBack(h *ClientHandle) {
	wasAttached := h.binding == BindingAttached
	h.binding = BindingNone
	h.inside.Set(true)
	stdatomic.AddInt64(&p.ongoing, -1)

	p.mu.Lock()
	keep := wasAttached && !p.closed && len(p.idle) < p.cfg.Min
	if keep {
		p.idle = append(p.idle, h)
	}
	p.mu.Unlock()

	if !keep {
		h.session.Close()
		p.sem.Release(1)
	}
}

// Close closes every idle Session; Sessions currently checked out are
// closed individually as their handles are released.
func (p *Pool) Close() error {
	p.mu.Lock()
	p.closed = true
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	var firstErr error
	for _, h := range idle {
		if err := h.session.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Len reports the number of idle Sessions currently held.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}
