package clickhouse

import (
	"context"
	"testing"

	"golang.org/x/sync/semaphore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_AppliesDefaults(t *testing.T) {
	cfg := &PoolConfig{Hosts: []string{"a:9000"}}
	p := NewPool(cfg)
	assert.Equal(t, DefaultMinConnections, cfg.Min)
	assert.Equal(t, DefaultMaxConnections, cfg.Max)
	assert.Equal(t, DefaultConnectTimeout, cfg.ConnectionTimeout)
	assert.NotNil(t, p.sem)
}

func TestPool_GetAddr_RoundRobins(t *testing.T) {
	p := &Pool{hosts: []string{"a:9000", "b:9000", "c:9000"}}
	seen := []string{p.getAddr(), p.getAddr(), p.getAddr(), p.getAddr()}
	assert.Equal(t, []string{"a:9000", "b:9000", "c:9000", "a:9000"}, seen)
}

func TestPool_PutBack_KeepsUpToMin(t *testing.T) {
	cfg := &PoolConfig{Hosts: []string{"a:9000"}, Min: 1, Max: 2}
	p := &Pool{cfg: cfg, sem: semaphore.NewWeighted(2)}

	// Each checked-out handle holds one semaphore slot, as after Get.
	require.NoError(t, p.sem.Acquire(context.Background(), 2))

	h1 := fakeHandle(t)
	h1.pool, h1.binding = p, BindingAttached
	p.putBack(h1)
	assert.Equal(t, 1, p.Len())

	h2 := fakeHandle(t)
	h2.pool, h2.binding = p, BindingAttached
	p.putBack(h2)
	// Min is 1: the second handle should not be kept idle.
	assert.Equal(t, 1, p.Len())
}

func TestPool_PutBack_DetachedIsNotKept(t *testing.T) {
	cfg := &PoolConfig{Hosts: []string{"a:9000"}, Min: 5, Max: 10}
	p := &Pool{cfg: cfg, sem: semaphore.NewWeighted(10)}
	require.NoError(t, p.sem.Acquire(context.Background(), 1))

	h := fakeHandle(t)
	h.pool, h.binding = p, BindingDetached
	p.putBack(h)
	assert.Equal(t, 0, p.Len())
}

func TestClientHandle_Release_NoPoolClosesSession(t *testing.T) {
	h := fakeHandle(t)
	h.Release()
}

func TestPool_Close_ClosesIdleSessions(t *testing.T) {
	cfg := &PoolConfig{Hosts: []string{"a:9000"}, Min: 5, Max: 10}
	p := &Pool{cfg: cfg, sem: semaphore.NewWeighted(10)}
	p.idle = []*ClientHandle{fakeHandle(t), fakeHandle(t)}

	require.NoError(t, p.Close())
	assert.Equal(t, 0, p.Len())

	_, err := p.Get(context.Background())
	assert.Equal(t, ErrPoolClosed, err)
}
