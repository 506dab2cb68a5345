package clickhouse

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

// Session drives the handshake and command protocol over one Transport: it
// is the unit Pool hands out and takes back (§5).
type Session struct {
	cfg       *PoolConfig
	addr      string
	transport *Transport
	info      ServerInfo
	hostname  string
	backoff   intervaler
}

func dialSession(ctx context.Context, cfg *PoolConfig, addr string) (*Session, error) {
	dialer := net.Dialer{}
	deadline := time.Now().Add(cfg.ConnectionTimeout)
	dialCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	conn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: dial %s: %w", addr, err)
	}
	tlsCfg, err := buildTLSConfig(cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if tlsCfg != nil {
		conn = tlsClientConn(conn, tlsCfg)
	}

	hostname, _ := os.Hostname()
	s := &Session{
		cfg:       cfg,
		addr:      addr,
		transport: newTransport(conn, time.UTC),
		hostname:  hostname,
		backoff:   newConstantBackoff(retryTimeout),
	}

	helloCtx, helloCancel := context.WithDeadline(ctx, deadline)
	defer helloCancel()
	if err := s.hello(helloCtx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// hello performs CLIENT_HELLO and requires a SERVER_HELLO in return. A
// server Exception is returned as its *ServerError; any other packet, or a
// stream that ends first, is a BadResponse (§9 Open Question resolution: no
// panic).
func (s *Session) hello(ctx context.Context) error {
	next, err := s.transport.call(ctx, encodeHello(s.cfg))
	if err != nil {
		return err
	}
	p, _, err := next()
	if err != nil {
		return err
	}
	switch p.Kind {
	case PacketHello:
		s.info = p.ServerInfo
		s.transport.tz = p.ServerInfo.Timezone
		return nil
	case PacketException:
		return p.Exception
	default:
		return &DriverError{Kind: ErrBadResponse, Msg: "hello stream did not start with a hello packet"}
	}
}

// ping issues CLIENT_PING and requires a single SERVER_PONG.
func (s *Session) ping(ctx context.Context) error {
	next, err := s.transport.call(ctx, encodePing())
	if err != nil {
		return err
	}
	p, _, err := next()
	if err != nil {
		return err
	}
	if p.Kind != PacketPong {
		return &DriverError{Kind: ErrUnexpectedPacket, Msg: "ping did not receive a pong"}
	}
	return nil
}

// checkConnection pings the session, and on failure redials up to
// maxRetryAttempts times with a fixed retryTimeout between attempts (§5).
func (s *Session) checkConnection(ctx context.Context) error {
	if s.ping(ctx) == nil {
		return nil
	}
	s.transport.Close()

	var lastErr error
	for attempt := 0; attempt < maxRetryAttempts; attempt++ {
		select {
		case <-time.After(s.backoff.NextInterval(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
		fresh, err := dialSession(ctx, s.cfg, s.addr)
		if err != nil {
			lastErr = err
			continue
		}
		*s = *fresh
		return nil
	}
	return fmt.Errorf("clickhouse: reconnect to %s failed after %d attempts: %w", s.addr, maxRetryAttempts, lastErr)
}

// runQuery issues CLIENT_QUERY and returns the raw packet puller; query.go
// wraps this into the public BlockStream/RowStream surface.
func (s *Session) runQuery(ctx context.Context, q *Query) (func() (Packet, bool, error), error) {
	cmd := encodeQuery(q, s.hostname, s.info)
	return s.transport.call(ctx, cmd)
}

func (s *Session) cancel(ctx context.Context) error {
	return s.transport.send(encodeCancel())
}

func (s *Session) Close() error {
	return s.transport.Close()
}
