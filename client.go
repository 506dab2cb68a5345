package clickhouse

import "context"

// Open dials a single Session directly against cfg, bypassing Pool. Most
// callers should use NewPool instead; Open is useful for one-off scripts
// and for Pool's own dialing path.
func Open(ctx context.Context, cfg *PoolConfig) (*ClientHandle, error) {
	cfg.normalize()
	if len(cfg.Hosts) == 0 {
		return nil, ErrTlsHostNotProvided
	}
	session, err := dialSession(ctx, cfg, cfg.Hosts[0])
	if err != nil {
		return nil, err
	}
	return &ClientHandle{session: session}, nil
}

// Ping issues a CLIENT_PING/SERVER_PONG round trip over the handle's
// session.
func Ping(ctx context.Context, h *ClientHandle) error {
	return h.session.ping(ctx)
}
