package clickhouse

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Default pool bounds and timeouts (§5).
const (
	DefaultMinConnections = 5
	DefaultMaxConnections = 10
	DefaultConnectTimeout = 10 * time.Second
	DefaultQueryTimeout   = 5 * time.Second
)

// PoolConfig describes how to reach one or more ClickHouse servers and how
// the Pool should size itself against them (§5).
type PoolConfig struct {
	// Hosts is the set of "host:port" pairs the Pool round-robins over.
	// ParsePoolConfig fills it from the DSN's host.
	Hosts []string

	Database string
	Username string
	Password string

	// Secure enables TLS; InsecureSkipVerify disables certificate
	// verification on top of it (§9 Open Question: default false, i.e.
	// verification is on unless explicitly opted out).
	Secure             bool
	InsecureSkipVerify bool

	ConnectionTimeout time.Duration
	QueryTimeout      time.Duration

	Min int
	Max int
}

// ParsePoolConfig builds a PoolConfig from a clickhouse:// DSN plus
// defaults, the way host/Database/Username/Password are commonly supplied
// together (§5).
func ParsePoolConfig(dsn string) (*PoolConfig, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: invalid dsn: %w", err)
	}
	cfg := defaultPoolConfig()
	if u.Host != "" {
		cfg.Hosts = []string{u.Host}
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		cfg.Database = db
	}
	if u.User != nil {
		cfg.Username = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			cfg.Password = pw
		}
	}
	q := u.Query()
	if q.Get("secure") == "true" {
		cfg.Secure = true
	}
	if q.Get("skip_verify") == "true" {
		cfg.InsecureSkipVerify = true
	}
	if len(cfg.Hosts) == 0 {
		return nil, ErrTlsHostNotProvided
	}
	return cfg, nil
}

func defaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		Database:          "default",
		ConnectionTimeout: DefaultConnectTimeout,
		QueryTimeout:      DefaultQueryTimeout,
		Min:               DefaultMinConnections,
		Max:               DefaultMaxConnections,
	}
}

func (c *PoolConfig) normalize() {
	if c.ConnectionTimeout <= 0 {
		c.ConnectionTimeout = DefaultConnectTimeout
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = DefaultQueryTimeout
	}
	if c.Min <= 0 {
		c.Min = DefaultMinConnections
	}
	if c.Max <= 0 {
		c.Max = DefaultMaxConnections
	}
	if c.Max < c.Min {
		c.Max = c.Min
	}
	if c.Database == "" {
		c.Database = "default"
	}
}

// tlsHost returns the host to validate the server certificate against,
// derived from the first configured host.
func (c *PoolConfig) tlsHost() (string, error) {
	if len(c.Hosts) == 0 {
		return "", ErrTlsHostNotProvided
	}
	host := c.Hosts[0]
	if h, _, err := splitHostPort(host); err == nil {
		return h, nil
	}
	return host, nil
}

func splitHostPort(hostport string) (string, string, error) {
	i := strings.LastIndexByte(hostport, ':')
	if i < 0 {
		return "", "", fmt.Errorf("clickhouse: %q has no port", hostport)
	}
	return hostport[:i], hostport[i+1:], nil
}
