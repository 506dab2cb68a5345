package clickhouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstantBackoff_NextInterval(t *testing.T) {
	backoff := newConstantBackoff(5 * time.Second)

	assert.Equal(t, time.Duration(0), backoff.NextInterval(-1))
	assert.Equal(t, time.Duration(0), backoff.NextInterval(0))
	assert.Equal(t, 5*time.Second, backoff.NextInterval(1))
	assert.Equal(t, 5*time.Second, backoff.NextInterval(2))
	assert.Equal(t, 5*time.Second, backoff.NextInterval(3))
}
