package clickhouse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHello_Layout(t *testing.T) {
	cfg := &PoolConfig{Database: "default", Username: "default", Password: "secret"}
	body := encodeHello(cfg)
	r := bytes.NewReader(body)

	kind, err := readUvarint(r)
	require.NoError(t, err)
	assert.EqualValues(t, clientHello, kind)

	name, err := readString(r)
	require.NoError(t, err)
	assert.Equal(t, clientName, name)

	_, _ = readUvarint(r) // version major
	_, _ = readUvarint(r) // version minor
	_, _ = readUvarint(r) // revision

	db, err := readString(r)
	require.NoError(t, err)
	assert.Equal(t, "default", db)

	user, err := readString(r)
	require.NoError(t, err)
	assert.Equal(t, "default", user)

	pw, err := readString(r)
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
}

func TestEncodePing_IsKindOnly(t *testing.T) {
	body := encodePing()
	kind, err := readUvarint(bytes.NewReader(body))
	require.NoError(t, err)
	assert.EqualValues(t, clientPing, kind)
	assert.Len(t, body, 1)
}

// readQueryPrefix consumes every encodeQuery field up through client info,
// leaving the reader positioned at the optional quota key.
func readQueryPrefix(t *testing.T, r *bytes.Reader) {
	t.Helper()
	_, err := readUvarint(r) // clientQuery
	require.NoError(t, err)
	_, err = readString(r) // query id
	require.NoError(t, err)
	_, err = readUvarint(r) // initial_query
	require.NoError(t, err)
	_, err = readString(r) // initial user
	require.NoError(t, err)
	_, err = readString(r) // initial query id
	require.NoError(t, err)
	_, err = readString(r) // client address
	require.NoError(t, err)
	_, err = readUvarint(r) // interface
	require.NoError(t, err)
	_, err = readString(r) // hostname
	require.NoError(t, err)
	_, err = readString(r) // hostname again
	require.NoError(t, err)
	_, err = readString(r) // client name
	require.NoError(t, err)
	_, err = readUvarint(r) // version major
	require.NoError(t, err)
	_, err = readUvarint(r) // version minor
	require.NoError(t, err)
	_, err = readUvarint(r) // revision
	require.NoError(t, err)
}

func TestEncodeQuery_OmitsQuotaKeyBelowRevision(t *testing.T) {
	q := NewQuery("SELECT 1")
	body := encodeQuery(q, "host", ServerInfo{Revision: revisionWithQuotaKey - 1})

	r := bytes.NewReader(body)
	readQueryPrefix(t, r)

	flag, err := readString(r)
	require.NoError(t, err)
	assert.Equal(t, readonlyFlag, flag, "quota key field must be absent below revisionWithQuotaKey")
}

func TestEncodeQuery_IncludesQuotaKeyAtRevision(t *testing.T) {
	q := NewQuery("SELECT 1")
	body := encodeQuery(q, "host", ServerInfo{Revision: revisionWithQuotaKey})

	r := bytes.NewReader(body)
	readQueryPrefix(t, r)

	quotaKey, err := readString(r)
	require.NoError(t, err)
	assert.Equal(t, "", quotaKey)

	flag, err := readString(r)
	require.NoError(t, err)
	assert.Equal(t, readonlyFlag, flag)
}
