package clickhouse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadServerInfo_OldRevisionOmitsExtras(t *testing.T) {
	w := newWriter()
	w.putString("ClickHouse")
	w.putUvarint(1)
	w.putUvarint(1)
	w.putUvarint(dbmsMinRevisionWithServerTimezone - 1)

	info, err := readServerInfo(bytes.NewReader(w.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "ClickHouse", info.Name)
	assert.Equal(t, "UTC", info.Timezone.String())
	assert.Equal(t, "", info.DisplayName)
}

func TestReadServerInfo_NewRevisionReadsTimezoneAndDisplayName(t *testing.T) {
	w := newWriter()
	w.putString("ClickHouse")
	w.putUvarint(23)
	w.putUvarint(8)
	w.putUvarint(dbmsMinRevisionWithServerDisplayName)
	w.putString("UTC")
	w.putString("prod-01")

	info, err := readServerInfo(bytes.NewReader(w.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "prod-01", info.DisplayName)
}
