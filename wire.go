package clickhouse

import "io"

// readString reads a uvarint length prefix followed by that many bytes,
// the wire representation of every ClickHouse string (column/type names,
// server strings, SQL text).
func readString(r io.Reader) (string, error) {
	b, err := readLengthPrefixed(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readLengthPrefixed(r io.Reader) ([]byte, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
