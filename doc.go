// Package clickhouse is a read-only client for the ClickHouse native TCP
// protocol: varint/scalar decoding, column and block codecs, the server
// packet state machine, and a connection Pool sized for steady concurrent
// querying against one or more hosts.
//
// A typical caller opens a Pool, acquires a ClientHandle, runs a Query, and
// iterates the resulting BlockStream or RowStream:
//
//	pool := clickhouse.NewPool(cfg)
//	handle, err := pool.Get(ctx)
//	if err != nil { ... }
//	defer handle.Release()
//
//	stream, err := clickhouse.Run(ctx, handle, clickhouse.NewQuery("SELECT 1"))
//	if err != nil { ... }
//	defer stream.Close()
//	for {
//		ok, err := stream.Next()
//		if err != nil { ... }
//		if !ok { break }
//		_ = stream.Block()
//	}
package clickhouse
