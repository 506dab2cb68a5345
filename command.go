package clickhouse

// Client packet kinds (§6).
const (
	clientHello  = 0
	clientQuery  = 1
	clientData   = 2
	clientCancel = 3
	clientPing   = 4
)

const (
	stateComplete   = 2
	compressDisable = 0
	readonlyFlag    = "readonly"
	readonlyLevel   = 1
)

// writeClientInfo emits the common client identity block shared by Hello
// and Query (§6): name, version major/minor, protocol revision.
func writeClientInfo(w *writer) {
	w.putString(clientName)
	w.putUvarint(clientVersionMajor)
	w.putUvarint(clientVersionMinor)
	w.putUvarint(clientRevision)
}

// encodeHello builds CLIENT_HELLO: client info, then database/username/
// password (§6).
func encodeHello(cfg *PoolConfig) []byte {
	w := newWriter()
	w.putUvarint(clientHello)
	writeClientInfo(w)
	w.putString(cfg.Database)
	w.putString(cfg.Username)
	w.putString(cfg.Password)
	return w.Bytes()
}

// encodePing builds CLIENT_PING, a single uvarint with no body (§6).
func encodePing() []byte {
	w := newWriter()
	w.putUvarint(clientPing)
	return w.Bytes()
}

// encodeCancel builds CLIENT_CANCEL, a single uvarint with no body (§6).
func encodeCancel() []byte {
	w := newWriter()
	w.putUvarint(clientCancel)
	return w.Bytes()
}

// encodeQuery builds CLIENT_QUERY followed by the empty terminating
// CLIENT_DATA block that signals no client-supplied input rows (§6). The
// quota key field is only present once server_info.revision reaches
// revisionWithQuotaKey.
func encodeQuery(q *Query, hostname string, info ServerInfo) []byte {
	w := newWriter()
	w.putUvarint(clientQuery)
	w.putString("")
	w.putUvarint(1) // initial_query
	w.putString("")
	w.putString(q.id)
	w.putString("[::ffff:127.0.0.1]:0")
	w.putUvarint(1) // interface: TCP
	w.putString(hostname)
	w.putString(hostname)
	writeClientInfo(w)
	if info.Revision >= revisionWithQuotaKey {
		w.putString("")
	}
	w.putString(readonlyFlag)
	w.putUvarint(readonlyLevel)
	w.putString("")
	w.putUvarint(stateComplete)
	w.putUvarint(compressDisable)
	w.putString(q.sql)
	writeEmptyDataBlock(w)
	return w.Bytes()
}

// writeEmptyDataBlock appends a CLIENT_DATA packet framing a zero-row,
// zero-column block, the terminator every query's input stream requires
// even when no data is being inserted (§6).
func writeEmptyDataBlock(w *writer) {
	w.putUvarint(clientData)
	w.putString("")
	_ = writeBlock(w, Block{Info: defaultBlockInfo()})
}
