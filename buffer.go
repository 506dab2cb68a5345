package clickhouse

import (
	"bytes"
	"io"
)

const defaultBufSize = 4096

// reader is a read buffer similar to bufio.Reader but zero-copy-ish,
// adapted for the packet parser: readNext returns a slice aliasing the
// internal buffer, valid only until the next call.
type reader struct {
	buf    []byte
	rd     io.Reader
	idx    int
	length int
}

func newReader(rd io.Reader) *reader {
	return &reader{
		buf: make([]byte, defaultBufSize),
		rd:  rd,
	}
}

// fill reads into the buffer until at least need bytes are available.
func (b *reader) fill(need int) (err error) {
	if b.length > 0 && b.idx > 0 {
		copy(b.buf[0:b.length], b.buf[b.idx:b.idx+b.length])
	}

	if need > len(b.buf) {
		newBuf := make([]byte, need)
		copy(newBuf, b.buf[:b.length])
		b.buf = newBuf
	}

	b.idx = 0

	var n int
	for {
		n, err = b.rd.Read(b.buf[b.length:])
		b.length += n

		if b.length < need && err == nil {
			continue
		}
		return
	}
}

// readNext returns the next need bytes from the stream. The returned
// slice aliases the internal buffer and is valid only until the next read.
func (b *reader) readNext(need int) ([]byte, error) {
	if b.length < need {
		if err := b.fill(need); err != nil {
			return nil, err
		}
	}
	p := b.buf[b.idx : b.idx+need]
	b.idx += need
	b.length -= need
	return p, nil
}

// Read implements io.Reader by copying out of readNext, satisfying the
// various read* helpers in scalar.go and varint.go.
func (b *reader) Read(p []byte) (int, error) {
	n, err := b.readNext(len(p))
	if err != nil {
		return 0, err
	}
	copy(p, n)
	return len(p), nil
}

// writer accumulates an outgoing command before a single socket write.
type writer struct {
	buf bytes.Buffer
}

func newWriter() *writer { return &writer{} }

func (w *writer) Bytes() []byte { return w.buf.Bytes() }

func (w *writer) putUvarint(x uint64) {
	var scratch [10]byte
	n := putUvarint(scratch[:], x)
	w.buf.Write(scratch[:n])
}

func (w *writer) putString(s string) {
	w.putUvarint(uint64(len(s)))
	w.buf.WriteString(s)
}

func (w *writer) putBytes(b []byte) {
	w.putUvarint(uint64(len(b)))
	w.buf.Write(b)
}

func (w *writer) putUint8(v uint8) { w.buf.WriteByte(v) }

func (w *writer) putBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *writer) putUint16(v uint16) {
	var b [2]byte
	putUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) putUint32(v uint32) {
	var b [4]byte
	putUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) putUint64(v uint64) {
	var b [8]byte
	putUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) putInt32(v int32) { w.putUint32(uint32(v)) }

func (w *writer) putRaw(b []byte) { w.buf.Write(b) }
