package clickhouse

import (
	"context"

	"github.com/google/uuid"
)

// Query is a single SQL statement bound to a query id, used for
// server-side correlation (query_log) (§6). The Cancel command does not
// carry the id.
type Query struct {
	sql string
	id  string
}

// NewQuery builds a Query with a fresh random id.
func NewQuery(sql string) *Query {
	return &Query{sql: sql, id: uuid.NewString()}
}

// WithID overrides the generated query id with a caller-supplied one.
func (q *Query) WithID(id string) *Query {
	q.id = id
	return q
}

func (q *Query) ID() string { return q.id }

// BlockStream pulls Data/Totals/Extremes/Progress/ProfileInfo packets off
// one query's response stream until EndOfStream, surfacing a server
// Exception as an error from Next (§4.4, §6).
type BlockStream struct {
	handle  *ClientHandle
	ctx     context.Context
	next    func() (Packet, bool, error)
	done    bool
	current Block

	totals   *Block
	extremes *Block
	progress []Progress
	profile  *ProfileInfo

	skippedSchema bool
}

// Run issues q against the handle's session and returns a BlockStream
// over the result.
func Run(ctx context.Context, h *ClientHandle, q *Query) (*BlockStream, error) {
	next, err := h.session.runQuery(ctx, q)
	if err != nil {
		return nil, err
	}
	return &BlockStream{handle: h, ctx: ctx, next: next}, nil
}

// Next advances to the following data Block, returning false once the
// stream is exhausted (EndOfStream) or an error occurred. The first
// zero-row Data block (the schema-only block ClickHouse sends ahead of
// actual rows) is skipped automatically (§4.6).
func (s *BlockStream) Next() (bool, error) {
	for {
		if s.done {
			return false, nil
		}
		p, terminal, err := s.next()
		if err != nil {
			s.handle.session.transport.inconsistent = true
			return false, err
		}
		switch p.Kind {
		case PacketData:
			if !s.skippedSchema && p.Block.Rows() == 0 {
				s.skippedSchema = true
				if terminal {
					s.done = true
					return false, nil
				}
				continue
			}
			s.current = p.Block
			if terminal {
				s.done = true
			}
			return true, nil
		case PacketTotals:
			b := p.Block
			s.totals = &b
		case PacketExtremes:
			b := p.Block
			s.extremes = &b
		case PacketProgress:
			s.progress = append(s.progress, p.Progress)
		case PacketProfileInfo:
			pi := p.ProfileInfo
			s.profile = &pi
		case PacketException:
			s.done = true
			return false, p.Exception
		case PacketEndOfStream:
			s.done = true
			return false, nil
		}
		if terminal {
			s.done = true
			return false, nil
		}
	}
}

// Block returns the Block most recently yielded by Next.
func (s *BlockStream) Block() Block { return s.current }

// Totals returns the Totals block for a query using WITH TOTALS, if any.
func (s *BlockStream) Totals() (Block, bool) {
	if s.totals == nil {
		return Block{}, false
	}
	return *s.totals, true
}

// Extremes returns the Extremes block for a query using extremes=1, if any.
func (s *BlockStream) Extremes() (Block, bool) {
	if s.extremes == nil {
		return Block{}, false
	}
	return *s.extremes, true
}

// Progress returns every Progress packet observed so far.
func (s *BlockStream) Progress() []Progress { return s.progress }

// ProfileInfo returns the server's post-execution statistics, if sent.
func (s *BlockStream) ProfileInfo() (ProfileInfo, bool) {
	if s.profile == nil {
		return ProfileInfo{}, false
	}
	return *s.profile, true
}

// Close abandons the stream. If it was not fully drained, the server is
// sent Cancel and the underlying Transport is marked inconsistent so the
// Session is reconnected rather than reused mid-stream (§9 Supplemented
// Features: Cancel-on-drop).
func (s *BlockStream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	s.handle.session.transport.drain()
	return s.handle.session.cancel(s.ctx)
}

// Rows returns a RowStream that flattens every Block's cells into Row
// values, one at a time.
func (s *BlockStream) Rows() *RowStream {
	return &RowStream{blocks: s}
}

// RowStream iterates a BlockStream one row at a time.
type RowStream struct {
	blocks *BlockStream
	block  Block
	idx    int
}

func (r *RowStream) Next() (bool, error) {
	for r.idx >= r.block.Rows() {
		ok, err := r.blocks.Next()
		if err != nil || !ok {
			return false, err
		}
		r.block = r.blocks.Block()
		r.idx = 0
	}
	r.idx++
	return true, nil
}

// Row returns the row last advanced to by Next.
func (r *RowStream) Row() Row {
	return Row{block: r.block, idx: r.idx - 1}
}

// Row is one cell-indexed and name-indexed view over a Block's columns.
type Row struct {
	block Block
	idx   int
}

// Get returns the ValueRef at column i.
func (row Row) Get(i int) ValueRef {
	return row.block.Columns[i].At(row.idx)
}

// GetByName returns the ValueRef for the named column, or
// FromSqlError{OutOfRange} if no column has that name.
func (row Row) GetByName(name string) (ValueRef, error) {
	for _, c := range row.block.Columns {
		if c.Name == name {
			return c.Data.At(row.idx), nil
		}
	}
	return ValueRef{}, &FromSqlError{Kind: ErrOutOfRange, Src: name}
}

// Len returns the number of columns in the row.
func (row Row) Len() int { return len(row.block.Columns) }
