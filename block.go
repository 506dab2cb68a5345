package clickhouse

import (
	"io"
	"time"
)

// maxInsertBlockRows is the row count at which an insert's row set is split
// into consecutive sub-blocks (§4.3). This client never originates inserts
// and writeBlock does not split; the constant only documents that split
// point.
const maxInsertBlockRows = 1 << 20

// Block is a columnar result chunk: a header plus a set of equal-length
// named columns (§3, §4.3). All columns in a Block share Block.Rows().
type Block struct {
	Info    BlockInfo
	Columns []Column
}

// Rows returns the shared row count, or 0 for a column-less block.
func (b Block) Rows() int {
	if len(b.Columns) == 0 {
		return 0
	}
	return b.Columns[0].Len()
}

func readBlock(r io.Reader, tz *time.Location) (Block, error) {
	info, err := readBlockInfo(r)
	if err != nil {
		return Block{}, err
	}
	numColumns, err := readUvarint(r)
	if err != nil {
		return Block{}, err
	}
	numRows, err := readUvarint(r)
	if err != nil {
		return Block{}, err
	}
	columns := make([]Column, numColumns)
	for i := range columns {
		c, err := readColumn(r, int(numRows), tz)
		if err != nil {
			return Block{}, err
		}
		columns[i] = c
	}
	return Block{Info: info, Columns: columns}, nil
}

func writeBlock(w *writer, b Block) error {
	b.Info.write(w)
	w.putUvarint(uint64(len(b.Columns)))
	w.putUvarint(uint64(b.Rows()))
	for _, c := range b.Columns {
		if err := writeColumn(w, c); err != nil {
			return err
		}
	}
	return nil
}

// emptyBlockFor builds a zero-row block with the same column names and
// types as schema. The block that terminates every query's input stream is
// written by writeEmptyDataBlock instead and has no columns.
func emptyBlockFor(schema []Column) Block {
	columns := make([]Column, len(schema))
	for i, c := range schema {
		columns[i] = Column{Name: c.Name, Typ: c.Typ, Data: newColumnData(c.Typ, 0)}
	}
	return Block{Info: defaultBlockInfo(), Columns: columns}
}
