package clickhouse

import "io"

// BlockInfo is the 3-field block header: a sequence of (field_num, value)
// records terminated by field_num == 0 (§3).
type BlockInfo struct {
	IsOverflows bool
	BucketNum   int32
}

func defaultBlockInfo() BlockInfo {
	return BlockInfo{BucketNum: -1}
}

func readBlockInfo(r io.Reader) (BlockInfo, error) {
	info := defaultBlockInfo()
	for {
		field, err := readUvarint(r)
		if err != nil {
			return BlockInfo{}, err
		}
		switch field {
		case 0:
			return info, nil
		case 1:
			v, err := readBool(r)
			if err != nil {
				return BlockInfo{}, err
			}
			info.IsOverflows = v
		case 2:
			v, err := readInt32(r)
			if err != nil {
				return BlockInfo{}, err
			}
			info.BucketNum = v
		default:
			return BlockInfo{}, &DriverError{Kind: ErrUnexpectedPacket, Msg: "unknown block info field"}
		}
	}
}

func (info BlockInfo) write(w *writer) {
	w.putUvarint(1)
	w.putBool(info.IsOverflows)
	w.putUvarint(2)
	w.putInt32(info.BucketNum)
	w.putUvarint(0)
}
