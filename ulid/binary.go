package ulid

import (
	"encoding/binary"

	"golang.org/x/xerrors"
)

const BinarySize = 16

// Bytes returns the big-endian binary form; 4 bytes of timestamp high, 2 of
// timestamp low, 2 of random high, then 4 and 4 of the remaining random.
func (id ULID) Bytes() [BinarySize]byte {
	var b [BinarySize]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(id.ms>>16))
	binary.BigEndian.PutUint16(b[4:6], uint16(id.ms))
	binary.BigEndian.PutUint16(b[6:8], id.rnd.hi)
	binary.BigEndian.PutUint32(b[8:12], uint32(id.rnd.lo>>32))
	binary.BigEndian.PutUint32(b[12:16], uint32(id.rnd.lo))

	return b
}

func FromBytes(b []byte) (ULID, error) {
	if len(b) != BinarySize {
		return ULID{}, xerrors.Errorf("%d bytes, not %d: %w", len(b), BinarySize, InvalidLengthError)
	}

	ms := uint64(binary.BigEndian.Uint32(b[0:4]))<<16 | uint64(binary.BigEndian.Uint16(b[4:6]))

	return ULID{
		ms: ms,
		rnd: Random{
			hi: binary.BigEndian.Uint16(b[6:8]),
			lo: uint64(binary.BigEndian.Uint32(b[8:12]))<<32 | uint64(binary.BigEndian.Uint32(b[12:16])),
		},
	}, nil
}
