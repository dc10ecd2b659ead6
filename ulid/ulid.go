package ulid

import (
	"time"

	oklogulid "github.com/oklog/ulid"
	"golang.org/x/xerrors"
)

const (
	TimestampBits = 48
	RandomBits    = 80

	// MaxTimestamp is the largest epoch milliseconds a ULID can hold,
	// 10889-08-02T05:31:50.655Z.
	MaxTimestamp uint64 = 1<<TimestampBits - 1
)

/*
ULID is a 48 bit millisecond timestamp followed by 80 bits of randomness.

	0                   1                   2                   3
	0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                      32_bit_uint_time_high                    |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|     16_bit_uint_time_low      |       16_bit_uint_random      |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                       32_bit_uint_random                      |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                       32_bit_uint_random                      |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/
type ULID struct {
	ms  uint64
	rnd Random
}

// Random is the 80 bit random part; hi holds the upper 16 bits.
type Random struct {
	hi uint16
	lo uint64
}

func NewRandom(hi uint16, lo uint64) Random {
	return Random{hi: hi, lo: lo}
}

func (r Random) Hi() uint16 {
	return r.hi
}

func (r Random) Lo() uint64 {
	return r.lo
}

// bits5 returns the 5 bits starting at shift, counted from the least
// significant bit.
func (r Random) bits5(shift uint) byte {
	switch {
	case shift >= 64:
		return byte(r.hi>>(shift-64)) & 0x1f
	case shift+5 <= 64:
		return byte(r.lo>>shift) & 0x1f
	default:
		return byte(r.lo>>shift|uint64(r.hi)<<(64-shift)) & 0x1f
	}
}

// shl5 shifts r left by 5 bits and ORs v; bits above 80 are dropped.
func (r Random) shl5(v byte) Random {
	return Random{
		hi: r.hi<<5 | uint16(r.lo>>59),
		lo: r.lo<<5 | uint64(v),
	}
}

func New(ms uint64, r Random) (ULID, error) {
	if ms > MaxTimestamp {
		return ULID{}, xerrors.Errorf("timestamp, %d exceeds 48 bits: %w", ms, InvalidTimestampError)
	}

	return ULID{ms: ms, rnd: r}, nil
}

func MustNew(ms uint64, r Random) ULID {
	id, err := New(ms, r)
	if err != nil {
		panic(err)
	}

	return id
}

// MinAt returns the smallest ULID in the given millisecond.
func MinAt(ms uint64) (ULID, error) {
	return New(ms, Random{})
}

// MaxAt returns the largest ULID in the given millisecond.
func MaxAt(ms uint64) (ULID, error) {
	return New(ms, Random{hi: 0xffff, lo: 0xffffffffffffffff})
}

func (id ULID) Timestamp() uint64 {
	return id.ms
}

func (id ULID) Random() Random {
	return id.rnd
}

func (id ULID) Time() time.Time {
	return time.UnixMilli(int64(id.ms)).UTC()
}

func (id ULID) IsZero() bool {
	return id == ULID{}
}

// Compare returns -1, 0 or 1; the order is the same as the order of the
// canonical strings and of the binary forms.
func (id ULID) Compare(other ULID) int {
	switch {
	case id.ms < other.ms:
		return -1
	case id.ms > other.ms:
		return 1
	case id.rnd.hi < other.rnd.hi:
		return -1
	case id.rnd.hi > other.rnd.hi:
		return 1
	case id.rnd.lo < other.rnd.lo:
		return -1
	case id.rnd.lo > other.rnd.lo:
		return 1
	default:
		return 0
	}
}

func (id ULID) Oklog() oklogulid.ULID {
	return oklogulid.ULID(id.Bytes())
}

func FromOklog(o oklogulid.ULID) ULID {
	id, _ := FromBytes(o[:])

	return id
}
