package ulid

import (
	"strings"

	"golang.org/x/xerrors"
)

const (
	// Encoding is Crockford's base32 alphabet; I, L, O and U are excluded.
	Encoding = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

	EncodedSize          = 26
	encodedTimestampSize = 10
	encodedRandomSize    = 16
)

var dec [256]byte

func init() {
	for i := range dec {
		dec[i] = 0xff
	}

	for i := 0; i < len(Encoding); i++ {
		dec[Encoding[i]] = byte(i)
	}
}

// String returns the 26 characters canonical form.
func (id ULID) String() string {
	var b [EncodedSize]byte
	encodeTimestamp(b[:encodedTimestampSize], id.ms)
	encodeRandom(b[encodedTimestampSize:], id.rnd)

	return string(b[:])
}

func encodeTimestamp(dst []byte, ms uint64) {
	for i := encodedTimestampSize - 1; i >= 0; i-- {
		dst[i] = Encoding[ms&0x1f]
		ms >>= 5
	}
}

func encodeRandom(dst []byte, r Random) {
	for i := 0; i < encodedRandomSize; i++ {
		dst[encodedRandomSize-1-i] = Encoding[r.bits5(uint(i*5))]
	}
}

// Normalize uppercases s and removes every character outside of Encoding.
func Normalize(s string) string {
	s = strings.ToUpper(s)

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if dec[s[i]] != 0xff {
			_ = sb.WriteByte(s[i])
		}
	}

	return sb.String()
}

// Parse decodes the canonical form. The input is normalized first, so
// lowercase letters and separators like "-" are accepted.
func Parse(s string) (ULID, error) {
	n := Normalize(s)
	if len(n) != EncodedSize {
		return ULID{}, xerrors.Errorf(
			"%d characters after normalization, not %d: %w", len(n), EncodedSize, InvalidLengthError)
	}

	ms, err := decodeTimestamp(n[:encodedTimestampSize])
	if err != nil {
		return ULID{}, err
	}

	return ULID{ms: ms, rnd: decodeRandom(n[encodedTimestampSize:])}, nil
}

func MustParse(s string) ULID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return id
}

func decodeTimestamp(s string) (uint64, error) {
	// NOTE 10 characters hold 50 bits; the upper 2 bits must be empty.
	var ms uint64
	for i := 0; i < len(s); i++ {
		ms = ms<<5 | uint64(dec[s[i]])
	}

	if ms > MaxTimestamp {
		return 0, xerrors.Errorf("timestamp part, %q overflows 48 bits: %w", s, InvalidTimestampError)
	}

	return ms, nil
}

func decodeRandom(s string) Random {
	var r Random
	for i := 0; i < len(s); i++ {
		r = r.shl5(dec[s[i]])
	}

	return r
}
