package ulid

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"time"

	"golang.org/x/xerrors"
)

const randomSize = RandomBits / 8

// DefaultEntropy is the source of the random part; it must be safe for
// concurrent use.
var DefaultEntropy io.Reader = rand.Reader

// Timestamp converts t into epoch milliseconds. Sub-millisecond precision is
// truncated, not rounded.
func Timestamp(t time.Time) (uint64, error) {
	sec := t.Unix()
	switch {
	case sec < 0:
		return 0, xerrors.Errorf("time, %v is before unix epoch: %w", t, InvalidTimestampError)
	case uint64(sec) > MaxTimestamp/1000:
		return 0, xerrors.Errorf("time, %v is too far in the future: %w", t, InvalidTimestampError)
	}

	ms := uint64(sec)*1000 + uint64(t.Nanosecond())/uint64(time.Millisecond)
	if ms > MaxTimestamp {
		return 0, xerrors.Errorf("time, %v is too far in the future: %w", t, InvalidTimestampError)
	}

	return ms, nil
}

func Generate() (ULID, error) {
	return GenerateAt(time.Now())
}

func GenerateAt(t time.Time) (ULID, error) {
	return GenerateWithEntropy(t, DefaultEntropy)
}

func GenerateWithEntropy(t time.Time, entropy io.Reader) (ULID, error) {
	ms, err := Timestamp(t)
	if err != nil {
		return ULID{}, err
	}

	r, err := ReadRandom(entropy)
	if err != nil {
		return ULID{}, err
	}

	return New(ms, r)
}

// ReadRandom fills the whole 80 bits from entropy in one read.
func ReadRandom(entropy io.Reader) (Random, error) {
	if entropy == nil {
		return Random{}, xerrors.Errorf("empty entropy source: %w", EntropyError)
	}

	var b [randomSize]byte
	if _, err := io.ReadFull(entropy, b[:]); err != nil {
		return Random{}, xerrors.Errorf("%v: %w", err, EntropyError)
	}

	return Random{
		hi: binary.BigEndian.Uint16(b[:2]),
		lo: binary.BigEndian.Uint64(b[2:]),
	}, nil
}
