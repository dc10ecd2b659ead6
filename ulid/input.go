package ulid

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"golang.org/x/xerrors"
)

type InputKind uint8

const (
	InputNone InputKind = iota
	InputTime
	InputBytes
	InputString
)

func (k InputKind) String() string {
	switch k {
	case InputNone:
		return "none"
	case InputTime:
		return "time"
	case InputBytes:
		return "bytes"
	case InputString:
		return "string"
	default:
		return "unknown"
	}
}

// Input is what ParseAny accepts; the zero Input means no input.
type Input struct {
	kind InputKind
	t    time.Time
	b    []byte
	s    string
}

func NowInput() Input {
	return Input{kind: InputNone}
}

func TimeInput(t time.Time) Input {
	return Input{kind: InputTime, t: t}
}

func BytesInput(b []byte) Input {
	return Input{kind: InputBytes, b: b}
}

func StringInput(s string) Input {
	return Input{kind: InputString, s: s}
}

func (in Input) Kind() InputKind {
	return in.kind
}

// Time returns the instant of a time input.
func (in Input) Time() (time.Time, bool) {
	return in.t, in.kind == InputTime
}

func (in Input) String() string {
	switch in.kind {
	case InputTime:
		return in.t.Format(time.RFC3339Nano)
	case InputBytes:
		return hex.EncodeToString(in.b)
	case InputString:
		return in.s
	default:
		return ""
	}
}

// ParseAny generates a new ULID for none and time inputs, and decodes bytes
// and string inputs. A 16 bytes input is always taken as the binary form;
// the length is checked before any normalization.
func ParseAny(in Input) (ULID, error) {
	switch in.kind {
	case InputNone:
		return Generate()
	case InputTime:
		return GenerateAt(in.t)
	case InputBytes:
		if len(in.b) == BinarySize {
			return FromBytes(in.b)
		}

		return parseString(string(in.b))
	case InputString:
		return parseString(in.s)
	default:
		return ULID{}, newParseError(xerrors.Errorf("unknown input kind, %d", in.kind))
	}
}

func parseString(s string) (ULID, error) {
	if len(s) < 1 {
		return ULID{}, newParseError(xerrors.Errorf("empty string"))
	}

	id, err := Parse(s)
	if err != nil {
		return ULID{}, newParseError(err)
	}

	return id, nil
}

// ExtractTime returns the instant embedded in the ULID ParseAny gives for in.
func ExtractTime(in Input) (time.Time, error) {
	id, err := ParseAny(in)
	if err != nil {
		return time.Time{}, err
	}

	return id.Time(), nil
}

// ParseInput guesses the Input from a command line argument. Empty string is
// no input; digits shorter than the canonical form are epoch milliseconds;
// RFC3339 is time; 32 hex digits is the binary form; anything else is the
// canonical form.
func ParseInput(s string) Input {
	s = strings.TrimSpace(s)
	if len(s) < 1 {
		return NowInput()
	}

	// NOTE 26 digits, like "00000000000000000000000001", is a canonical ulid,
	// not epoch milliseconds.
	if len(s) < EncodedSize {
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return TimeInput(time.UnixMilli(ms))
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return TimeInput(t)
	}

	if h := strings.TrimPrefix(strings.ToLower(s), "0x"); len(h) == BinarySize*2 {
		if b, err := hex.DecodeString(h); err == nil {
			return BytesInput(b)
		}
	}

	return StringInput(s)
}
