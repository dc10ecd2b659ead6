package ulid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"
)

type testInput struct {
	suite.Suite
}

func (t *testInput) TestParseAnyNone() {
	before := uint64(time.Now().UnixMilli())

	for _, in := range []Input{{}, NowInput()} {
		t.Equal(InputNone, in.Kind())

		id, err := ParseAny(in)
		t.NoError(err)
		t.True(id.Timestamp() >= before)
	}
}

func (t *testInput) TestParseAnyTime() {
	id, err := ParseAny(TimeInput(time.UnixMilli(1481797018267)))
	t.NoError(err)
	t.Equal("01B40ZR8MV", id.String()[:10])

	_, err = ParseAny(TimeInput(time.UnixMilli(-1)))
	t.True(xerrors.Is(err, InvalidTimestampError))
}

func (t *testInput) TestParseAny() {
	cases := []struct {
		name     string
		in       Input
		expected string
		err      []error
	}{
		{name: "binary", in: BytesInput(vectorBytes[:]), expected: vectorString},
		{name: "string", in: StringInput(vectorString), expected: vectorString},
		{name: "string as bytes", in: BytesInput([]byte(vectorString)), expected: vectorString},
		{
			name:     "16 characters bytes are binary",
			in:       BytesInput([]byte("0123456789ABCDEF")),
			expected: "1G64S36D1N6RVKGEA1891M8HA6",
		},
		{
			name: "16 characters string",
			in:   StringInput("0123456789ABCDEF"),
			err:  []error{InvalidULIDError, InvalidLengthError},
		},
		{name: "15 bytes", in: BytesInput(vectorBytes[:15]), err: []error{InvalidULIDError, InvalidLengthError}},
		{name: "empty string", in: StringInput(""), err: []error{InvalidULIDError}},
		{name: "empty bytes", in: BytesInput(nil), err: []error{InvalidULIDError}},
		{name: "27 characters", in: StringInput(vectorString + "Z"), err: []error{InvalidULIDError, InvalidLengthError}},
		{
			name: "timestamp overflow",
			in:   StringInput("Z0000000000000000000000000"),
			err:  []error{InvalidULIDError, InvalidTimestampError},
		},
	}

	for i, c := range cases {
		i := i
		c := c
		t.Run(
			c.name,
			func() {
				id, err := ParseAny(c.in)
				if len(c.err) > 0 {
					for _, e := range c.err {
						t.True(xerrors.Is(err, e), "%d: %s: err=(%+v) expected=(%v)", i, c.name, err, e)
					}

					return
				}

				t.NoError(err)
				t.Equal(c.expected, id.String(), "%d: %s", i, c.name)
			},
		)
	}
}

func (t *testInput) TestExtractTime() {
	tm, err := ExtractTime(StringInput(vectorString))
	t.NoError(err)
	t.Equal(int64(vectorTimestamp), tm.UnixMilli())
	t.Equal(time.UTC, tm.Location())
	t.Equal("2016-12-14T16:40:43.799Z", tm.Format("2006-01-02T15:04:05.000Z07:00"))

	bt, err := ExtractTime(BytesInput(vectorBytes[:]))
	t.NoError(err)
	t.True(tm.Equal(bt))

	at := time.Date(2021, 3, 4, 5, 6, 7, 891234567, time.UTC)
	gt, err := ExtractTime(TimeInput(at))
	t.NoError(err)
	t.True(at.Truncate(time.Millisecond).Equal(gt))

	_, err = ExtractTime(StringInput("showme"))
	t.True(xerrors.Is(err, InvalidULIDError))
}

func (t *testInput) TestParseInput() {
	cases := []struct {
		name string
		s    string
		kind InputKind
	}{
		{name: "empty", s: "", kind: InputNone},
		{name: "blank", s: "  ", kind: InputNone},
		{name: "epoch milliseconds", s: "1481797018267", kind: InputTime},
		{name: "rfc3339", s: "2016-12-15T10:16:58.267Z", kind: InputTime},
		{name: "hex", s: "0158FE351E17318477FECDBC6F641ED4", kind: InputBytes},
		{name: "hex with prefix", s: "0x0158fe351e17318477fecdbc6f641ed4", kind: InputBytes},
		{name: "canonical", s: vectorString, kind: InputString},
		{name: "canonical zero", s: "00000000000000000000000000", kind: InputString},
		{name: "canonical digits", s: "00000000000000000000000001", kind: InputString},
		{name: "canonical digits with dash", s: "0000000000-0000000000000001", kind: InputString},
		{name: "epoch milliseconds with leading zeros", s: "0001481797018267", kind: InputTime},
		{name: "unknown", s: "showme", kind: InputString},
	}

	for i, c := range cases {
		i := i
		c := c
		t.Run(
			c.name,
			func() {
				in := ParseInput(c.s)
				t.Equal(c.kind, in.Kind(), "%d: %s: %v != %v", i, c.name, c.kind, in.Kind())
			},
		)
	}

	a, err := ParseAny(ParseInput("0158FE351E17318477FECDBC6F641ED4"))
	t.NoError(err)
	t.Equal(vectorString, a.String())

	b, err := ParseAny(ParseInput("1481797018267"))
	t.NoError(err)
	t.Equal(uint64(1481797018267), b.Timestamp())

	for _, s := range []string{
		"00000000000000000000000000",
		"00000000000000000000000001",
		"01234567890123456789012345",
	} {
		id, err := ParseAny(ParseInput(s))
		t.NoError(err)
		t.Equal(s, id.String())
	}

	zt, err := ExtractTime(ParseInput("00000000000000000000000000"))
	t.NoError(err)
	t.Equal(int64(0), zt.UnixMilli())
}

func TestInput(t *testing.T) {
	suite.Run(t, new(testInput))
}
