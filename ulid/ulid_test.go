package ulid

import (
	"bytes"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	oklogulid "github.com/oklog/ulid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"
)

const (
	vectorString    = "01B3Z3A7GQ6627FZPDQHQP87PM"
	vectorTimestamp = uint64(1481733643799)
)

var vectorBytes = [BinarySize]byte{
	0x01, 0x58, 0xfe, 0x35, 0x1e, 0x17, 0x31, 0x84,
	0x77, 0xfe, 0xcd, 0xbc, 0x6f, 0x64, 0x1e, 0xd4,
}

type testULID struct {
	suite.Suite
	entropy *rand.Rand
}

func (t *testULID) SetupTest() {
	t.entropy = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
}

func (t *testULID) newULID(ms uint64) ULID {
	id, err := GenerateWithEntropy(time.UnixMilli(int64(ms)), t.entropy)
	t.NoError(err)

	return id
}

func (t *testULID) TestVector() {
	id, err := Parse(vectorString)
	t.NoError(err)

	t.Equal(vectorTimestamp, id.Timestamp())
	t.Equal(vectorBytes, id.Bytes())
	t.Equal(int64(vectorTimestamp), id.Time().UnixMilli())
	t.Equal(uint16(0x3184), id.Random().Hi())
	t.Equal(uint64(0x77fecdbc6f641ed4), id.Random().Lo())
	t.Equal(vectorString, id.String())

	b, err := FromBytes(vectorBytes[:])
	t.NoError(err)
	t.Equal(id, b)
}

func (t *testULID) TestGenerateAtVector() {
	id, err := GenerateAt(time.UnixMilli(1481797018267))
	t.NoError(err)

	t.Equal("01B40ZR8MV", id.String()[:10])
	t.Equal(uint64(1481797018267), id.Timestamp())
}

func (t *testULID) TestGenerate() {
	before := uint64(time.Now().UnixMilli())

	for i := 0; i < 100; i++ {
		id, err := Generate()
		t.NoError(err)

		s := id.String()
		t.Equal(EncodedSize, len(s))
		t.Equal(len(s), len(Normalize(s)), "non alphabet character found, %q", s)
		t.True(strings.ToUpper(s) == s)

		b := id.Bytes()
		t.Equal(BinarySize, len(b))

		t.True(id.Timestamp() >= before)
		t.True(id.Timestamp() <= uint64(time.Now().UnixMilli()))
	}
}

func (t *testULID) TestRoundTrip() {
	for i := 0; i < 1000; i++ {
		id := t.newULID(uint64(t.entropy.Int63n(int64(MaxTimestamp) + 1)))

		p, err := Parse(id.String())
		t.NoError(err)
		t.Equal(id, p)

		b := id.Bytes()
		q, err := FromBytes(b[:])
		t.NoError(err)
		t.Equal(id, q)

		a, err := ParseAny(BytesInput(b[:]))
		t.NoError(err)
		c, err := ParseAny(StringInput(id.String()))
		t.NoError(err)
		t.Equal(a, c)
	}
}

func (t *testULID) TestBoundaries() {
	cases := []struct {
		name string
		ms   uint64
		r    Random
		s    string
	}{
		{name: "zero", s: "00000000000000000000000000"},
		{
			name: "max",
			ms:   MaxTimestamp,
			r:    NewRandom(0xffff, 0xffffffffffffffff),
			s:    "7ZZZZZZZZZZZZZZZZZZZZZZZZZ",
		},
		{name: "random lowest bit", r: NewRandom(0, 1), s: "00000000000000000000000001"},
		{name: "random bit 64", r: NewRandom(1, 0), s: "0000000000000G000000000000"},
		{name: "random bit 63", r: NewRandom(0, 1<<63), s: "00000000000008000000000000"},
		{name: "random highest bit", r: NewRandom(0x8000, 0), s: "0000000000G000000000000000"},
		{name: "timestamp lowest bit", ms: 1, s: "00000000010000000000000000"},
	}

	for i, c := range cases {
		i := i
		c := c
		t.Run(
			c.name,
			func() {
				id, err := New(c.ms, c.r)
				t.NoError(err)

				t.Equal(c.s, id.String(), "%d: %s", i, c.name)

				p, err := Parse(c.s)
				t.NoError(err)
				t.Equal(id, p, "%d: %s", i, c.name)

				t.Equal(c.s, oklogulid.ULID(id.Bytes()).String(), "%d: %s", i, c.name)
			},
		)
	}
}

func (t *testULID) TestNewInvalidTimestamp() {
	_, err := New(MaxTimestamp+1, Random{})
	t.True(xerrors.Is(err, InvalidTimestampError))

	t.Panics(func() { _ = MustNew(MaxTimestamp+1, Random{}) })
}

func (t *testULID) TestSortable() {
	for i := 0; i < 100; i++ {
		t1 := uint64(t.entropy.Int63n(int64(MaxTimestamp)))
		t2 := t1 + 1 + uint64(t.entropy.Int63n(int64(MaxTimestamp-t1)))

		a, err := New(t1, NewRandom(0xffff, 0xffffffffffffffff))
		t.NoError(err)
		b, err := New(t2, Random{})
		t.NoError(err)

		t.True(a.String() < b.String(), "%s >= %s", a, b)

		ab, bb := a.Bytes(), b.Bytes()
		t.Equal(-1, bytes.Compare(ab[:], bb[:]))
		t.Equal(-1, a.Compare(b))
		t.Equal(1, b.Compare(a))
		t.Equal(0, a.Compare(a))
	}
}

func (t *testULID) TestSortOrderMatchesCompare() {
	ids := make([]ULID, 300)
	for i := range ids {
		ids[i] = t.newULID(uint64(t.entropy.Int63n(1 << 20)))
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Compare(ids[j]) < 0
	})

	for i := 1; i < len(ids); i++ {
		t.True(ids[i-1].String() <= ids[i].String())
	}
}

func (t *testULID) TestMinMaxAt() {
	min, err := MinAt(vectorTimestamp)
	t.NoError(err)
	max, err := MaxAt(vectorTimestamp)
	t.NoError(err)

	id := MustParse(vectorString)
	t.Equal(-1, min.Compare(id))
	t.Equal(1, max.Compare(id))
	t.Equal("01B3Z3A7GQ0000000000000000", min.String())
	t.Equal("01B3Z3A7GQZZZZZZZZZZZZZZZZ", max.String())

	_, err = MaxAt(MaxTimestamp + 1)
	t.True(xerrors.Is(err, InvalidTimestampError))
}

func (t *testULID) TestOklog() {
	for i := 0; i < 100; i++ {
		id := t.newULID(uint64(t.entropy.Int63n(int64(MaxTimestamp) + 1)))

		o := id.Oklog()
		t.Equal(id.String(), o.String())
		t.Equal(id.Timestamp(), o.Time())
		t.Equal(id, FromOklog(o))

		p := oklogulid.MustParse(id.String())
		t.Equal(id.Bytes(), [BinarySize]byte(p))
	}
}

func (t *testULID) TestConcurrentGenerate() {
	n := 200

	var wg sync.WaitGroup
	wg.Add(n)

	ids := make([]ULID, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()

			ids[i], errs[i] = Generate()
		}(i)
	}

	wg.Wait()

	found := map[ULID]struct{}{}
	for i := range ids {
		t.NoError(errs[i])

		_, exists := found[ids[i]]
		t.False(exists)

		found[ids[i]] = struct{}{}
	}
}

func TestULID(t *testing.T) {
	suite.Run(t, new(testULID))
}
