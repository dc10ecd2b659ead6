package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"

	"github.com/spikeekips/ulidcodec/ulid"
)

type Record struct {
	ID        ulid.ULID
	CreatedAt time.Time
}

func NewRecord(id ulid.ULID, createdAt time.Time) Record {
	return Record{ID: id, CreatedAt: createdAt}
}

// NewULIDBSON keeps the 16 bytes binary form, generic subtype.
func NewULIDBSON(id ulid.ULID) primitive.Binary {
	b := id.Bytes()

	return primitive.Binary{Subtype: bsontype.BinaryGeneric, Data: b[:]}
}

func ULIDFromBSON(b primitive.Binary) (ulid.ULID, error) {
	if b.Subtype != bsontype.BinaryGeneric {
		return ulid.ULID{}, xerrors.Errorf("unexpected binary subtype for ulid, %x", b.Subtype)
	}

	return ulid.FromBytes(b.Data)
}

type RecordBSON struct {
	r Record
}

func NewRecordBSON(r Record) RecordBSON {
	return RecordBSON{r: r}
}

func (rb RecordBSON) MarshalBSON() ([]byte, error) {
	return bson.Marshal(bson.M{
		"_id":        NewULIDBSON(rb.r.ID),
		"ulid":       rb.r.ID.String(),
		"t":          rb.r.ID.Time(),
		"created_at": rb.r.CreatedAt,
	})
}

type RecordDoc struct {
	ID        primitive.Binary `bson:"_id"`
	ULID      string           `bson:"ulid"`
	T         time.Time        `bson:"t"`
	CreatedAt time.Time        `bson:"created_at"`
}

func (doc RecordDoc) Record() (Record, error) {
	id, err := ULIDFromBSON(doc.ID)
	if err != nil {
		return Record{}, err
	}

	// NOTE the string form is kept only for readability; it must agree with _id.
	if len(doc.ULID) > 0 && doc.ULID != id.String() {
		return Record{}, xerrors.Errorf("ulid string, %q does not match with _id, %q", doc.ULID, id)
	}

	return NewRecord(id, doc.CreatedAt), nil
}
