package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum/util/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"golang.org/x/xerrors"

	"github.com/spikeekips/ulidcodec/config"
	"github.com/spikeekips/ulidcodec/ulid"
)

var (
	colULID           = "ulid"
	indexPrefix       = "ulidcodec_"
	NotConnectedError = xerrors.New("not yet connected")
	NotFoundError     = xerrors.New("ulid not found")
)

var ulidIndexModel = []mongo.IndexModel{
	{
		Keys:    bson.D{bson.E{Key: "t", Value: 1}},
		Options: options.Index().SetName(indexPrefix + "ulid_t"),
	},
}

type Mongodb struct {
	*logging.Logging
	cs     connstring.ConnString
	client *mongo.Client
	db     *mongo.Database
}

func NewMongodb(cs connstring.ConnString) *Mongodb {
	return &Mongodb{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "mongodb-storage")
		}),
		cs: cs,
	}
}

func NewMongodbFromString(uri string) (*Mongodb, error) {
	if cs, err := config.CheckMongodbURI(uri); err != nil {
		return nil, err
	} else {
		return NewMongodb(cs), nil
	}
}

func (mg *Mongodb) Connect(ctx context.Context) error {
	clientOpts := options.Client().ApplyURI(mg.cs.String())
	if err := clientOpts.Validate(); err != nil {
		return err
	}

	var client *mongo.Client
	if c, err := mongo.Connect(ctx, clientOpts); err != nil {
		return err
	} else {
		client = c
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	} else {
		mg.client = client
		mg.db = client.Database(mg.cs.Database)

		mg.Log().Debug().Str("database", mg.cs.Database).Msg("connected")

		return nil
	}
}

func (mg *Mongodb) Close(ctx context.Context) error {
	if mg.client == nil {
		return nil
	}

	return mg.client.Disconnect(ctx)
}

func (mg *Mongodb) Initialize(ctx context.Context) error {
	if err := mg.checkConnected(); err != nil {
		return err
	}

	return mg.createIndices(ctx, colULID, ulidIndexModel)
}

// AddULIDs inserts the records in order. ULIDs are not checked for
// uniqueness; a duplicated _id fails the bulk write.
func (mg *Mongodb) AddULIDs(ctx context.Context, ids []ulid.ULID) error {
	if err := mg.checkConnected(); err != nil {
		return err
	}

	if len(ids) < 1 {
		return nil
	}

	now := time.Now()

	models := make([]mongo.WriteModel, len(ids))
	for i := range ids {
		models[i] = mongo.NewInsertOneModel().SetDocument(NewRecordBSON(NewRecord(ids[i], now)))
	}

	opts := options.BulkWrite().SetOrdered(true)
	if _, err := mg.db.Collection(colULID).BulkWrite(ctx, models, opts); err != nil {
		return xerrors.Errorf("failed to store ulids: %w", err)
	}

	mg.Log().Debug().Int("ulids", len(ids)).Msg("ulids stored")

	return nil
}

func (mg *Mongodb) Find(ctx context.Context, id ulid.ULID) (Record, bool, error) {
	if err := mg.checkConnected(); err != nil {
		return Record{}, false, err
	}

	r := mg.db.Collection(colULID).FindOne(ctx, bson.M{"_id": NewULIDBSON(id)})
	if err := r.Err(); err != nil {
		if xerrors.Is(err, mongo.ErrNoDocuments) {
			return Record{}, false, nil
		}

		return Record{}, false, err
	}

	var doc RecordDoc
	if err := r.Decode(&doc); err != nil {
		return Record{}, true, err
	}

	record, err := doc.Record()

	return record, true, err
}

// Range returns the records whose ULID timestamp is in [from, to], ordered by
// ULID. The binary _id keeps the ULID order, so the range is a plain _id
// scan.
func (mg *Mongodb) Range(ctx context.Context, from, to time.Time, limit int64) ([]Record, error) {
	if err := mg.checkConnected(); err != nil {
		return nil, err
	}

	filter, err := RangeFilter(from, to)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := mg.db.Collection(colULID).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []RecordDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]Record, len(docs))
	for i := range docs {
		if r, err := docs[i].Record(); err != nil {
			return nil, err
		} else {
			records[i] = r
		}
	}

	return records, nil
}

func RangeFilter(from, to time.Time) (bson.M, error) {
	var lower, upper ulid.ULID
	if ms, err := ulid.Timestamp(from); err != nil {
		return nil, err
	} else if i, err := ulid.MinAt(ms); err != nil {
		return nil, err
	} else {
		lower = i
	}

	if ms, err := ulid.Timestamp(to); err != nil {
		return nil, err
	} else if i, err := ulid.MaxAt(ms); err != nil {
		return nil, err
	} else {
		upper = i
	}

	if lower.Compare(upper) > 0 {
		return nil, xerrors.Errorf("from, %v is after to, %v", from, to)
	}

	return bson.M{"_id": bson.M{"$gte": NewULIDBSON(lower), "$lte": NewULIDBSON(upper)}}, nil
}

func (mg *Mongodb) checkConnected() error {
	if mg.client == nil || mg.db == nil {
		return NotConnectedError
	}

	return nil
}

// createIndices creates the indices which are not yet in the collection;
// existing indices of the same name are kept as they are.
func (mg *Mongodb) createIndices(ctx context.Context, col string, models []mongo.IndexModel) error {
	iv := mg.db.Collection(col).Indexes()

	cursor, err := iv.List(ctx)
	if err != nil {
		return err
	}

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return err
	}

	existings := map[string]struct{}{}
	for _, r := range results {
		if name, ok := r["name"].(string); ok {
			existings[name] = struct{}{}
		}
	}

	missings := MissingIndexModels(models, existings)
	if len(missings) < 1 {
		return nil
	}

	if _, err := iv.CreateMany(ctx, missings); err != nil {
		return xerrors.Errorf("failed to create indices: %w", err)
	}

	mg.Log().Debug().Int("indices", len(missings)).Str("collection", col).Msg("indices created")

	return nil
}

func MissingIndexModels(models []mongo.IndexModel, existings map[string]struct{}) []mongo.IndexModel {
	var missings []mongo.IndexModel
	for i := range models {
		m := models[i]
		if m.Options != nil && m.Options.Name != nil {
			if _, found := existings[*m.Options.Name]; found {
				continue
			}
		}

		missings = append(missings, m)
	}

	return missings
}
