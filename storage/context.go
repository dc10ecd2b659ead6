package storage

import (
	"context"

	"github.com/spikeekips/mitum/util"
)

var ContextValueMongodb util.ContextKey = "mongodb"

func LoadMongodbContextValue(ctx context.Context, l **Mongodb) error {
	return util.LoadFromContextValue(ctx, ContextValueMongodb, l)
}
