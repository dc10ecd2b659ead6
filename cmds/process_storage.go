package cmds

import (
	"context"
	"time"

	"github.com/spikeekips/mitum/launch/pm"
	"github.com/spikeekips/mitum/util/logging"
	"golang.org/x/xerrors"

	"github.com/spikeekips/ulidcodec/config"
	"github.com/spikeekips/ulidcodec/storage"
)

const (
	ProcessNameStorage   = "storage"
	HookNameCloseStorage = "close_storage"
)

var ProcessorStorage pm.Process

func init() {
	if i, err := pm.NewProcess(
		ProcessNameStorage,
		[]string{ProcessNameConfig},
		ProcessStorage,
	); err != nil {
		panic(err)
	} else {
		ProcessorStorage = i
	}
}

func ProcessStorage(ctx context.Context) (context.Context, error) {
	var log *logging.Logging
	if err := config.LoadLogContextValue(ctx, &log); err != nil {
		return ctx, err
	}

	var design config.Design
	if err := config.LoadDesignContextValue(ctx, &design); err != nil {
		return ctx, err
	}

	if !design.HasStorage() {
		log.Log().Debug().Msg("storage not set")

		return ctx, nil
	}

	log.Log().Debug().
		Str("mongodb", design.Storage.String()).
		Str("db", design.Storage.Database).
		Msg("trying to connect mongodb")

	connCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	mg := storage.NewMongodb(design.Storage)
	_ = mg.SetLogging(log)

	if err := mg.Connect(connCtx); err != nil {
		return ctx, xerrors.Errorf("failed to connect mongodb: %w", err)
	} else if err := mg.Initialize(connCtx); err != nil {
		return ctx, xerrors.Errorf("failed to initialize mongodb: %w", err)
	} else {
		log.Log().Debug().Msg("mongodb connected")

		return context.WithValue(ctx, storage.ContextValueMongodb, mg), nil
	}
}

func HookCloseStorage(ctx context.Context) (context.Context, error) {
	var log *logging.Logging
	if err := config.LoadLogContextValue(ctx, &log); err != nil {
		return ctx, err
	}

	var mg *storage.Mongodb
	if err := storage.LoadMongodbContextValue(ctx, &mg); err != nil {
		return ctx, nil
	}

	log.Log().Debug().Msg("trying to close mongodb")

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := mg.Close(closeCtx); err != nil {
		return ctx, xerrors.Errorf("failed to close mongodb: %w", err)
	}

	log.Log().Debug().Msg("mongodb closed")

	return ctx, nil
}
