package config

import (
	"context"

	"github.com/spikeekips/mitum/util"
	"github.com/spikeekips/mitum/util/logging"
)

var (
	ContextValueLog    util.ContextKey = "log"
	ContextValueDesign util.ContextKey = "design"
	ContextValueFlags  util.ContextKey = "flags"
)

func LoadLogContextValue(ctx context.Context, l **logging.Logging) error {
	return util.LoadFromContextValue(ctx, ContextValueLog, l)
}

func LoadDesignContextValue(ctx context.Context, l *Design) error {
	return util.LoadFromContextValue(ctx, ContextValueDesign, l)
}

func LoadFlagsContextValue(ctx context.Context, l *map[string]interface{}) error {
	return util.LoadFromContextValue(ctx, ContextValueFlags, l)
}
