package cmds

import (
	"context"
	"io"
	"runtime"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	mitumcmds "github.com/spikeekips/mitum/launch/cmds"
	"github.com/spikeekips/mitum/util"
	"github.com/spikeekips/mitum/util/logging"
	"golang.org/x/xerrors"

	"github.com/spikeekips/ulidcodec/config"
	"github.com/spikeekips/ulidcodec/storage"
	"github.com/spikeekips/ulidcodec/ulid"
)

type GenerateCommand struct {
	*logging.Logging
	*mitumcmds.LogFlags
	Design   mitumcmds.FileLoad `arg:"" name:"design" optional:"" help:"design file"`
	Count    int                `name:"count" short:"n" help:"number of ulids"`
	At       string             `name:"at" help:"timestamp, RFC3339 or epoch milliseconds"`
	Format   string             `name:"format" help:"output format; canonical, hex or both"`
	Template string             `name:"template" help:"output template"`
	Storage  string             `name:"storage" help:"mongodb uri to store generated ulids"`
	out      io.Writer
}

func NewGenerateCommand() (GenerateCommand, error) {
	cmd := GenerateCommand{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "command-generate")
		}),
		LogFlags: &mitumcmds.LogFlags{},
	}

	return cmd, nil
}

func (cmd *GenerateCommand) Run(version util.Version) error {
	if err := setupCommand(cmd.Logging, cmd.LogFlags, version); err != nil {
		return err
	}

	cmd.Log().Debug().Interface("flags", cmd).Msg("flags parsed")

	return runWithProcesses(cmd.Logging, cmd.flags(), cmd.generate)
}

func (cmd *GenerateCommand) flags() map[string]interface{} {
	return map[string]interface{}{
		"Design":   []byte(cmd.Design),
		"Count":    cmd.Count,
		"At":       cmd.At,
		"Format":   cmd.Format,
		"Template": cmd.Template,
		"Storage":  cmd.Storage,
	}
}

func (cmd *GenerateCommand) generate(ctx context.Context) error {
	var design config.Design
	if err := config.LoadDesignContextValue(ctx, &design); err != nil {
		return err
	}

	output, err := NewOutput(design.Format, design.Template)
	if err != nil {
		return err
	}

	ids, err := GenerateULIDs(ctx, design.Input(), design.Count)
	if err != nil {
		return err
	}

	cmd.Log().Debug().Int("count", len(ids)).Msg("ulids generated")

	if err := output.Write(outputWriter(cmd.out), ids); err != nil {
		return xerrors.Errorf("failed to write ulids: %w", err)
	}

	var mg *storage.Mongodb
	switch err := storage.LoadMongodbContextValue(ctx, &mg); {
	case err == nil:
		return mg.AddULIDs(ctx, ids)
	case errors.Is(err, util.ContextValueNotFoundError):
		return nil
	default:
		return err
	}
}

// GenerateULIDs generates n ULIDs concurrently from the same input; the
// result is sorted.
func GenerateULIDs(ctx context.Context, in ulid.Input, n int) ([]ulid.ULID, error) {
	if n < 1 {
		return nil, xerrors.Errorf("count should be over zero, %d", n)
	}

	ids := make([]ulid.ULID, n)
	if err := RunWorkers(ctx, n, runtime.GOMAXPROCS(0), func(_ context.Context, i int) error {
		id, err := ulid.ParseAny(in)
		if err != nil {
			return err
		}

		ids[i] = id

		return nil
	}); err != nil {
		return nil, err
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Compare(ids[j]) < 0
	})

	return ids, nil
}
