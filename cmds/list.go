package cmds

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	mitumcmds "github.com/spikeekips/mitum/launch/cmds"
	"github.com/spikeekips/mitum/util"
	"github.com/spikeekips/mitum/util/logging"
	"golang.org/x/xerrors"

	"github.com/spikeekips/ulidcodec/config"
	"github.com/spikeekips/ulidcodec/storage"
	"github.com/spikeekips/ulidcodec/ulid"
)

// RecordReader reads the stored ulids; *storage.Mongodb is the RecordReader of
// the commands.
type RecordReader interface {
	Find(context.Context, ulid.ULID) (storage.Record, bool, error)
	Range(context.Context, time.Time, time.Time, int64) ([]storage.Record, error)
}

var _ RecordReader = (*storage.Mongodb)(nil)

type ListCommand struct {
	*logging.Logging
	*mitumcmds.LogFlags
	Storage  string `name:"storage" help:"mongodb uri of stored ulids"`
	From     string `name:"from" help:"from, RFC3339 or epoch milliseconds; default is epoch"`
	To       string `name:"to" help:"to, RFC3339 or epoch milliseconds; default is the last ulid time"`
	Limit    int64  `name:"limit" help:"maximum number of ulids"`
	Format   string `name:"format" help:"output format; canonical, hex or both"`
	Template string `name:"template" help:"output template"`
	out      io.Writer
}

func NewListCommand() (ListCommand, error) {
	return ListCommand{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "command-list")
		}),
		LogFlags: &mitumcmds.LogFlags{},
	}, nil
}

func (cmd *ListCommand) Run(version util.Version) error {
	if err := setupCommand(cmd.Logging, cmd.LogFlags, version); err != nil {
		return err
	}

	return runWithProcesses(cmd.Logging, storageFlags(cmd.Storage, cmd.Format, cmd.Template), func(ctx context.Context) error {
		return withStorageOutput(ctx, func(reader RecordReader, output Output) error {
			return cmd.list(ctx, reader, output, outputWriter(cmd.out))
		})
	})
}

// timeRange returns the inclusive range of ulid times.
func (cmd *ListCommand) timeRange() (time.Time, time.Time, error) {
	from, to := time.UnixMilli(0), time.UnixMilli(int64(ulid.MaxTimestamp))

	if len(cmd.From) > 0 {
		if t, err := config.ParseTimeInput(cmd.From); err != nil {
			return from, to, xerrors.Errorf("invalid from: %w", err)
		} else {
			from = t
		}
	}

	if len(cmd.To) > 0 {
		if t, err := config.ParseTimeInput(cmd.To); err != nil {
			return from, to, xerrors.Errorf("invalid to: %w", err)
		} else {
			to = t
		}
	}

	return from, to, nil
}

func (cmd *ListCommand) list(ctx context.Context, reader RecordReader, output Output, w io.Writer) error {
	if cmd.Limit < 0 {
		return xerrors.Errorf("limit should not be negative, %d", cmd.Limit)
	}

	from, to, err := cmd.timeRange()
	if err != nil {
		return err
	}

	records, err := reader.Range(ctx, from, to, cmd.Limit)
	if err != nil {
		return xerrors.Errorf("failed to list ulids: %w", err)
	}

	cmd.Log().Debug().Time("from", from).Time("to", to).Int("records", len(records)).Msg("ulids listed")

	ids := make([]ulid.ULID, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}

	return output.Write(w, ids)
}

type FindCommand struct {
	*logging.Logging
	*mitumcmds.LogFlags
	Input    string `arg:"" name:"input" help:"ulid or 32 hex digits"`
	Storage  string `name:"storage" help:"mongodb uri of stored ulids"`
	Format   string `name:"format" help:"output format; canonical, hex or both"`
	Template string `name:"template" help:"output template"`
	out      io.Writer
}

func NewFindCommand() (FindCommand, error) {
	return FindCommand{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "command-find")
		}),
		LogFlags: &mitumcmds.LogFlags{},
	}, nil
}

func (cmd *FindCommand) Run(version util.Version) error {
	if err := setupCommand(cmd.Logging, cmd.LogFlags, version); err != nil {
		return err
	}

	return runWithProcesses(cmd.Logging, storageFlags(cmd.Storage, cmd.Format, cmd.Template), func(ctx context.Context) error {
		return withStorageOutput(ctx, func(reader RecordReader, output Output) error {
			return cmd.find(ctx, reader, output, outputWriter(cmd.out))
		})
	})
}

func (cmd *FindCommand) find(ctx context.Context, reader RecordReader, output Output, w io.Writer) error {
	in := ulid.ParseInput(cmd.Input)
	switch in.Kind() {
	case ulid.InputString, ulid.InputBytes:
	default:
		return xerrors.Errorf("ulid or 32 hex digits expected, not %s input", in.Kind())
	}

	id, err := ulid.ParseAny(in)
	if err != nil {
		return err
	}

	record, found, err := reader.Find(ctx, id)
	switch {
	case err != nil:
		return xerrors.Errorf("failed to find ulid: %w", err)
	case !found:
		return xerrors.Errorf("%s: %w", id, storage.NotFoundError)
	}

	cmd.Log().Debug().Str("ulid", id.String()).Time("created_at", record.CreatedAt).Msg("ulid found")

	return output.Write(w, []ulid.ULID{record.ID})
}

func storageFlags(uri, format, tmpl string) map[string]interface{} {
	return map[string]interface{}{
		"Storage":  uri,
		"Format":   format,
		"Template": tmpl,
	}
}

func withStorageOutput(ctx context.Context, f func(RecordReader, Output) error) error {
	var design config.Design
	if err := config.LoadDesignContextValue(ctx, &design); err != nil {
		return err
	}

	mg, err := loadStorage(ctx)
	if err != nil {
		return err
	}

	output, err := NewOutput(design.Format, design.Template)
	if err != nil {
		return err
	}

	return f(mg, output)
}
