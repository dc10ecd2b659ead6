package cmds

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	mitumcmds "github.com/spikeekips/mitum/launch/cmds"
	"github.com/spikeekips/mitum/util"
	"github.com/spikeekips/mitum/util/logging"

	"github.com/spikeekips/ulidcodec/ulid"
)

type ParseCommand struct {
	*logging.Logging
	*mitumcmds.LogFlags
	Input string `arg:"" name:"input" optional:"" help:"ulid, 32 hex digits, RFC3339 time or epoch milliseconds"`
	out   io.Writer
}

func NewParseCommand() (ParseCommand, error) {
	return ParseCommand{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "command-parse")
		}),
		LogFlags: &mitumcmds.LogFlags{},
	}, nil
}

func (cmd *ParseCommand) Run(version util.Version) error {
	if err := setupCommand(cmd.Logging, cmd.LogFlags, version); err != nil {
		return err
	}

	return cmd.run(outputWriter(cmd.out))
}

func (cmd *ParseCommand) run(w io.Writer) error {
	in := ulid.ParseInput(cmd.Input)

	cmd.Log().Debug().Str("input", in.String()).Str("kind", in.Kind().String()).Msg("trying to parse")

	id, err := ulid.ParseAny(in)
	if err != nil {
		return err
	}

	b := id.Bytes()

	_, err = fmt.Fprintf(w, `ulid:      %s
binary:    %s
timestamp: %d
time:      %s
`,
		id.String(),
		strings.ToUpper(hex.EncodeToString(b[:])),
		id.Timestamp(),
		id.Time().Format(TimeFormat),
	)

	return err
}

type TimeCommand struct {
	*logging.Logging
	*mitumcmds.LogFlags
	Input string `arg:"" name:"input" optional:"" help:"ulid or 32 hex digits"`
	out   io.Writer
}

func NewTimeCommand() (TimeCommand, error) {
	return TimeCommand{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "command-time")
		}),
		LogFlags: &mitumcmds.LogFlags{},
	}, nil
}

func (cmd *TimeCommand) Run(version util.Version) error {
	if err := setupCommand(cmd.Logging, cmd.LogFlags, version); err != nil {
		return err
	}

	return cmd.run(outputWriter(cmd.out))
}

func (cmd *TimeCommand) run(w io.Writer) error {
	t, err := ulid.ExtractTime(ulid.ParseInput(cmd.Input))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, t.Format(TimeFormat))

	return err
}
