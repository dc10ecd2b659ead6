package cmds

import (
	"io"
	"os"

	mitumcmds "github.com/spikeekips/mitum/launch/cmds"
	"github.com/spikeekips/mitum/util"
	"github.com/spikeekips/mitum/util/logging"
	"go.uber.org/automaxprocs/maxprocs"
)

// setupCommand prepares logging and checks version; logs go to stderr, so
// stdout only has the command output.
func setupCommand(l *logging.Logging, flags *mitumcmds.LogFlags, version util.Version) error {
	_, _ = maxprocs.Set(maxprocs.Logger(func(f string, s ...interface{}) {
		l.Log().Debug().Msgf(f, s...)
	}))

	i, err := mitumcmds.SetupLoggingFromFlags(flags, os.Stderr)
	if err != nil {
		return err
	}
	_ = l.SetLogging(i)

	if err := version.IsValid(nil); err != nil {
		return err
	}

	l.Log().Debug().Str("version", version.String()).Msg("command prepared")

	return nil
}

func outputWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}
