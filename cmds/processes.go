package cmds

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum/launch/pm"
	"github.com/spikeekips/mitum/util"
	"github.com/spikeekips/mitum/util/logging"
	"golang.org/x/xerrors"

	"github.com/spikeekips/ulidcodec/config"
	"github.com/spikeekips/ulidcodec/storage"
)

var (
	commandProcessors     []pm.Process
	StorageRequiredError                  = xerrors.New("storage is required")
	ContextValueExitError util.ContextKey = "exit_error"
)

func init() {
	commandProcessors = []pm.Process{
		ProcessorConfig,
		ProcessorStorage,
	}
}

// runWithProcesses runs the config and storage processes with the given flags,
// calls f with the prepared context and then runs the close hooks.
func runWithProcesses(
	l *logging.Logging,
	flags map[string]interface{},
	f func(context.Context) error,
) error {
	runProcesses, closeProcesses := prepareProcesses()

	ctx := context.Background()
	ctx = context.WithValue(ctx, config.ContextValueLog, l)
	ctx = context.WithValue(ctx, config.ContextValueFlags, flags)

	runProcesses.SetContext(ctx)
	_ = runProcesses.SetLogging(l)

	var exitError error
	if err := runProcesses.Run(); err != nil {
		exitError = err
	} else if err := f(runProcesses.Context()); err != nil {
		exitError = err
	}

	if exitError != nil {
		l.Log().Error().Err(exitError).Msg("failed to run command")
	}

	closeProcesses.SetContext(context.WithValue(runProcesses.Context(), ContextValueExitError, exitError))
	_ = closeProcesses.SetLogging(l)

	if err := closeProcesses.Run(); err != nil && exitError == nil {
		exitError = err
	}

	return exitError
}

func prepareProcesses() (*pm.Processes, *pm.Processes) {
	runProcesses := pm.NewProcesses()

	for _, p := range commandProcessors {
		if err := runProcesses.AddProcess(p, false); err != nil {
			panic(err)
		}
	}

	closeProcesses := pm.NewProcesses()

	closeHooks := []pm.Hook{
		pm.NewHook(pm.HookPrefixPost, pm.INITProcess, HookNameCloseStorage, HookCloseStorage),
		pm.NewHook(pm.HookPrefixPost, pm.INITProcess, HookNameExitWithError, HookExitWithError),
	}
	for i := range closeHooks {
		hook := closeHooks[i]
		if err := closeProcesses.AddHook(hook.Prefix, hook.Process, hook.Name, hook.F, true); err != nil {
			panic(err)
		}
	}

	return runProcesses, closeProcesses
}

const HookNameExitWithError = "exit_with_error"

// HookExitWithError returns the error of command, so the close processes end
// with it after the other hooks.
func HookExitWithError(ctx context.Context) (context.Context, error) {
	var exitError error
	switch err := util.LoadFromContextValue(ctx, ContextValueExitError, &exitError); {
	case err == nil:
		return ctx, exitError
	case errors.Is(err, util.ContextValueNotFoundError):
		return ctx, nil
	default:
		return ctx, err
	}
}

// loadStorage returns the connected storage; commands which read stored ulids
// fail without it.
func loadStorage(ctx context.Context) (*storage.Mongodb, error) {
	var mg *storage.Mongodb
	switch err := storage.LoadMongodbContextValue(ctx, &mg); {
	case err == nil:
		return mg, nil
	case errors.Is(err, util.ContextValueNotFoundError):
		return nil, StorageRequiredError
	default:
		return nil, err
	}
}
