package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	mitumcmds "github.com/spikeekips/mitum/launch/cmds"
	"github.com/spikeekips/mitum/util"

	"github.com/spikeekips/ulidcodec/cmds"
)

var (
	Version = "v0.0.0"
	options = []kong.Option{
		kong.Name("ulid"),
		kong.Description("generate and parse ulid"),
		mitumcmds.LogVars,
	}
)

type mainflags struct {
	Generate cmds.GenerateCommand `cmd:"" name:"generate" help:"generate new ulids"`
	Parse    cmds.ParseCommand    `cmd:"" name:"parse" help:"parse ulid"`
	Time     cmds.TimeCommand     `cmd:"" name:"time" help:"print the time of ulid"`
	List     cmds.ListCommand     `cmd:"" name:"list" help:"list stored ulids by time"`
	Find     cmds.FindCommand     `cmd:"" name:"find" help:"find stored ulid"`
	Version  struct{}             `cmd:"" name:"version" help:"print version"`
}

func main() {
	flags := mainflags{}
	if i, err := cmds.NewGenerateCommand(); err != nil {
		exit(err)
	} else {
		flags.Generate = i
	}

	if i, err := cmds.NewParseCommand(); err != nil {
		exit(err)
	} else {
		flags.Parse = i
	}

	if i, err := cmds.NewTimeCommand(); err != nil {
		exit(err)
	} else {
		flags.Time = i
	}

	if i, err := cmds.NewListCommand(); err != nil {
		exit(err)
	} else {
		flags.List = i
	}

	if i, err := cmds.NewFindCommand(); err != nil {
		exit(err)
	} else {
		flags.Find = i
	}

	ctx := kong.Parse(&flags, options...)

	version := util.Version(Version)
	if err := version.IsValid(nil); err != nil {
		ctx.FatalIfErrorf(err)
	}

	if ctx.Command() == "version" {
		_, _ = fmt.Fprintln(os.Stdout, version)

		os.Exit(0)
	}

	if err := ctx.Run(version); err != nil {
		ctx.FatalIfErrorf(err)
	}

	os.Exit(0)
}

func exit(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "error: %+v\n", err)

	os.Exit(1)
}
