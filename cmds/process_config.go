package cmds

import (
	"context"

	"github.com/spikeekips/mitum/launch/pm"
	"github.com/spikeekips/mitum/util/logging"
	"gopkg.in/yaml.v3"

	"github.com/spikeekips/ulidcodec/config"
)

const ProcessNameConfig = "config"

var ProcessorConfig pm.Process

func init() {
	if i, err := pm.NewProcess(ProcessNameConfig, nil, ProcessConfig); err != nil {
		panic(err)
	} else {
		ProcessorConfig = i
	}
}

func ProcessConfig(ctx context.Context) (context.Context, error) {
	var log *logging.Logging
	if err := config.LoadLogContextValue(ctx, &log); err != nil {
		return ctx, err
	}

	var flags map[string]interface{}
	if err := config.LoadFlagsContextValue(ctx, &flags); err != nil {
		return ctx, err
	}

	var designYAML config.DesignYAML
	if b, ok := flags["Design"].([]byte); ok && len(b) > 0 {
		if err := yaml.Unmarshal(b, &designYAML); err != nil {
			return ctx, err
		}
	}

	overrideDesignYAML(&designYAML, flags)

	var design config.Design
	if de, err := designYAML.Merge(); err != nil {
		return ctx, err
	} else if err := de.IsValid(nil); err != nil {
		return ctx, err
	} else {
		design = de
	}

	log.Log().Debug().Interface("design", design).Msg("design loaded")

	return context.WithValue(ctx, config.ContextValueDesign, design), nil
}

// overrideDesignYAML applies the command line flags over the design file.
func overrideDesignYAML(de *config.DesignYAML, flags map[string]interface{}) {
	if i, ok := flags["Storage"].(string); ok && len(i) > 0 {
		de.Storage = &i
	}

	if i, ok := flags["Format"].(string); ok && len(i) > 0 {
		de.Format = &i
	}

	if i, ok := flags["Template"].(string); ok && len(i) > 0 {
		de.Template = &i
	}

	if i, ok := flags["Count"].(int); ok && i != 0 {
		de.Count = &i
	}

	if i, ok := flags["At"].(string); ok && len(i) > 0 {
		de.At = i
	}
}
