package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/postgen/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	// An output directory wins over --config and always gets postgen.yaml.
	if i.Output != "" {
		return RunInit(filepath.Join(i.Output, config.DefaultConfigFiles[0]), i.Force)
	}
	if root.Config != "" {
		return RunInit(root.Config, i.Force)
	}
	return RunInit(config.DefaultConfigFiles[0], i.Force)
}

func RunInit(configPath string, force bool) error {
	_, _ = fmt.Fprintf(stdout, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(stdout, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(stdout, "initialized successfully")
	return nil
}
