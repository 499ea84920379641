package service

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/study-manager/study-manager/app/core"
)

type Options struct {
	ConfigPath string
	EnvFile    string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	// Add flags for generic options
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config, read STUDY_MANAGER_* variables when empty")
	flagSet.StringVar(&o.EnvFile, "env-file", "", "load environment variables from the given file before reading config")
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "study manager http service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	if err := core.LoadEnvFile(opts.EnvFile); err != nil {
		return err
	}
	cfg, err := core.LoadBaseConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	app, err := core.SetupCore(cfg)
	if err != nil {
		return err
	}
	return serve(app)
}
