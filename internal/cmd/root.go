package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nushell-works/ulidkit/internal/config"
	"github.com/nushell-works/ulidkit/pkg/log"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

// Env groups what every command needs: resolved configuration, a logger, and
// the shared generator. Constructed once in main and threaded through.
type Env struct {
	Config config.Config
	Logger log.Logger
	Gen    *ulid.Generator
}

// NewRoot constructs the root command and registers all command groups.
func NewRoot(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:           "ulidkit",
		Short:         "Generate, validate, and batch-process ULIDs",
		Long:          "ulidkit is a generator, codec, and high-throughput batch processor for ULIDs: 128-bit, lexicographically sortable identifiers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyRootFlags(cmd, env)
		},
	}

	root.PersistentFlags().String("config", "", "config file (JSON or YAML)")
	root.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().String("log-format", "", "log format: text|json")

	root.AddCommand(
		newGenerateCommand(env),
		newGenerateStreamCommand(env),
		newValidateCommand(env),
		newParseCommand(env),
		newInspectCommand(env),
		newSortCommand(env),
		newStreamCommand(env),
		newEncodeCommand(),
		newDecodeCommand(),
		newTimeCommand(),
		newUUIDCommand(),
		newHashCommand(),
		newSecurityAdviceCommand(),
		newInfoCommand(),
	)

	return root
}

// applyRootFlags overlays the persistent flags onto the Env. Precedence is
// flag over env over file: --config re-loads the file and re-applies the env
// overlay, then explicit log flags win over both.
func applyRootFlags(cmd *cobra.Command, env *Env) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		config.FromEnv(&cfg)
		env.Config = cfg
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			env.Logger.SetLevel(level)
		}
	}
	if cmd.Flags().Changed("log-level") {
		env.Config.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		env.Config.LogFormat, _ = cmd.Flags().GetString("log-format")
	}

	if cmd.Flags().Changed("log-level") || cmd.Flags().Changed("log-format") {
		level, err := log.ParseLevel(env.Config.LogLevel)
		if err != nil {
			return err
		}
		var formatter log.Formatter = &log.TextFormatter{}
		if env.Config.LogFormat == "json" {
			formatter = &log.JSONFormatter{}
		}
		env.Logger = log.NewLogger(
			log.WithLevel(level),
			log.WithFormatter(formatter),
			log.WithOutput(log.NewConsoleOutput()),
		)
	}
	return nil
}
