// Package command implements the runedatagen CLI, which turns a directory
// of Unicode Character Database files into the serialized lookup tables
// embedded by the runes package.
package command

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/planetscale/runedata/go/cmd/runedatagen/cli"
)

var (
	log      *zap.Logger
	logLevel = cli.LevelFlag(zapcore.InfoLevel)

	Root = &cobra.Command{
		Use:   "runedatagen",
		Short: "Generates serialized code point lookup tables from UCD files.",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(logLevel.Level())
			log, err = cfg.Build()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
		SilenceUsage: true,
	}
)

func Log() *zap.Logger {
	if log == nil {
		panic("logger not initialized")
	}

	return log
}

func init() {
	Root.PersistentFlags().Var(&logLevel, "log-level", "Minimum level log messages are emitted at.")
}
