package cli

import (
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

// LevelFlag adds the pflag.Value interface to a zapcore.Level.
type LevelFlag zapcore.Level

var _ pflag.Value = (*LevelFlag)(nil)

// Set is part of the pflag.Value interface.
func (v *LevelFlag) Set(arg string) error {
	return (*zapcore.Level)(v).Set(arg)
}

// String is part of the pflag.Value interface.
func (v *LevelFlag) String() string {
	return (*zapcore.Level)(v).String()
}

// Type is part of the pflag.Value interface.
func (v *LevelFlag) Type() string {
	return "cli.LevelFlag"
}

// Level returns the wrapped zap level.
func (v LevelFlag) Level() zapcore.Level {
	return zapcore.Level(v)
}
