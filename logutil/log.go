package logutil

import (
	"strings"

	"github.com/jose-ambrosioo/library-management-system/errs"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a configured level name, in any case, to a zap level.
// "warning" is accepted for warn. Anything else is an error rather than a silent default.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	}
	return zapcore.InfoLevel, errs.ErrLogLevel.FastGenByArgs(level)
}

// SetupLogger builds a logger from cfg and installs it as the global pingcap/log logger.
// The level in cfg is normalized to the name zap expects.
func SetupLogger(cfg *log.Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	cfg.Level = level.String()
	lg, p, err := log.InitLogger(cfg, zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return errs.ErrInitLogger.Wrap(err).FastGenWithCause()
	}
	log.ReplaceGlobals(lg, p)
	return nil
}

// LogPanic logs the panic reason and stack, then exit the process.
// Commonly used with a `defer`.
func LogPanic() {
	if e := recover(); e != nil {
		log.Fatal("panic", zap.Reflect("recover", e))
	}
}
