// Package slogger provides the single structured-logging constructor used
// throughout the core, the way the teacher's pkg/ignite.NewInstance calls
// a logger.New(service) that builds a *zap.SugaredLogger per component.
package slogger

import "go.uber.org/zap"

// New builds a production-configured *zap.SugaredLogger named name,
// suitable for threading through a Config struct.
func New(name string) *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		// zap.NewProduction only fails on a broken encoder/sink config,
		// which never happens with the default configuration it builds
		// internally; fall back to a no-op logger rather than panic.
		return zap.NewNop().Sugar().Named(name)
	}
	return logger.Sugar().Named(name)
}

// Nop returns a logger that discards everything, for tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
