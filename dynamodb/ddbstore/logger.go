package ddbstore

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// badgerLogger routes BadgerDB's printf-style logging into zap.
type badgerLogger struct {
	log *zap.Logger
}

var _ badger.Logger = badgerLogger{}

func newBadgerLogger(l *zap.Logger) badgerLogger {
	return badgerLogger{log: l.Named("badger").WithOptions(zap.AddCallerSkip(1))}
}

// Badger terminates most messages with a newline.
func msg(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

func (l badgerLogger) Errorf(format string, args ...any) { l.log.Error(msg(format, args)) }
func (l badgerLogger) Warningf(format string, args ...any) { l.log.Warn(msg(format, args)) }
func (l badgerLogger) Debugf(format string, args ...any) { l.log.Debug(msg(format, args)) }

// Infof logs at debug level: Badger's info output is startup and compaction chatter.
func (l badgerLogger) Infof(format string, args ...any) { l.log.Debug(msg(format, args)) }
