package logsvc

import (
	"log"

	"github.com/trezcool/skillshare/core"
)

// ConsoleLogger writes to the standard logger only; meant for development and
// tests.
type ConsoleLogger struct {
	std     *log.Logger
	enabled bool
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger) *ConsoleLogger {
	return &ConsoleLogger{std: std, enabled: true}
}

func (l *ConsoleLogger) Enable(enabled bool) { l.enabled = enabled }

func (l *ConsoleLogger) log(level, msg string, args []interface{}) {
	if !l.enabled {
		return
	}
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *ConsoleLogger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *ConsoleLogger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *ConsoleLogger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", msg, args)
	l.std.Fatal(msg)
}
