// Package logging provides the process-wide structured logger used across
// the consensus packages. Call sites log with CPrint, passing a level and a
// LogFormat of extra fields, mirroring the logging calls sprinkled through
// the interpreter and block validator.
package logging

import (
	"os"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// Level is a coarse severity, ordered from least to most severe (the reverse
// of logrus.Level's numbering); logrusLevel maps each onto its logrus level.
type Level uint32

const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
)

var logrusLevel = map[Level]logrus.Level{
	TRACE: logrus.TraceLevel,
	DEBUG: logrus.DebugLevel,
	INFO:  logrus.InfoLevel,
	WARN:  logrus.WarnLevel,
	ERROR: logrus.ErrorLevel,
	FATAL: logrus.FatalLevel,
}

// LogFormat is a set of extra structured fields attached to a log line.
type LogFormat map[string]interface{}

var logger = logrus.New()

func init() {
	logger.SetLevel(logrus.InfoLevel)
	logger.SetOutput(os.Stdout)
}

// UseRotatingFile adds a hook that writes every level into dir, rotating
// hourly and keeping the last maxAgeHours files. Output to stdout continues;
// each call adds another hook.
func UseRotatingFile(dir string, maxAgeHours int) error {
	writer, err := rotatelogs.New(
		dir+"/node.%Y%m%d%H.log",
		rotatelogs.WithLinkName(dir+"/node.log"),
		rotatelogs.WithMaxAge(-1),
		rotatelogs.WithRotationCount(uint(maxAgeHours)),
	)
	if err != nil {
		return err
	}

	hook := lfshook.NewHook(lfshook.WriterMap{
		logrus.TraceLevel: writer,
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
	}, &logrus.TextFormatter{})
	logger.AddHook(hook)
	return nil
}

// SetLevel adjusts the minimum level that reaches any configured output.
func SetLevel(l Level) {
	logger.SetLevel(logrusLevel[l])
}

// CPrint emits msg at level l with the given structured fields attached.
func CPrint(l Level, msg string, fields LogFormat) {
	logger.WithFields(logrus.Fields(fields)).Log(logrusLevel[l], msg)
}
