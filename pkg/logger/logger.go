package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const timestampFormat = "2006-01-02 15:04:05"

var (
	prefixLen = 15
)

/* Public */

// Init configures the global logrus logger.
// Verbosity 0 is info, 1 debug and 2 or more trace.
// A non-empty logFile additionally writes rotated, uncoloured output to disk.
func Init(logFile string, verbosity int) error {
	logrus.SetLevel(levelFor(verbosity))

	var w io.Writer = os.Stderr
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}

		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    5,
			MaxAge:     14,
			MaxBackups: 5,
		})
	}

	logrus.SetOutput(w)
	logrus.SetFormatter(&prefixed.TextFormatter{
		ForceColors:     logFile == "",
		DisableColors:   logFile != "",
		ForceFormatting: true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})

	return nil
}

func GetLogger(prefix string) *logrus.Entry {
	if len(prefix) > prefixLen {
		prefixLen = len(prefix)
	}

	return logrus.WithFields(logrus.Fields{"prefix": fmt.Sprintf("%-*s", prefixLen, prefix)})
}

/* Private */

func levelFor(verbosity int) logrus.Level {
	switch {
	case verbosity <= 0:
		return logrus.InfoLevel
	case verbosity == 1:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
