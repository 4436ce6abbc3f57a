// Package logging routes diagnostics to a rotating file so stdout stays
// reserved for command output.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	LogFileName string
	LogLevel    string
	// LogToStderr mirrors the file to stderr (--verbose)
	LogToStderr bool
	JSON        bool
}

// Setup configures the global logrus logger. The returned closer flushes the
// rotating file and is safe to call when no file is in use.
func Setup(params SetupParams) io.Closer {
	if params.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		if params.LogToStderr {
			logrus.SetOutput(os.Stderr)
		} else {
			logrus.SetOutput(io.Discard)
		}
		return nopCloser{}
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}
	if err := os.MkdirAll(filepath.Dir(params.LogFileName), 0755); err != nil {
		logrus.SetOutput(os.Stderr)
		logrus.Errorf("create log dir: %s", err)
		return nopCloser{}
	}

	lj := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		LocalTime:  true,
		Compress:   true,
	}
	if params.LogToStderr {
		logrus.SetOutput(io.MultiWriter(lj, os.Stderr))
	} else {
		logrus.SetOutput(lj)
	}
	return lj
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
