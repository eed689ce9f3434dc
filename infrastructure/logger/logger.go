package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

type ctxKey struct{}

var logger = log.New()

func init() {
	logger.Out = output(os.Getenv("ENV"), os.Getenv("LOG_TO_FILE") == "true")
	logger.Formatter = formatter(os.Getenv("LOG_FORMAT"))
	logger.SetLevel(level(os.Getenv("LOG_LEVEL")))
}

// output prefers stdout (systemd/docker); LOG_TO_FILE=true writes to ./logs instead.
func output(env string, toFile bool) io.Writer {
	if !toFile {
		return os.Stdout
	}
	cwd, err := os.Getwd()
	if err != nil {
		return os.Stdout
	}
	logsDir := filepath.Join(cwd, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		log.Warnf("Failed to create logs directory %s: %v, falling back to stdout", logsDir, err)
		return os.Stdout
	}
	filePath := filepath.Join(logsDir, fmt.Sprintf("%s%s.log", time.Now().Format("2006-01-02"), env))
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		log.Warnf("Failed to open log file %s: %v, falling back to stdout", filePath, err)
		return os.Stdout
	}
	return f
}

func formatter(format string) log.Formatter {
	if format == "text" {
		return &log.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339Nano}
	}
	return &log.JSONFormatter{TimestampFormat: time.RFC3339Nano}
}

func level(name string) log.Level {
	if name == "" {
		return log.DebugLevel
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.DebugLevel
	}
	return lvl
}

// SetLevel changes the level after configuration has been loaded.
func SetLevel(name string) {
	logger.SetLevel(level(name))
}

func GetLogger() *log.Entry {
	return entry(2)
}

// FromContext is GetLogger plus the request id stored by WithRequestID.
func FromContext(ctx context.Context) *log.Entry {
	e := entry(2)
	if ctx == nil {
		return e
	}
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		e = e.WithField("request_id", id)
	}
	return e
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func entry(skip int) *log.Entry {
	function, file, line, _ := runtime.Caller(skip)
	functionObject := runtime.FuncForPC(function)
	name := ""
	if functionObject != nil {
		name = functionObject.Name()
	}
	return logger.WithFields(log.Fields{
		"function": name,
		"file":     file,
		"line":     line,
	})
}
