package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Init configures the process logger. Production writes JSON at info level,
// every other environment writes text at debug level.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

func InitWithWriter(env string, w io.Writer) {
	if strings.EqualFold(env, "production") {
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	} else {
		log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(log)
}

func Debug(msg string, args ...any) { log.Debug(msg, args...) }

func Info(msg string, args ...any) { log.Info(msg, args...) }

func Warn(msg string, args ...any) { log.Warn(msg, args...) }

func Error(msg string, args ...any) { log.Error(msg, args...) }

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}
