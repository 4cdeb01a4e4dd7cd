package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
}

var levelColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgHiBlack),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
	LevelFatal: color.New(color.FgHiRed, color.Bold),
}

// ParseLevel парсит уровень из конфигурации ("debug", "info", "warn", "error")
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
}

// Logger printf-логгер с уровнями. Пишет в файл без цвета и в консоль с цветным уровнем
type Logger struct {
	mu      sync.Mutex
	level   Level
	file    *os.File
	fileLog *log.Logger
	console io.Writer
}

// New создает логгер. Пустой путь к файлу отключает запись в файл
func New(file, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		level:   lvl,
		console: color.Output,
	}

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		l.file = f
		l.fileLog = log.New(f, "", 0)
	}

	return l, nil
}

// NewWithWriter создает логгер, пишущий только в w (без цвета)
func NewWithWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		level:   level,
		fileLog: log.New(w, "", 0),
	}
}

// Debug записывает debug сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, format, v...)
}

// Info записывает info сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, format, v...)
}

// Warn записывает warning сообщение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, format, v...)
}

// Error записывает error сообщение
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, format, v...)
}

// Fatal записывает fatal сообщение и завершает программу
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(LevelFatal, format, v...)
	l.Close()
	os.Exit(1)
}

// Close закрывает файл лога
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLog = nil
	return err
}

func (l *Logger) log(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	name := levelNames[level]
	msg := fmt.Sprintf(format, v...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLog != nil {
		l.fileLog.Printf("[%s] %s %s", timestamp, name, msg)
	}
	if l.console != nil {
		fmt.Fprintf(l.console, "[%s] %s %s\n", timestamp, levelColors[level].Sprint(name), msg)
	}
}
