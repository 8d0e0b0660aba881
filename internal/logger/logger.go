package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDirName    = "logs"
	defaultLogPrefix     = "alipay"
	defaultLogMaxSizeMB  = 100
	defaultLogMaxBackups = 7
	defaultLogMaxAgeDays = 30
	dayLayout            = "20060102"
)

// Options 日志输出配置
type Options struct {
	Dir        string
	Prefix     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Console 为 true 时同时输出到 stdout
	Console bool
}

// L 全局结构化日志实例
var L *zap.Logger

var (
	fallbackOnce sync.Once
	fallbackLog  *zap.Logger
)

// Init 初始化全局日志
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	if L == nil {
		L = fallbackLogger()
	}
	zap.ReplaceGlobals(L)
	return L
}

// New 创建日志实例：控制台 + 按天滚动的文件
func New(mode string, options Options) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if strings.EqualFold(strings.TrimSpace(mode), "debug") {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	encoderConfig := newEncoderConfig()

	cores := make([]zapcore.Core, 0, 2)
	if options.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	writer, err := newDailyWriter(options, time.Now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed, fallback to stdout: %v\n", err)
		if !options.Console {
			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(os.Stdout),
				level,
			))
		}
	} else {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(writer),
			level,
		))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

// StdLogger 返回兼容标准库 log 的 logger
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Z 返回可用的结构化日志实例
func Z() *zap.Logger {
	if L != nil {
		return L
	}
	return fallbackLogger()
}

// S 返回可用的 SugaredLogger
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW 返回带上下文字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

// Debugw 输出 debug 级别日志
func Debugw(message string, kv ...interface{}) {
	S().Debugw(message, kv...)
}

// Infow 输出 info 级别日志
func Infow(message string, kv ...interface{}) {
	S().Infow(message, kv...)
}

// Warnw 输出 warn 级别日志
func Warnw(message string, kv ...interface{}) {
	S().Warnw(message, kv...)
}

// Errorw 输出 error 级别日志
func Errorw(message string, kv ...interface{}) {
	S().Errorw(message, kv...)
}

func newEncoderConfig() zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return encoderConfig
}

func fallbackLogger() *zap.Logger {
	fallbackOnce.Do(func() {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(newEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zap.NewAtomicLevelAt(zap.InfoLevel),
		)
		fallbackLog = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	})
	return fallbackLog
}

// dailyWriter 每天切换到 <prefix>_YYYYMMDD.log，单日文件内由 lumberjack 按大小滚动，
// 切换时删除超过 MaxAgeDays 的旧日文件
type dailyWriter struct {
	mu      sync.Mutex
	dir     string
	options Options
	now     func() time.Time
	day     string
	current *lumberjack.Logger
}

func newDailyWriter(options Options, now func() time.Time) (*dailyWriter, error) {
	dir, err := resolveLogDir(options)
	if err != nil {
		return nil, err
	}
	w := &dailyWriter{dir: dir, options: options, now: now}
	if err := ensureLogFileWritable(w.pathFor(now().Format(dayLayout))); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *dailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()
	day := now.Format(dayLayout)
	if w.current == nil || day != w.day {
		if w.current != nil {
			_ = w.current.Close()
		}
		w.current = w.newLumberjack(day)
		w.day = day
		w.pruneExpired(now)
	}
	return w.current.Write(p)
}

// pruneExpired 删除超过 MaxAgeDays 的历史日文件（含 lumberjack 备份）
func (w *dailyWriter) pruneExpired(now time.Time) {
	maxAge := normalizePositiveInt(w.options.MaxAgeDays, defaultLogMaxAgeDays)
	y, m, d := now.Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -maxAge)

	prefix := w.prefix() + "_"
	matches, err := filepath.Glob(filepath.Join(w.dir, prefix+"*.log*"))
	if err != nil {
		return
	}
	for _, path := range matches {
		name := strings.TrimPrefix(filepath.Base(path), prefix)
		if len(name) < len(dayLayout) {
			continue
		}
		fileDay, err := time.ParseInLocation(dayLayout, name[:len(dayLayout)], now.Location())
		if err != nil || !fileDay.Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "remove expired log %s failed: %v\n", path, err)
		}
	}
}

func (w *dailyWriter) Sync() error {
	return nil
}

func (w *dailyWriter) newLumberjack(day string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   w.pathFor(day),
		MaxSize:    normalizePositiveInt(w.options.MaxSizeMB, defaultLogMaxSizeMB),
		MaxBackups: normalizePositiveInt(w.options.MaxBackups, defaultLogMaxBackups),
		MaxAge:     normalizePositiveInt(w.options.MaxAgeDays, defaultLogMaxAgeDays),
		Compress:   w.options.Compress,
		LocalTime:  true,
	}
}

func (w *dailyWriter) pathFor(day string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.log", w.prefix(), day))
}

func (w *dailyWriter) prefix() string {
	if prefix := strings.TrimSpace(w.options.Prefix); prefix != "" {
		return prefix
	}
	return defaultLogPrefix
}

func resolveLogDir(options Options) (string, error) {
	dir := strings.TrimSpace(options.Dir)
	if dir == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir failed: %w", err)
		}
		dir = filepath.Join(workDir, defaultLogDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir failed: %w", err)
	}
	return dir, nil
}

func ensureLogFileWritable(logFilePath string) error {
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file failed: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close log file failed: %w", err)
	}
	return nil
}

func normalizePositiveInt(value int, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
