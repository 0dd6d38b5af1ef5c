// Package logging 结构化日志
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ContextKey 上下文键类型
type ContextKey string

const RequestIDKey ContextKey = "request_id"

// Logger 结构化日志器
type Logger struct {
	*slog.Logger
}

// Config 日志配置
type Config struct {
	Level     string `json:"level"`
	Format    string `json:"format"` // json or text
	Component string `json:"component"`
}

// ParseLevel 解析日志级别，无法识别时为 info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New 创建写入 w 的日志器
func New(cfg Config, w io.Writer) *Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler).With(slog.String("component", cfg.Component))}
}

// Default 创建默认日志器（LOG_LEVEL / LOG_FORMAT 环境变量）
func Default(component string) *Logger {
	return New(Config{
		Level:     os.Getenv("LOG_LEVEL"),
		Format:    os.Getenv("LOG_FORMAT"),
		Component: component,
	}, os.Stdout)
}

// WithContext 从上下文提取请求信息
func (l *Logger) WithContext(ctx context.Context) *Logger {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok || id == "" {
		return l
	}
	return &Logger{Logger: l.Logger.With(slog.String("request_id", id))}
}

// HTTPRequestLog HTTP 请求日志，5xx 记为 error
func (l *Logger) HTTPRequestLog(method, path string, status int, duration time.Duration, clientIP string) {
	attrs := []any{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
		slog.String("client_ip", clientIP),
	}
	if status >= 500 {
		l.Logger.Error("HTTP request", attrs...)
		return
	}
	l.Logger.Info("HTTP request", attrs...)
}
