// Package server 提供 HTTP API 入口
//
// 文件组织：
//   - common.go: Handler 定义与通用工具函数
//   - handler.go: 路由配置与 CORS
//   - metrics.go: Prometheus 指标
package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"accounts-auth/internal/apiserver/auth"
	"accounts-auth/pkg/logging"
)

// Handler API 处理器
//
// Handler 是所有 HTTP API 的入口，负责：
//   - 路由请求到认证处理器
//   - 暴露健康检查与 Prometheus 指标
type Handler struct {
	auth     *auth.Handler
	registry *prometheus.Registry
	metrics  *Metrics
	logger   *logging.Logger
}

// NewHandler 创建 Handler 实例
func NewHandler(service *auth.Service, tokens *auth.TokenIssuer) *Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics("api", registry)

	return &Handler{
		auth:     auth.NewHandler(service, tokens, metrics),
		registry: registry,
		metrics:  metrics,
		logger:   logging.Default("api-server"),
	}
}

// SetLogger 替换访问日志使用的日志器
func (h *Handler) SetLogger(l *logging.Logger) {
	h.logger = l
}

// Index 根路径
//
// 路由: GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Hello World"))
}

// Health 健康检查接口
//
// 路由: GET /health
//
// 返回 {"status": "ok"} 表示服务正常运行。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
