package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"accounts-auth/pkg/logging"
)

// Router 返回配置好的 HTTP 路由
//
// 路由规则：
//
// 基础:
//   - GET /        - Hello World
//   - GET /health  - 服务健康检查
//   - GET /metrics - Prometheus 指标
//
// 用户 (User):
//   - POST /registration - 注册
//   - POST /login        - 登录，返回令牌
//
// 管理员 (Admin):
//   - POST /admin/registration - 注册
//   - POST /admin/login        - 登录，返回令牌
//
// 受保护:
//   - GET /me - 当前账号（Authorization: Bearer <token>）
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", MetricsHandler(h.registry))

	h.auth.RegisterRoutes(mux)

	// 应用指标中间件
	apiHandler := h.metrics.MetricsMiddleware(mux)

	// 访问日志
	logged := h.accessLogMiddleware(apiHandler)

	// 应用 CORS 中间件
	return corsMiddleware(logged)
}

// accessLogMiddleware 为请求分配 X-Request-ID 并记录访问日志
func (h *Handler) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), logging.RequestIDKey, requestID)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		h.logger.WithContext(ctx).HTTPRequestLog(r.Method, r.URL.Path, wrapped.statusCode, time.Since(start), clientIP(r))
	})
}

// clientIP 取请求来源地址（不信任代理头）
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// corsMiddleware 添加 CORS 头支持跨域请求
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
