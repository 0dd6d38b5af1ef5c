package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"accounts-auth/internal/shared/model"
)

// AttemptRecorder 记录认证尝试结果（由 server 的 Prometheus 指标实现）
type AttemptRecorder interface {
	RecordAuthAttempt(kind, operation, result string)
}

// Handler 认证 HTTP 处理器
type Handler struct {
	service  *Service
	tokens   *TokenIssuer
	recorder AttemptRecorder
}

// NewHandler 创建认证处理器，recorder 可为 nil
func NewHandler(service *Service, tokens *TokenIssuer, recorder AttemptRecorder) *Handler {
	return &Handler{service: service, tokens: tokens, recorder: recorder}
}

// RegisterRoutes 注册认证相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /registration", h.register(model.AccountKindUser))
	mux.HandleFunc("POST /login", h.login(model.AccountKindUser))
	mux.HandleFunc("POST /admin/registration", h.register(model.AccountKindAdmin))
	mux.HandleFunc("POST /admin/login", h.login(model.AccountKindAdmin))
	mux.Handle("GET /me", Middleware(h.tokens)(http.HandlerFunc(h.Me)))
}

// ============================================================================
// 请求/响应类型
// ============================================================================

type registerResponse struct {
	Msg  string         `json:"msg"`
	User *model.Account `json:"user"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ============================================================================
// Handlers
// ============================================================================

// register 注册指定类型账号
func (h *Handler) register(kind model.AccountKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.record(kind, "register", "invalid")
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		account, err := h.service.Register(r.Context(), kind, req)
		if err != nil {
			h.record(kind, "register", resultFor(err))
			h.fail(w, "register", err)
			return
		}

		h.record(kind, "register", "success")
		writeJSON(w, http.StatusOK, registerResponse{
			Msg:  string(kind) + " registered successfully",
			User: account,
		})
	}
}

// login 指定类型账号登录
func (h *Handler) login(kind model.AccountKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.record(kind, "login", "invalid")
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		token, _, err := h.service.Login(r.Context(), kind, req)
		if err != nil {
			h.record(kind, "login", resultFor(err))
			h.fail(w, "login", err)
			return
		}

		h.record(kind, "login", "success")
		writeJSON(w, http.StatusOK, loginResponse{
			Message: "login successful",
			Token:   token,
		})
	}
}

// Me 获取当前账号信息
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	account, err := h.service.Account(r.Context(), claims)
	if err != nil {
		h.fail(w, "me", err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// ============================================================================
// 工具函数
// ============================================================================

// fail 写入错误响应，500 类错误记录原因
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[auth.%s] %v", op, err)
	}
	writeError(w, status, PublicMessage(err))
}

func (h *Handler) record(kind model.AccountKind, op, result string) {
	if h.recorder != nil {
		h.recorder.RecordAuthAttempt(string(kind), op, result)
	}
}

// resultFor 将错误归类为指标标签
func resultFor(err error) string {
	switch ErrorCode(err) {
	case CodeValidationFailed:
		return "invalid"
	case CodeAlreadyExists:
		return "conflict"
	case CodeNotFound:
		return "not_found"
	case CodeInvalidCredentials:
		return "unauthorized"
	default:
		return "error"
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
