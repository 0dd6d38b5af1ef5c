package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"accounts-auth/internal/apiserver/auth"
	"accounts-auth/internal/shared/eventbus"
	sqlitedriver "accounts-auth/internal/shared/storage/driver/sqlite"
	"accounts-auth/internal/shared/storage/repository"
	"accounts-auth/pkg/logging"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlitedriver.Open(":memory:")
	require.NoError(t, err)
	dialect := sqlitedriver.NewDialect()
	require.NoError(t, dialect.AutoMigrate(db))
	store := repository.NewStore(db, dialect)
	t.Cleanup(func() { store.Close() })

	tokens, err := auth.NewTokenIssuer("server-test-secret", time.Hour)
	require.NoError(t, err)
	svc := auth.NewService(store, auth.NewBcryptHasher(bcrypt.MinCost), tokens, eventbus.NewNoOpEventBus())

	srv := httptest.NewServer(NewHandler(svc, tokens).Router())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestRouter_IndexAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello World", readAll(t, resp))

	resp2, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, readAll(t, resp2))

	resp3, err := http.Get(srv.URL + "/unknown")
	require.NoError(t, err)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode)
}

// TestRouter_EndToEnd 注册 → 登录 → 受保护路由 → 指标
func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/registration", `{"username":"bob","email":"bob@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = post(t, srv.URL+"/registration", `{"username":"bob","email":"bob@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = post(t, srv.URL+"/login", `{"email":"bob@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = post(t, srv.URL+"/login", `{"email":"bob@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	me, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer me.Body.Close()
	assert.Equal(t, http.StatusOK, me.StatusCode)
	assert.Contains(t, readAll(t, me), `"email":"bob@x.com"`)

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	body := readAll(t, metrics)
	assert.Contains(t, body, `api_auth_attempts_total{kind="user",operation="register",result="success"} 1`)
	assert.Contains(t, body, `api_auth_attempts_total{kind="user",operation="register",result="conflict"} 1`)
	assert.Contains(t, body, `api_auth_attempts_total{kind="user",operation="login",result="unauthorized"} 1`)
	assert.Contains(t, body, `api_http_requests_total{method="POST",path="/registration",status="409"} 1`)
	assert.Contains(t, body, `api_http_requests_total{method="GET",path="/me",status="200"} 1`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/login", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/login", normalizePath("/login"))
	assert.Equal(t, "/admin/registration", normalizePath("/admin/registration"))
	assert.Equal(t, "other", normalizePath("/wp-admin/setup.php"))
}

func TestRouter_AccessLog(t *testing.T) {
	tokens, err := auth.NewTokenIssuer("server-test-secret", time.Hour)
	require.NoError(t, err)
	h := NewHandler(auth.NewService(nil, auth.NewBcryptHasher(bcrypt.MinCost), tokens, nil), tokens)
	var buf bytes.Buffer
	h.SetLogger(logging.New(logging.Config{Format: "json", Component: "api-server"}, &buf))

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, r)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "/health", entry["path"])
	assert.Equal(t, float64(200), entry["status"])

	// 未携带时自动生成
	w = httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
