package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts-auth/internal/shared/model"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"empty", "", "", false},
		{"basic auth", "Basic dXNlcjpwYXNz", "", false},
		{"scheme only", "Bearer", "", false},
		{"blank token", "Bearer   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := bearerToken(r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMiddleware(t *testing.T) {
	tokens := newTestIssuer(t)
	valid, err := tokens.Issue("acc-1", model.AccountKindUser)
	require.NoError(t, err)

	expiredIssuer := newTestIssuer(t)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue("acc-1", model.AccountKindUser)
	require.NoError(t, err)

	var gotClaims *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := Middleware(tokens)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + valid, http.StatusNoContent},
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Token " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusForbidden},
		{"expired token", "Bearer " + expired, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil
			r := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusNoContent {
				assert.Empty(t, w.Body.String())
				assert.Nil(t, gotClaims)
				return
			}
			require.NotNil(t, gotClaims)
			assert.Equal(t, "acc-1", gotClaims.Subject)
			assert.Equal(t, model.AccountKindUser, gotClaims.Kind)
		})
	}
}
