package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"accounts-auth/internal/shared/model"
)

// ErrInvalidToken 令牌无效（签名错误、格式错误或已过期）
var ErrInvalidToken = errors.New("invalid token")

// Claims JWT 声明
type Claims struct {
	jwt.RegisteredClaims
	Kind model.AccountKind `json:"kind"`
}

// TokenIssuer 签发与校验 HS256 令牌
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer 创建 TokenIssuer
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token issuer: empty signing secret")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token issuer: ttl must be positive, got %s", ttl)
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue 为指定账号签发令牌，过期时间为签发时间 + TTL
func (ti *TokenIssuer) Issue(subject string, kind model.AccountKind) (string, error) {
	now := ti.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
		Kind: kind,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify 解析并验证令牌，任何失败都包装为 ErrInvalidToken
func (ti *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || !claims.Kind.Valid() {
		return nil, fmt.Errorf("%w: missing subject or kind", ErrInvalidToken)
	}
	return claims, nil
}
