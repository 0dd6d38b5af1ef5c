package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost 默认 bcrypt 工作因子
const DefaultBcryptCost = 10

// PasswordHasher 密码哈希接口
type PasswordHasher interface {
	// Hash 生成加盐摘要，相同输入每次结果不同
	Hash(password string) (string, error)

	// Verify 校验密码与摘要是否匹配；摘要格式错误同样返回 false
	Verify(password, hash string) bool
}

// BcryptHasher 基于 bcrypt 的 PasswordHasher
type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher 创建 BcryptHasher，cost 为 0 时使用默认值
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash 使用 bcrypt 哈希密码
func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// Verify 验证密码
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
