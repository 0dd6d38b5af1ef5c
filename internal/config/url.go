package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// buildDatabaseURL 根据驱动类型构建数据库连接字符串
func buildDatabaseURL(db DatabaseConfig, driver string) string {
	switch driver {
	case DriverSQLite:
		dbPath := db.Path
		if dbPath == "" {
			dbPath = "accounts-auth.db"
		}
		return fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath)
	case DriverPostgres:
		return fmt.Sprintf("postgres://%s%s:%d/%s?sslmode=%s",
			userInfo(db.User, db.Password), db.Host, dbPort(db.Port, 5432), db.Name, db.SSLMode)
	default: // mongodb
		if db.URI != "" {
			return db.URI
		}
		return fmt.Sprintf("mongodb://%s%s:%d", userInfo(db.User, db.Password), db.Host, dbPort(db.Port, 27017))
	}
}

// dbPort 未配置端口时使用驱动默认端口
func dbPort(port, fallback int) int {
	if port == 0 {
		return fallback
	}
	return port
}

// userInfo 构建 "user:password@" 前缀，未配置用户时为空
func userInfo(user, password string) string {
	switch {
	case user == "":
		return ""
	case password == "":
		return user + "@"
	default:
		return user + ":" + password + "@"
	}
}

// detectDatabaseDriver 检测数据库驱动类型
// 优先级：显式 driver 字段 > DATABASE_URL 前缀自动检测 > 默认 mongodb
// 无法识别的显式 driver 原样返回，由 Validate 报错
func detectDatabaseDriver(driver, databaseURL string) string {
	if d := strings.ToLower(strings.TrimSpace(driver)); d != "" {
		return d
	}
	switch {
	case strings.HasPrefix(databaseURL, "file:") || strings.HasPrefix(databaseURL, "sqlite:") || databaseURL == ":memory:":
		return DriverSQLite
	case strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres
	default:
		return DriverMongoDB
	}
}

// buildRedisURL 构建 Redis 连接字符串
// URL 字段非空时直接使用；未启用时返回空字符串
func buildRedisURL(redis RedisConfig) string {
	if redis.URL != "" {
		return redis.URL
	}
	if !redis.Enabled {
		return ""
	}
	if redis.Password != "" {
		return fmt.Sprintf("redis://:%s@%s:%d/%d", redis.Password, redis.Host, redis.Port, redis.DB)
	}
	return fmt.Sprintf("redis://%s:%d/%d", redis.Host, redis.Port, redis.DB)
}

var credentialRe = regexp.MustCompile(`(://[^:/@]*:)([^@]+)(@)`)

// maskPassword 隐藏密码
func maskPassword(url string) string {
	return credentialRe.ReplaceAllString(url, "${1}***${3}")
}

// parseEnv 解析环境字符串
func parseEnv(env string) Environment {
	switch strings.ToLower(env) {
	case "test":
		return EnvTest
	case "prod", "production":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

// firstEnv 返回第一个非空的环境变量值（用于兼容多种变量名）
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// getEnv 获取环境变量，支持默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// String 返回配置摘要（隐藏密码，不包含签名密钥）
func (c *Config) String() string {
	redisURL := c.RedisURL
	if redisURL == "" {
		redisURL = "disabled"
	}
	configFile := c.ConfigFile
	if configFile == "" {
		configFile = "defaults"
	}
	return fmt.Sprintf("Config{Env: %s, File: %s, Port: %s, Driver: %s, DB: %s, Redis: %s, TokenTTL: %s, BcryptCost: %d}",
		c.Env, configFile, c.APIPort, c.DatabaseDriver, maskPassword(c.DatabaseURL), maskPassword(redisURL),
		c.Auth.TokenTTL, c.Auth.BcryptCost)
}
