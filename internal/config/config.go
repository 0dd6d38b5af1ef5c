package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// 默认值
const (
	defaultPort       = "8080"
	defaultTokenTTL   = 24 * time.Hour
	defaultBcryptCost = 10
)

// Load 加载配置
//  1. 解析 APP_ENV，加载 .env.{env} / .env（敏感信息）
//  2. 加载 common.yaml 与 {env}.yaml
//  3. 环境变量覆盖，构建并校验最终配置
func Load() (*Config, error) {
	env := parseEnv(getEnv("APP_ENV", "dev"))
	loadEnvFiles(env)
	// .env 中可能设置了 APP_ENV
	env = parseEnv(getEnv("APP_ENV", "dev"))

	yamlCfg, err := loadYAMLConfig(env)
	if err != nil {
		return nil, err
	}

	cfg, err := build(env, yamlCfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultYAMLConfig 代码硬编码默认值
func defaultYAMLConfig() *YAMLConfig {
	return &YAMLConfig{
		APIServer: APIServerConfig{Port: defaultPort},
		Database: DatabaseConfig{
			Driver:  DriverMongoDB,
			Host:    "localhost",
			Name:    "accounts_auth",
			SSLMode: "disable",
		},
		Redis: RedisConfig{Host: "localhost", Port: 6379, DB: 0},
		Auth:  AuthYAMLConfig{TokenTTL: defaultTokenTTL.String(), BcryptCost: defaultBcryptCost},
	}
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → common.yaml → {env}.yaml，文件不存在时跳过
func loadYAMLConfig(env Environment) (*YAMLConfig, error) {
	cfg := defaultYAMLConfig()
	paths := effectiveConfigPaths(env)

	for _, name := range []string{"common.yaml", fmt.Sprintf("%s.yaml", env)} {
		for _, base := range paths {
			path := filepath.Join(base, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
			if name != "common.yaml" {
				cfg.loadedFrom = path
			}
			break
		}
	}

	return cfg, nil
}

// build 合并 YAML 与环境变量，得到最终配置
func build(env Environment, y *YAMLConfig) (*Config, error) {
	if v := os.Getenv("PORT"); v != "" {
		y.APIServer.Port = v
	}

	// 数据库
	databaseURL := os.Getenv("DATABASE_URL")
	explicit := firstEnv("DB_DRIVER", "DATABASE_DRIVER")
	if explicit == "" && databaseURL == "" {
		explicit = y.Database.Driver
	}
	driver := detectDatabaseDriver(explicit, databaseURL)
	y.Database.Password = os.Getenv("DB_PASSWORD")
	if v := os.Getenv("MONGO_URI"); v != "" {
		y.Database.URI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		y.Database.Name = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		y.Database.Path = v
	}
	if databaseURL == "" {
		databaseURL = buildDatabaseURL(y.Database, driver)
	}

	// Redis
	y.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_URL"); v != "" {
		y.Redis.URL = v
	}

	// 认证
	ttlStr := getEnv("TOKEN_TTL", y.Auth.TokenTTL)
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("config: invalid token ttl %q: %w", ttlStr, err)
	}
	cost := y.Auth.BcryptCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid BCRYPT_COST %q: %w", v, err)
		}
	}
	if cost == 0 {
		cost = defaultBcryptCost
	}

	return &Config{
		Env:            env,
		APIPort:        y.APIServer.Port,
		DatabaseDriver: driver,
		DatabaseURL:    databaseURL,
		DatabaseName:   y.Database.Name,
		RedisURL:       buildRedisURL(y.Redis),
		ConfigFile:     y.loadedFrom,
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   ttl,
			BcryptCost: cost,
		},
	}, nil
}

// Validate 校验最终配置
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverMongoDB, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.DatabaseDriver)
	}
	if c.APIPort == "" {
		return fmt.Errorf("config: api port is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: token ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("config: bcrypt cost must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}
	return nil
}
