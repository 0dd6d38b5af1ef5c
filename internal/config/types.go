// Package config 统一配置管理
//
// 配置加载优先级（高→低）：
//  1. 环境变量（通过 .env 文件或 shell/systemd 注入）
//  2. YAML 配置文件（common.yaml，然后 {env}.yaml，如 dev.yaml、test.yaml、prod.yaml）
//  3. 代码硬编码默认值
//
// 凭据单一数据源：
//
//	签名密钥、数据库密码只存在环境变量 / .env 文件中（YAML 中不存储任何密码）。
//
// 配置路径确定策略：
//  1. SetConfigDir（显式路径）
//  2. CONFIG_DIR 环境变量
//  3. 按 APP_ENV 选择默认路径：
//     - prod → /etc/accounts-auth/
//     - dev/test → ./configs/
//
// Load 在进程启动时调用一次，返回的 Config 之后不再修改，按值传递给各组件。
package config

import "time"

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// 支持的数据库驱动
const (
	DriverMongoDB  = "mongodb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	APIServer APIServerConfig `yaml:"api_server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthYAMLConfig  `yaml:"auth"`

	loadedFrom string // 实际加载的 {env}.yaml 路径
}

// APIServerConfig API Server 配置
type APIServerConfig struct {
	Port string `yaml:"port"` // 监听端口
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "mongodb"（默认）、"postgres" 或 "sqlite"
	Path     string `yaml:"path"`   // SQLite 文件路径
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"` // 为 0 时按驱动取默认端口
	User     string `yaml:"user"`
	Password string `yaml:"-"` // 只从 DB_PASSWORD 环境变量读取
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	URI      string `yaml:"uri"` // MongoDB 连接 URI（优先于 host/port，如 mongodb://localhost:27017）
}

// RedisConfig Redis 配置（账号事件流，可选）
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       int    `yaml:"db"`
	Password string `yaml:"-"`   // 只从 REDIS_PASSWORD 环境变量读取
	URL      string `yaml:"url"` // 直接指定 URL，优先于 host/port/db
}

// AuthYAMLConfig 认证配置（YAML 部分）
// 签名密钥只从 JWT_SECRET 环境变量读取
type AuthYAMLConfig struct {
	TokenTTL   string `yaml:"token_ttl"`   // 例如 "24h"
	BcryptCost int    `yaml:"bcrypt_cost"` // 默认 10
}

// AuthConfig 认证配置（最终使用）
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env            Environment
	APIPort        string
	DatabaseDriver string
	DatabaseURL    string // MongoDB URI / PostgreSQL URL / SQLite DSN
	DatabaseName   string // MongoDB 数据库名
	RedisURL       string // 为空表示不启用事件流
	ConfigFile     string // 实际加载的 {env}.yaml，未找到时为空
	Auth           AuthConfig
}
