// Package deployments 嵌入部署相关文件到二进制
//
// 包含：
//   - init-db.sql: PostgreSQL 全量建表脚本
package deployments

import (
	_ "embed"
)

// InitDBSQL PostgreSQL 全量初始化脚本（启动时由 postgres 驱动执行，可重复执行）
//
//go:embed init-db.sql
var InitDBSQL string
