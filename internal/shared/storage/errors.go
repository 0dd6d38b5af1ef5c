// Package storage 定义存储层领域错误
//
// 这些错误用于隔离业务层与底层存储引擎的错误类型，
// 各驱动实现（repository/mongostore）负责将底层错误转换为这些领域错误。
// 记录不存在不是错误：查询方法返回 (nil, nil)。
package storage

import "errors"

// ErrDuplicate 唯一键冲突（同一类型下邮箱重复）
var ErrDuplicate = errors.New("duplicate: entity already exists")
