package auth

import (
	"net/http"

	"github.com/samber/oops"
)

// 流程错误码
const (
	CodeValidationFailed   = "ACCOUNT_VALIDATION_FAILED"
	CodeAlreadyExists      = "ACCOUNT_ALREADY_EXISTS"
	CodeNotFound           = "ACCOUNT_NOT_FOUND"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeInternal           = "AUTH_INTERNAL"
)

// ErrorCode 返回错误携带的 oops 错误码，非 oops 错误返回空字符串
func ErrorCode(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := any(oopsErr.Code()).(string)
	return code
}

// StatusFor 将流程错误映射为 HTTP 状态码，未知错误一律 500
func StatusFor(err error) int {
	switch ErrorCode(err) {
	case CodeValidationFailed:
		return http.StatusBadRequest
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage 返回可以写入响应体的错误信息，500 类错误不暴露细节
func PublicMessage(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
