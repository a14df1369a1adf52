package service

import "errors"

var (
	// ErrNotFound 资源不存在（未知激活码等）
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials 登录失败统一返回，不区分邮箱不存在和密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
)
