package utils

import "crypto/rand"

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomPassword 生成指定长度的随机密码（忘记密码流程使用）
func RandomPassword(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand 不可用属于环境故障
	}
	for i, b := range buf {
		buf[i] = passwordCharset[int(b)%len(passwordCharset)]
	}
	return string(buf)
}
