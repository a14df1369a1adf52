package mailer

import "log"

// LogMailer 开发环境的邮件实现：只打印日志，不真正发送
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendActivationEmail(to, activationCode string) error {
	log.Printf("[Mail] activation code %s for %s", activationCode, to)
	return nil
}

func (m *LogMailer) SendNewPassword(to, newPassword string) error {
	log.Printf("[Mail] new password %s for %s", newPassword, to)
	return nil
}
