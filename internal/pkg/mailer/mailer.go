package mailer

import (
	"fmt"

	"blog_crud_jwt/internal/pkg/config"

	"github.com/aliyun/alibaba-cloud-sdk-go/sdk/requests"
	"github.com/aliyun/alibaba-cloud-sdk-go/services/dm"
)

// Mailer 邮件发送接口
// 发送失败不影响触发它的业务操作，调用方只记录日志
type Mailer interface {
	SendActivationEmail(to, activationCode string) error
	SendNewPassword(to, newPassword string) error
}

// AliyunMailer 阿里云邮件推送实现
type AliyunMailer struct {
	client *dm.Client
	cfg    config.MailConfig
}

func NewAliyunMailer() (*AliyunMailer, error) {
	cfg := config.GlobalConfig.Mail

	if cfg.AccessKeyID == "" || cfg.FromAddress == "" {
		return nil, fmt.Errorf("mail config is missing")
	}

	client, err := dm.NewClientWithAccessKey(
		cfg.RegionID,
		cfg.AccessKeyID,
		cfg.AccessKeySecret,
	)
	if err != nil {
		return nil, err
	}

	return &AliyunMailer{client: client, cfg: cfg}, nil
}

// SendActivationEmail 发送激活链接
func (m *AliyunMailer) SendActivationEmail(to, activationCode string) error {
	link := fmt.Sprintf("%s/api/v1/activate/?u=%s", config.GlobalConfig.App.BaseURL, activationCode)
	body := fmt.Sprintf("<p>Thank you for registering. Follow the link to activate your account:</p><p><a href=%q>%s</a></p>", link, link)
	return m.send(to, "Account activation", body)
}

// SendNewPassword 发送新密码
func (m *AliyunMailer) SendNewPassword(to, newPassword string) error {
	body := fmt.Sprintf("<p>Your new password: <b>%s</b></p>", newPassword)
	return m.send(to, "Password recovery", body)
}

func (m *AliyunMailer) send(to, subject, htmlBody string) error {
	request := dm.CreateSingleSendMailRequest()
	request.AccountName = m.cfg.FromAddress
	request.FromAlias = m.cfg.FromAlias
	request.AddressType = requests.NewInteger(1)
	request.ReplyToAddress = requests.NewBoolean(false)
	request.ToAddress = to
	request.Subject = subject
	request.HtmlBody = htmlBody

	_, err := m.client.SingleSendMail(request)
	return err
}
