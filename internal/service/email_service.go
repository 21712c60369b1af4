package service

import (
	"crypto/tls"
	"fmt"
	"time"

	"go.uber.org/zap"
	mail "gopkg.in/mail.v2"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/config"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

// EmailService 负责发送通知邮件
type EmailService struct {
	smtpHost    string
	smtpPort    int
	username    string
	password    string
	frontendURL string
}

// NewEmailService 创建一个新的 EmailService 实例
func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost:    config.AppConfig.SMTPHost,
		smtpPort:    config.AppConfig.SMTPPort,
		username:    config.AppConfig.SMTPUsername,
		password:    config.AppConfig.SMTPPassword,
		frontendURL: config.AppConfig.FrontendURL,
	}
}

// NotifyNewFollower 通知用户获得了新的关注者。
// 通知是尽力而为的，失败只记日志。
func (s *EmailService) NotifyNewFollower(toEmail, followerHandle string) {
	subject := "您有新的关注者"
	body := fmt.Sprintf("%s 关注了您。\n\n查看对方的主页：%s/profile?user=%s",
		followerHandle, s.frontendURL, followerHandle)

	s.sendEmailAsync(toEmail, subject, body)
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	go func() {
		if err := s.sendEmail(to, subject, body); err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	if s.username == "" {
		// 未配置 SMTP 时静默跳过
		return nil
	}

	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to))
	return nil
}
