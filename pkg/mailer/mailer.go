package mailer

import (
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"wedding-planner/backend/config"
	"wedding-planner/backend/internal/model"
)

// Mailer 通知发送接口（邀请 / 出席确认 / 婉拒回执）
// 调用方负责把错误转换为布尔结果：邮件失败不应回滚触发它的业务写入
type Mailer interface {
	SendInvitation(guest *model.Guest, rsvpURL string) error
	SendConfirmation(guest *model.Guest) error
	SendDecline(guest *model.Guest) error
}

// NewFromConfig 根据配置创建 Mailer
// 未配置 SMTP 主机时降级为 nopMailer（仅记录日志，便于本地开发）
func NewFromConfig(cfg *config.Config, logger *zap.Logger) Mailer {
	if cfg.Mail.SMTPHost == "" {
		logger.Warn("未配置 SMTP，邮件发送降级为日志输出")
		return &nopMailer{logger: logger}
	}
	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.Username, cfg.Mail.Password),
		logger: logger,
	}
}

// ── SMTP 实现 ──

type smtpMailer struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	logger *zap.Logger
}

func (m *smtpMailer) SendInvitation(guest *model.Guest, rsvpURL string) error {
	subject := "🎉 诚邀您参加我们的婚礼"
	body := invitationBody(&m.cfg.Wedding, guest, rsvpURL)
	return m.send(guest.Email, subject, body)
}

func (m *smtpMailer) SendConfirmation(guest *model.Guest) error {
	subject := "✅ 已收到您的出席确认"
	body := confirmationBody(&m.cfg.Wedding, guest)
	return m.send(guest.Email, subject, body)
}

func (m *smtpMailer) SendDecline(guest *model.Guest) error {
	subject := "已收到您的回复"
	body := declineBody(&m.cfg.Wedding, guest)
	return m.send(guest.Email, subject, body)
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.cfg.Mail.From, m.cfg.Mail.FromName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("邮件发送失败",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	m.logger.Info("邮件已发送",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// ── 降级实现 ──

type nopMailer struct {
	logger *zap.Logger
}

func (m *nopMailer) SendInvitation(guest *model.Guest, rsvpURL string) error {
	m.logger.Info("邮件降级输出: 邀请",
		zap.String("to", guest.Email),
		zap.String("rsvp_url", rsvpURL),
	)
	return nil
}

func (m *nopMailer) SendConfirmation(guest *model.Guest) error {
	m.logger.Info("邮件降级输出: 出席确认", zap.String("to", guest.Email))
	return nil
}

func (m *nopMailer) SendDecline(guest *model.Guest) error {
	m.logger.Info("邮件降级输出: 婉拒回执", zap.String("to", guest.Email))
	return nil
}
