package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
)

type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	// BaseURL 拼接深链接，例如 https://plantao.hospital.local
	BaseURL string `yaml:"baseUrl"`
}

type sendMailFunc func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Provider 通过 SMTP 发送邮件
type Provider struct {
	cfg      Config
	sendMail sendMailFunc
}

func NewProvider(cfg Config) *Provider {
	return &Provider{cfg: cfg, sendMail: sendMail}
}

func (p *Provider) Send(ctx context.Context, notification domain.Notification) (domain.SendResponse, error) {
	msg := p.buildMessage(notification)
	addr := net.JoinHostPort(p.cfg.Host, strconv.Itoa(p.cfg.Port))
	var auth smtp.Auth
	if p.cfg.Username != "" {
		auth = smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)
	}

	err := p.sendMail(ctx, addr, auth, p.cfg.From, []string{notification.Destination}, msg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.SendResponse{}, fmt.Errorf("%w: %w: %w", errs.ErrSendNotificationFailed, ctxErr, err)
		}
		return domain.SendResponse{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, err)
	}
	return domain.SendResponse{
		NotificationID: notification.ID,
		Status:         domain.SendStatusSent,
		Provider:       "smtp",
	}, nil
}

// sendMail 和 smtp.SendMail 一样的会话，但连接受 ctx 控制：
// ctx 结束时把连接的读写截止时间设为现在，阻塞中的读写立刻返回
func sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer c.Close()
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err = c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errors.New("smtp: 服务器不支持 AUTH")
		}
		if err = c.Auth(a); err != nil {
			return err
		}
	}
	if err = c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err = c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func (p *Provider) buildMessage(n domain.Notification) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", p.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", n.Destination)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", n.Payload.Title))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(n.Payload.Message)
	buf.WriteString("\r\n")
	if n.Payload.Link != "" {
		fmt.Fprintf(&buf, "\r\n%s%s\r\n", p.cfg.BaseURL, n.Payload.Link)
	}
	return buf.Bytes()
}
