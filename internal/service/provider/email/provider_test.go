package email

import (
	"context"
	"errors"
	"io"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotification() domain.Notification {
	return domain.Notification{
		ID:          5,
		Channel:     domain.ChannelEmail,
		Destination: "enf.ana@hospital.local",
		Payload: domain.Payload{
			Type:    domain.InAppTypeSLADueSoon,
			Title:   "SLA Vencendo",
			Message: `Pendência "Trocar curativo" vence em 10 minutos`,
			Link:    "/pendencias/5",
		},
	}
}

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{Host: "smtp.local", Port: 587, Username: "u", Password: "p", From: "plantao@hospital.local", BaseURL: "https://plantao"})
	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	p.sendMail = func(_ context.Context, addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}

	resp, err := p.Send(t.Context(), newNotification())
	require.NoError(t, err)
	assert.Equal(t, domain.SendStatusSent, resp.Status)
	assert.Equal(t, uint64(5), resp.NotificationID)
	assert.Equal(t, "smtp.local:587", gotAddr)
	assert.Equal(t, []string{"enf.ana@hospital.local"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: SLA Vencendo\r\n")
	assert.Contains(t, string(gotMsg), "https://plantao/pendencias/5")
}

func TestProvider_SendFailed(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{Host: "smtp.local", Port: 25})
	p.sendMail = func(context.Context, string, smtp.Auth, string, []string, []byte) error {
		return errors.New("550 mailbox unavailable")
	}
	_, err := p.Send(t.Context(), newNotification())
	assert.ErrorIs(t, err, errs.ErrSendNotificationFailed)
}

// serveSMTP 只实现一次投递需要的命令，收到 QUIT 后把邮件正文发回
func serveSMTP(ln net.Listener, got chan<- string) {
	conn, err := ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 smtp.local ESMTP")
	var data string
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb, _, _ := strings.Cut(line, " ")
		switch strings.ToUpper(verb) {
		case "EHLO":
			_ = tp.PrintfLine("250 smtp.local")
		case "MAIL", "RCPT":
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 go ahead")
			b, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			data = string(b)
			_ = tp.PrintfLine("250 queued")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			got <- data
			return
		default:
			_ = tp.PrintfLine("502 not implemented")
		}
	}
}

func listen(t *testing.T) (net.Listener, Config) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	addr := ln.Addr().(*net.TCPAddr)
	return ln, Config{Host: "127.0.0.1", Port: addr.Port, From: "plantao@hospital.local", BaseURL: "https://plantao"}
}

func TestProvider_SendSMTPSession(t *testing.T) {
	t.Parallel()

	ln, cfg := listen(t)
	got := make(chan string, 1)
	go serveSMTP(ln, got)

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	resp, err := NewProvider(cfg).Send(ctx, newNotification())
	require.NoError(t, err)
	assert.Equal(t, domain.SendStatusSent, resp.Status)
	body := <-got
	assert.Contains(t, body, "To: enf.ana@hospital.local\n")
	assert.Contains(t, body, "Subject: SLA Vencendo\n")
	assert.Contains(t, body, "https://plantao/pendencias/5")
}

func TestProvider_SendTimeout(t *testing.T) {
	t.Parallel()

	// 接受连接但从不发问候语
	ln, cfg := listen(t)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = io.Copy(io.Discard, conn)
	}()

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := NewProvider(cfg).Send(ctx, newNotification())
	assert.ErrorIs(t, err, errs.ErrSendNotificationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	// 会话本身也随 ctx 结束，而不是在后台继续等
	assert.Less(t, time.Since(start), 2*time.Second)
}
