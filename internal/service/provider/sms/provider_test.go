package sms

import (
	"context"
	"errors"
	"testing"
	"time"

	"gitee.com/flycash/shift-handover/internal/domain"
	"gitee.com/flycash/shift-handover/internal/errs"
	"gitee.com/flycash/shift-handover/internal/service/provider/sms/client"
	clientmocks "gitee.com/flycash/shift-handover/internal/service/provider/sms/client/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSMSProvider_Send(t *testing.T) {
	t.Parallel()

	cfg := Config{
		SignName:          "Plantão",
		DefaultTemplateID: "TPL_DEFAULT",
		Templates:         map[string]string{domain.InAppTypeSLADueSoon: "TPL_SLA"},
	}
	n := domain.Notification{
		ID:          11,
		Channel:     domain.ChannelSMS,
		Destination: "+5511999990000",
		Payload:     domain.Payload{Type: domain.InAppTypeSLADueSoon, Title: "SLA Vencendo", Message: "vence em 10 minutos"},
	}

	testCases := []struct {
		name    string
		mock    func(ctrl *gomock.Controller) client.Client
		wantErr error
	}{
		{
			name: "sent",
			mock: func(ctrl *gomock.Controller) client.Client {
				c := clientmocks.NewMockClient(ctrl)
				c.EXPECT().Send(client.SendReq{
					PhoneNumbers:  []string{"+5511999990000"},
					SignName:      "Plantão",
					TemplateID:    "TPL_SLA",
					TemplateParam: map[string]string{"message": "vence em 10 minutos"},
				}).Return(client.SendResp{PhoneNumbers: map[string]client.SendRespStatus{
					"+5511999990000": {Code: client.OK},
				}}, nil)
				return c
			},
		},
		{
			name: "gateway error",
			mock: func(ctrl *gomock.Controller) client.Client {
				c := clientmocks.NewMockClient(ctrl)
				c.EXPECT().Send(gomock.Any()).Return(client.SendResp{}, errors.New("timeout"))
				return c
			},
			wantErr: errs.ErrSendNotificationFailed,
		},
		{
			name: "rejected number",
			mock: func(ctrl *gomock.Controller) client.Client {
				c := clientmocks.NewMockClient(ctrl)
				c.EXPECT().Send(gomock.Any()).Return(client.SendResp{PhoneNumbers: map[string]client.SendRespStatus{
					"+5511999990000": {Code: "isv.MOBILE_NUMBER_ILLEGAL", Message: "invalid"},
				}}, nil)
				return c
			},
			wantErr: errs.ErrSendNotificationFailed,
		},
		{
			name: "empty status",
			mock: func(ctrl *gomock.Controller) client.Client {
				c := clientmocks.NewMockClient(ctrl)
				c.EXPECT().Send(gomock.Any()).Return(client.SendResp{}, nil)
				return c
			},
			wantErr: errs.ErrSendNotificationFailed,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			p := NewSMSProvider("aliyun", cfg, tc.mock(ctrl))
			resp, err := p.Send(t.Context(), n)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.SendResponse{NotificationID: 11, Status: domain.SendStatusSent, Provider: "aliyun"}, resp)
		})
	}
}

type blockingClient struct {
	release chan struct{}
}

func (c *blockingClient) Send(client.SendReq) (client.SendResp, error) {
	<-c.release
	return client.SendResp{}, nil
}

func TestSMSProvider_SendTimeout(t *testing.T) {
	t.Parallel()

	c := &blockingClient{release: make(chan struct{})}
	t.Cleanup(func() { close(c.release) })
	p := NewSMSProvider("tencentcloud", Config{DefaultTemplateID: "TPL"}, c)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := p.Send(ctx, domain.Notification{ID: 3, Channel: domain.ChannelSMS, Destination: "+5511999990000"})
	assert.ErrorIs(t, err, errs.ErrSendNotificationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
