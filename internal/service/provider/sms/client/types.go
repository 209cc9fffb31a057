package client

import "errors"

const OK = "OK"

var (
	ErrInvalidParameter = errors.New("短信参数非法")
	ErrSendFailed       = errors.New("短信发送失败")
)

// Client 短信网关客户端
//
//go:generate mockgen -source=./types.go -destination=./mocks/client.mock.go -package=clientmocks Client
type Client interface {
	Send(req SendReq) (SendResp, error)
}

type SendReq struct {
	PhoneNumbers  []string
	SignName      string
	TemplateID    string
	TemplateParam map[string]string
}

type SendResp struct {
	RequestID string
	// PhoneNumbers 每个号码的发送状态，Code 为 OK 表示成功
	PhoneNumbers map[string]SendRespStatus
}

type SendRespStatus struct {
	Code    string
	Message string
}
