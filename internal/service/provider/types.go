package provider

import (
	"context"

	"gitee.com/flycash/shift-handover/internal/domain"
)

// Provider 供应商接口，一次把一条投递记录发给一个目的地
//
//go:generate mockgen -source=./types.go -destination=./mocks/provider.mock.go -package=providermocks Provider,Selector,SelectorBuilder
type Provider interface {
	// Send 发送消息。返回错误即视为本次投递失败
	Send(ctx context.Context, notification domain.Notification) (domain.SendResponse, error)
}

// Selector 供应商选择器接口
type Selector interface {
	// Next 获取下一个供应商，无可用供应商时返回错误
	Next(ctx context.Context, notification domain.Notification) (Provider, error)
}

// SelectorBuilder 供应商选择器的构造器，每次投递构造一个新的选择器
type SelectorBuilder interface {
	Build() (Selector, error)
}
