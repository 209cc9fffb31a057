package ioc

import (
	"gitee.com/flycash/shift-handover/internal/service/provider/sms"
	"gitee.com/flycash/shift-handover/internal/service/provider/sms/client"
	"github.com/gotomicro/ego/core/econf"
)

const (
	smsAliyun  = "aliyun"
	smsTencent = "tencentcloud"
)

// SMSClient 一个已经配置好的短信网关
type SMSClient struct {
	Name   string
	Client client.Client
	Config sms.Config
}

func initAliyunSms() (SMSClient, bool) {
	type Config struct {
		RegionID        string     `yaml:"regionId"`
		AccessKeyID     string     `yaml:"accessKeyId"`
		AccessKeySecret string     `yaml:"accessKeySecret"`
		Template        sms.Config `yaml:"template"`
	}
	var cfg Config
	err := econf.UnmarshalKey("sms.aliyun", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.AccessKeyID == "" {
		return SMSClient{}, false
	}
	cli, err := client.NewAliyunSMS(cfg.RegionID, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		panic(err)
	}
	return SMSClient{Name: smsAliyun, Client: cli, Config: cfg.Template}, true
}

func initTxSms() (SMSClient, bool) {
	type Config struct {
		RegionID  string     `yaml:"regionId"`
		SecretID  string     `yaml:"secretId"`
		SecretKey string     `yaml:"secretKey"`
		AppID     string     `yaml:"appId"`
		Template  sms.Config `yaml:"template"`
	}
	var cfg Config
	err := econf.UnmarshalKey("sms.tencent", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.SecretID == "" {
		return SMSClient{}, false
	}
	cli, err := client.NewTencentCloudSMS(cfg.RegionID, cfg.SecretID, cfg.SecretKey, cfg.AppID)
	if err != nil {
		panic(err)
	}
	return SMSClient{Name: smsTencent, Client: cli, Config: cfg.Template}, true
}

// InitSMSClients 按故障转移顺序返回：阿里云在前，腾讯云在后。没有配置密钥的网关会被跳过
func InitSMSClients() []SMSClient {
	res := make([]SMSClient, 0, 2)
	if c, ok := initAliyunSms(); ok {
		res = append(res, c)
	}
	if c, ok := initTxSms(); ok {
		res = append(res, c)
	}
	return res
}
