package ioc

import (
	id "gitee.com/flycash/shift-handover/internal/pkg/id_generator"
	"github.com/gotomicro/ego/core/econf"
)

func InitIDGenerator() id.Generator {
	type Config struct {
		// MachineID 为 0 时由私有 IP 推导
		MachineID uint16 `yaml:"machineId"`
	}
	var cfg Config
	err := econf.UnmarshalKey("idGenerator", &cfg)
	if err != nil {
		panic(err)
	}
	gen, err := id.NewGenerator(cfg.MachineID)
	if err != nil {
		panic(err)
	}
	return gen
}
