package ioc

import (
	id "gitee.com/flycash/shift-handover/internal/pkg/id_generator"
)

func InitIDGenerator() id.Generator {
	gen, err := id.NewGenerator(1)
	if err != nil {
		panic(err)
	}
	return gen
}
