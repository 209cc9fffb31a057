package main

import (
	"os"

	"github.com/gotomicro/ego/core/elog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		elog.DefaultLogger.Error("执行失败", elog.FieldErr(err))
		os.Exit(1)
	}
}
