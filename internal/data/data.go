package data

import (
	"sync"

	"vaultspin/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewDataRepo)

type dataRepo struct {
	data *Data
	log  *log.Helper
}

func NewDataRepo(data *Data, logger log.Logger) biz.DataRepo {
	return &dataRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// Data 纯内存数据层：模拟赌场不落地任何状态，
// 进程重启即全新开局
type Data struct {
	mu       sync.Mutex
	countDay string
	counters map[string]int64
}

// NewData .
func NewData(logger log.Logger) (*Data, func(), error) {
	l := log.NewHelper(logger)
	d := &Data{counters: make(map[string]int64)}
	cleanup := func() {
		l.Info("closing the data resources")
	}
	return d, cleanup, nil
}
