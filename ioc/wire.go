//go:build wireinject

package ioc

import (
	"github.com/google/wire"
	"github.com/healthproof/healthproof/internal/claim"
	"github.com/healthproof/healthproof/internal/coin"
	"github.com/healthproof/healthproof/internal/dossier"
	"github.com/healthproof/healthproof/internal/user"
	"github.com/healthproof/healthproof/internal/vote"
)

var BaseSet = wire.NewSet(InitDB, InitRedis, InitCache, InitMQ, InitSession)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		coin.InitModule,
		wire.FieldsOf(new(*coin.Module), "Hdl"),
		vote.InitModule,
		wire.FieldsOf(new(*vote.Module), "Hdl", "RevealJob"),
		claim.InitModule,
		wire.FieldsOf(new(*claim.Module), "Hdl", "AdminHdl"),
		user.InitModule,
		wire.FieldsOf(new(*user.Module), "Hdl"),
		dossier.InitModule,
		initGinxServer,
		InitAdminServer,
		initCronJobs,
		initMQConsumers,
	)
	return new(App), nil
}
