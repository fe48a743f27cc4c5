// Copyright 2025 healthproof
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package user

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
	"github.com/healthproof/healthproof/internal/coin"
	"github.com/healthproof/healthproof/internal/email"
	"github.com/healthproof/healthproof/internal/email/aliyun"
	"github.com/healthproof/healthproof/internal/user/internal/event"
	"github.com/healthproof/healthproof/internal/user/internal/repository"
	"github.com/healthproof/healthproof/internal/user/internal/repository/cache"
	"github.com/healthproof/healthproof/internal/user/internal/repository/dao"
	"github.com/healthproof/healthproof/internal/user/internal/service"
	"github.com/healthproof/healthproof/internal/user/internal/web"
)

func InitModule(db *egorm.Component, ec ecache.Cache, q mq.MQ, coinModule *coin.Module) (*Module, error) {
	wire.Build(
		initDAO,
		cache.NewUserECache,
		cache.NewVerificationCodeCache,
		repository.NewCachedUserRepository,
		repository.NewVerificationCodeRepository,
		initRegistrationEventProducer,
		initVerificationCodeSvc,
		service.NewUserService,
		web.NewHandler,
		wire.FieldsOf(new(*coin.Module), "Svc"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

func initDAO(db *egorm.Component) dao.UserDAO {
	err := dao.InitTables(db)
	if err != nil {
		panic(err)
	}
	return dao.NewGORMUserDAO(db)
}

func initRegistrationEventProducer(q mq.MQ) *event.RegistrationEventProducer {
	producer, err := event.NewRegistrationEventProducer(q)
	if err != nil {
		panic(err)
	}
	return producer
}

func initVerificationCodeSvc(repo repository.VerificationCodeRepo) service.VerificationCodeSvc {
	type Config struct {
		Provider        string `yaml:"provider"`
		From            string `yaml:"from"`
		AccessKeyID     string `yaml:"accessKeyID"`
		AccessKeySecret string `yaml:"accessKeySecret"`
		AccountName     string `yaml:"accountName"`
	}
	var cfg Config
	err := econf.UnmarshalKey("email", &cfg)
	if err != nil {
		panic(err)
	}
	var emailSvc email.Service
	switch cfg.Provider {
	case "aliyun":
		emailSvc, err = aliyun.NewAliyunDirectMailAPI(cfg.AccessKeyID, cfg.AccessKeySecret, cfg.AccountName)
		if err != nil {
			panic(err)
		}
	default:
		emailSvc = email.NewConsoleService()
	}
	return service.NewVerificationCodeSvc(emailSvc, repo, cfg.From)
}
