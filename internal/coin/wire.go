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

package coin

import (
	"sync"

	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/healthproof/healthproof/internal/coin/internal/event"
	"github.com/healthproof/healthproof/internal/coin/internal/repository"
	"github.com/healthproof/healthproof/internal/coin/internal/repository/dao"
	"github.com/healthproof/healthproof/internal/coin/internal/service"
	"github.com/healthproof/healthproof/internal/coin/internal/web"
)

func InitModule(db *egorm.Component, q mq.MQ) (*Module, error) {
	wire.Build(
		InitService,
		web.NewHandler,
		initSignupBonusConsumer,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var (
	once = &sync.Once{}
	svc  service.Service
)

func InitService(db *egorm.Component) Service {
	once.Do(func() {
		if err := dao.InitTables(db); err != nil {
			panic(err)
		}
		d := dao.NewCoinGORMDAO(db)
		r := repository.NewCoinRepository(d)
		svc = service.NewCoinService(r)
	})
	return svc
}

func initSignupBonusConsumer(svc service.Service, q mq.MQ) *event.SignupBonusConsumer {
	c, err := event.NewSignupBonusConsumer(svc, q)
	if err != nil {
		panic(err)
	}
	return c
}
