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

package claim

import (
	"sync"

	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/healthproof/healthproof/internal/claim/internal/event"
	"github.com/healthproof/healthproof/internal/claim/internal/repository"
	"github.com/healthproof/healthproof/internal/claim/internal/repository/dao"
	"github.com/healthproof/healthproof/internal/claim/internal/service"
	"github.com/healthproof/healthproof/internal/claim/internal/web"
	"github.com/healthproof/healthproof/internal/vote"
)

func InitModule(db *egorm.Component, q mq.MQ, voteModule *vote.Module) (*Module, error) {
	wire.Build(
		InitService,
		initAdminService,
		web.NewHandler,
		web.NewAdminHandler,
		wire.FieldsOf(new(*vote.Module), "Svc"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var (
	once = &sync.Once{}
	repo repository.ClaimRepository
)

func initRepository(db *egorm.Component) repository.ClaimRepository {
	once.Do(func() {
		if err := dao.InitTables(db); err != nil {
			panic(err)
		}
		d := dao.NewClaimGORMDAO(db)
		repo = repository.NewClaimRepository(d)
	})
	return repo
}

func InitService(db *egorm.Component) Service {
	return service.NewService(initRepository(db))
}

func initAdminService(db *egorm.Component, q mq.MQ) AdminService {
	producer, err := event.NewDossierEventProducer(q)
	if err != nil {
		panic(err)
	}
	return service.NewAdminService(initRepository(db), producer)
}
