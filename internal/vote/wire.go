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

package vote

import (
	"sync"

	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/healthproof/healthproof/internal/vote/internal/job"
	"github.com/healthproof/healthproof/internal/vote/internal/repository"
	"github.com/healthproof/healthproof/internal/vote/internal/repository/dao"
	"github.com/healthproof/healthproof/internal/vote/internal/service"
	"github.com/healthproof/healthproof/internal/vote/internal/web"
)

func InitModule(db *egorm.Component) (*Module, error) {
	wire.Build(
		InitService,
		web.NewHandler,
		initRevealJob,
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
		d := dao.NewVoteGORMDAO(db)
		r := repository.NewVoteRepository(d)
		svc = service.NewService(r)
	})
	return svc
}

func initRevealJob(svc service.Service) *job.RevealDueVotesJob {
	const batchSize = 500
	return job.NewRevealDueVotesJob(svc, batchSize)
}
