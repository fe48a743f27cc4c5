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

package dossier

import (
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
	"github.com/healthproof/healthproof/internal/claim"
	"github.com/healthproof/healthproof/internal/dossier/internal/event"
	"github.com/healthproof/healthproof/internal/dossier/internal/repository"
	"github.com/healthproof/healthproof/internal/dossier/internal/repository/dao"
	"github.com/healthproof/healthproof/internal/dossier/internal/service"
)

func InitModule(db *egorm.Component, q mq.MQ, claimModule *claim.Module) (*Module, error) {
	wire.Build(
		initDAO,
		repository.NewDossierRepository,
		initLLMService,
		service.NewService,
		initConsumer,
		wire.FieldsOf(new(*claim.Module), "Svc"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

func initDAO(db *egorm.Component) dao.DossierJobDAO {
	err := dao.InitTables(db)
	if err != nil {
		panic(err)
	}
	return dao.NewDossierJobGORMDAO(db)
}

func initLLMService() service.LLMService {
	type Config struct {
		APIKey       string  `yaml:"apikey"`
		Model        string  `yaml:"model"`
		SystemPrompt string  `yaml:"systemPrompt"`
		Temperature  float64 `yaml:"temperature"`
	}
	var cfg Config
	err := econf.UnmarshalKey("zhipu", &cfg)
	if err != nil {
		panic(err)
	}
	svc, err := service.NewZhipuService(cfg.APIKey, cfg.Model, cfg.SystemPrompt, cfg.Temperature)
	if err != nil {
		panic(err)
	}
	return svc
}

func initConsumer(svc service.Service, q mq.MQ) *event.DossierEventConsumer {
	c, err := event.NewDossierEventConsumer(svc, q)
	if err != nil {
		panic(err)
	}
	return c
}
