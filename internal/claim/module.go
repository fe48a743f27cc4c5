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

package claim

import (
	"github.com/healthproof/healthproof/internal/claim/internal/domain"
	"github.com/healthproof/healthproof/internal/claim/internal/service"
	"github.com/healthproof/healthproof/internal/claim/internal/web"
)

type Module struct {
	Svc      Service
	AdminSvc AdminService
	Hdl      *Handler
	AdminHdl *AdminHandler
}

type Handler = web.Handler
type AdminHandler = web.AdminHandler
type Service = service.Service
type AdminService = service.AdminService

type Claim = domain.Claim
type Market = domain.Market
type Evidence = domain.Evidence
type MarketStatus = domain.MarketStatus
type Difficulty = domain.Difficulty

const (
	DifficultyEasy   = domain.DifficultyEasy
	DifficultyMedium = domain.DifficultyMedium
	DifficultyHard   = domain.DifficultyHard

	MarketStatusResearching = domain.MarketStatusResearching
	MarketStatusActive      = domain.MarketStatusActive
	MarketStatusResolved    = domain.MarketStatusResolved
)

var ErrRecordNotFound = service.ErrRecordNotFound
