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

package coin

import (
	"github.com/healthproof/healthproof/internal/coin/internal/domain"
	"github.com/healthproof/healthproof/internal/coin/internal/event"
	"github.com/healthproof/healthproof/internal/coin/internal/service"
	"github.com/healthproof/healthproof/internal/coin/internal/web"
)

type Module struct {
	Svc Service
	Hdl *Handler
	C   *SignupBonusConsumer
}

type Handler = web.Handler
type Service = service.Service
type SignupBonusConsumer = event.SignupBonusConsumer
type Account = domain.Account
type Transaction = domain.Transaction

const (
	BizVoteSpend   = domain.BizVoteSpend
	BizUnlockSpend = domain.BizUnlockSpend
)

var (
	ErrCoinNotEnough     = service.ErrCoinNotEnough
	ErrDuplicatedCoinLog = service.ErrDuplicatedCoinLog
)
