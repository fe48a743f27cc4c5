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

package vote

import (
	"github.com/healthproof/healthproof/internal/vote/internal/domain"
	"github.com/healthproof/healthproof/internal/vote/internal/job"
	"github.com/healthproof/healthproof/internal/vote/internal/service"
	"github.com/healthproof/healthproof/internal/vote/internal/web"
)

type Module struct {
	Svc       Service
	Hdl       *Handler
	RevealJob *RevealDueVotesJob
}

type Handler = web.Handler
type Service = service.Service
type RevealDueVotesJob = job.RevealDueVotesJob
type Vote = domain.Vote
type Side = domain.Side

const (
	SideYes = domain.SideYes
	SideNo  = domain.SideNo
)

var ErrRecordNotFound = service.ErrRecordNotFound
