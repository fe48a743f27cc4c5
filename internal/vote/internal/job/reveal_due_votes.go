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

package job

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/task/ecron"
	"github.com/healthproof/healthproof/internal/vote/internal/service"
)

var _ ecron.NamedJob = (*RevealDueVotesJob)(nil)

// RevealDueVotesJob 把到了揭示时间的投票置为已揭示。
// 重复执行无副作用，挂了下一轮接着跑
type RevealDueVotesJob struct {
	svc   service.Service
	limit int
}

func NewRevealDueVotesJob(svc service.Service, limit int) *RevealDueVotesJob {
	return &RevealDueVotesJob{
		svc:   svc,
		limit: limit,
	}
}

func (r *RevealDueVotesJob) Name() string {
	return "RevealDueVotesJob"
}

func (r *RevealDueVotesJob) Run(ctx context.Context) error {
	for {
		n, err := r.svc.RevealDue(ctx, r.limit)
		if err != nil {
			return fmt.Errorf("揭示到期投票失败: %w", err)
		}
		if n < r.limit {
			return nil
		}
	}
}
