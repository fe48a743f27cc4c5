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

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gotomicro/ego/core/elog"
	"github.com/healthproof/healthproof/internal/claim"
	"github.com/healthproof/healthproof/internal/dossier/internal/repository"
)

var ErrJobRunning = repository.ErrJobRunning

type Service interface {
	// Generate 为一个命题生成研判档案并定论市场。
	// 同一命题已有任务在跑时返回 ErrJobRunning
	Generate(ctx context.Context, claimId int64) error
}

type service struct {
	repo     repository.DossierRepository
	claimSvc claim.Service
	llm      LLMService
	logger   *elog.Component
}

func NewService(repo repository.DossierRepository,
	claimSvc claim.Service, llm LLMService) Service {
	return &service{
		repo:     repo,
		claimSvc: claimSvc,
		llm:      llm,
		logger:   elog.DefaultLogger,
	}
}

func (s *service) Generate(ctx context.Context, claimId int64) error {
	err := s.repo.Acquire(ctx, claimId)
	if err != nil {
		return err
	}
	err = s.generate(ctx, claimId)
	if err != nil {
		// 失败只标记任务，市场保持原样
		if me := s.repo.MarkFailed(ctx, claimId); me != nil {
			s.logger.Error("标记任务失败状态失败",
				elog.FieldErr(me),
				elog.Int64("claimId", claimId))
		}
		return err
	}
	return s.repo.MarkSuccess(ctx, claimId)
}

func (s *service) generate(ctx context.Context, claimId int64) error {
	c, evidence, err := s.claimSvc.Detail(ctx, claimId)
	if err != nil {
		return err
	}
	dossier, err := s.llm.Generate(ctx, s.buildPrompt(c, evidence))
	if err != nil {
		return err
	}
	return s.repo.Resolve(ctx, claimId, dossier)
}

func (s *service) buildPrompt(c claim.Claim, evidence []claim.Evidence) string {
	var sb strings.Builder
	sb.WriteString("请基于以下研究证据判断这个健康命题是否成立。\n")
	sb.WriteString(fmt.Sprintf("命题：%s\n", c.Title))
	if c.Description != "" {
		sb.WriteString(fmt.Sprintf("说明：%s\n", c.Description))
	}
	sb.WriteString("证据：\n")
	for i, e := range evidence {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s (%s, %d) 样本量 %d，立场 %s：%s\n",
			i+1, e.StudyType, e.Paper.Title, e.Paper.Journal, e.Paper.Year,
			e.SampleSize, e.Stance, e.AISummary))
	}
	sb.WriteString("\n按下面的格式回答：\nVERDICT: YES 或 NO\nCONFIDENCE: 0 到 1 之间的小数\nSUMMARY: 共识摘要\n")
	return sb.String()
}
