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
	"errors"

	"github.com/healthproof/healthproof/internal/claim/internal/domain"
	"github.com/healthproof/healthproof/internal/claim/internal/event"
	"github.com/healthproof/healthproof/internal/claim/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrInvalidClaim  = errors.New("非法的命题")
	ErrInvalidStatus = errors.New("非法的市场状态")
)

const (
	defaultAdminLimit = 20
	maxAdminLimit     = 100
)

// AdminListResult 管理端列表结果
type AdminListResult struct {
	Claims     []domain.ClaimSummary
	Total      int64
	TotalPages int64
}

type AdminService interface {
	List(ctx context.Context, status domain.MarketStatus, page, limit int) (AdminListResult, error)
	Create(ctx context.Context, c domain.Claim) (int64, error)
	AttachEvidence(ctx context.Context, e domain.Evidence) (int64, error)
	Activate(ctx context.Context, claimId int64) error
	// GenerateDossier 发送档案生成事件。并发去重由 dossier 模块保证
	GenerateDossier(ctx context.Context, claimId int64) error
}

type adminService struct {
	repo     repository.ClaimRepository
	producer event.DossierEventProducer
	logger   *elog.Component
}

func NewAdminService(repo repository.ClaimRepository, producer event.DossierEventProducer) AdminService {
	return &adminService{
		repo:     repo,
		producer: producer,
		logger:   elog.DefaultLogger,
	}
}

func (s *adminService) List(ctx context.Context, status domain.MarketStatus, page, limit int) (AdminListResult, error) {
	if status != "" && !status.Valid() {
		return AdminListResult{}, ErrInvalidStatus
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultAdminLimit
	}
	if limit > maxAdminLimit {
		limit = maxAdminLimit
	}
	offset := (page - 1) * limit
	claims, total, err := s.repo.AdminList(ctx, status, offset, limit)
	if err != nil {
		return AdminListResult{}, err
	}
	return AdminListResult{
		Claims:     claims,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}, nil
}

func (s *adminService) Create(ctx context.Context, c domain.Claim) (int64, error) {
	if c.Title == "" || !c.Difficulty.Valid() {
		return 0, ErrInvalidClaim
	}
	return s.repo.Create(ctx, c)
}

func (s *adminService) AttachEvidence(ctx context.Context, e domain.Evidence) (int64, error) {
	if e.Stance != "" && !e.Stance.Valid() {
		return 0, ErrInvalidStance
	}
	// 确认命题存在，给上游一个明确的 NOT_FOUND
	if _, err := s.repo.FindById(ctx, e.ClaimID); err != nil {
		return 0, err
	}
	return s.repo.CreateEvidence(ctx, e)
}

func (s *adminService) Activate(ctx context.Context, claimId int64) error {
	return s.repo.ActivateMarket(ctx, claimId)
}

func (s *adminService) GenerateDossier(ctx context.Context, claimId int64) error {
	if _, err := s.repo.FindById(ctx, claimId); err != nil {
		return err
	}
	err := s.producer.Produce(ctx, event.DossierEvent{ClaimId: claimId})
	if err != nil {
		s.logger.Error("发送档案生成事件失败",
			elog.FieldErr(err),
			elog.Int64("claimId", claimId))
	}
	return err
}
