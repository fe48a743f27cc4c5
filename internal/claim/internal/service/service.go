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
	"github.com/healthproof/healthproof/internal/claim/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrRecordNotFound = repository.ErrRecordNotFound
	ErrInvalidStance  = errors.New("非法的证据立场")
	ErrInvalidSort    = errors.New("非法的排序方式")
)

const (
	// recentEvidenceLimit 详情页附带的证据条数
	recentEvidenceLimit = 5
	maxEvidenceLimit    = 50
)

type Service interface {
	List(ctx context.Context, offset int, limit int) ([]domain.Claim, error)
	// Detail 返回命题、市场以及按置信度排序的最近证据
	Detail(ctx context.Context, id int64) (domain.Claim, []domain.Evidence, error)
	EvidenceList(ctx context.Context, claimId int64, stance domain.Stance, sort domain.EvidenceSort, offset, limit int) ([]domain.Evidence, int64, error)
}

type service struct {
	repo repository.ClaimRepository
}

func NewService(repo repository.ClaimRepository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, offset int, limit int) ([]domain.Claim, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *service) Detail(ctx context.Context, id int64) (domain.Claim, []domain.Evidence, error) {
	var (
		claim    domain.Claim
		evidence []domain.Evidence
		eg       errgroup.Group
	)
	eg.Go(func() error {
		var err error
		claim, err = s.repo.FindById(ctx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		evidence, _, err = s.repo.EvidenceList(ctx, id, "", domain.SortRelevance, 0, recentEvidenceLimit)
		return err
	})
	if err := eg.Wait(); err != nil {
		return domain.Claim{}, nil, err
	}
	return claim, evidence, nil
}

func (s *service) EvidenceList(ctx context.Context, claimId int64, stance domain.Stance, sort domain.EvidenceSort, offset, limit int) ([]domain.Evidence, int64, error) {
	// 先校验入参，再碰数据库
	if stance != "" && !stance.Valid() {
		return nil, 0, ErrInvalidStance
	}
	if sort == "" {
		sort = domain.SortRelevance
	}
	if !sort.Valid() {
		return nil, 0, ErrInvalidSort
	}
	if limit <= 0 || limit > maxEvidenceLimit {
		limit = maxEvidenceLimit
	}
	return s.repo.EvidenceList(ctx, claimId, stance, sort, offset, limit)
}
