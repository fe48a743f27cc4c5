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
	"fmt"
	"time"

	"github.com/healthproof/healthproof/internal/vote/internal/domain"
	"github.com/healthproof/healthproof/internal/vote/internal/repository"
)

var (
	ErrMarketNotFound  = repository.ErrMarketNotFound
	ErrMarketNotActive = repository.ErrMarketNotActive
	ErrDuplicatedVote  = repository.ErrDuplicatedVote
	ErrCoinNotEnough   = repository.ErrCoinNotEnough
	ErrRecordNotFound  = repository.ErrRecordNotFound
	ErrInvalidSide     = errors.New("非法的投票方向")
)

// voteCost 一票一个金币
const voteCost = 1

const voteSpendBiz = "vote_spend"

type Service interface {
	// Vote 对一个命题投票。前置校验按顺序：命题存在、开放投票、没投过、余额够
	Vote(ctx context.Context, uid, claimId int64, side domain.Side) (domain.Vote, int64, error)
	// VoteOf 查某个用户对某个命题的投票，没投过返回 ErrRecordNotFound
	VoteOf(ctx context.Context, uid, claimId int64) (domain.Vote, error)
	// RevealDue 把到期的投票批量置为已揭示，返回处理的数量
	RevealDue(ctx context.Context, limit int) (int, error)
}

type voteService struct {
	repo repository.VoteRepository
}

func NewService(repo repository.VoteRepository) Service {
	return &voteService{repo: repo}
}

func (s *voteService) Vote(ctx context.Context, uid, claimId int64, side domain.Side) (domain.Vote, int64, error) {
	if !side.Valid() {
		return domain.Vote{}, 0, fmt.Errorf("%w: %s", ErrInvalidSide, side)
	}
	now := time.Now()
	return s.repo.Create(ctx, domain.Vote{
		ClaimID:  claimId,
		Uid:      uid,
		Side:     side,
		VotedAt:  now,
		RevealAt: now.Add(domain.RevealDelay),
	}, voteCost, voteSpendBiz)
}

func (s *voteService) VoteOf(ctx context.Context, uid, claimId int64) (domain.Vote, error) {
	return s.repo.FindByClaimAndUID(ctx, claimId, uid)
}

func (s *voteService) RevealDue(ctx context.Context, limit int) (int, error) {
	votes, err := s.repo.FindDue(ctx, time.Now(), limit)
	if err != nil {
		return 0, err
	}
	if len(votes) == 0 {
		return 0, nil
	}
	ids := make([]int64, 0, len(votes))
	for _, v := range votes {
		ids = append(ids, v.ID)
	}
	return len(ids), s.repo.MarkRevealed(ctx, ids)
}
