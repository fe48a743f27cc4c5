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

package repository

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/healthproof/healthproof/internal/vote/internal/domain"
	"github.com/healthproof/healthproof/internal/vote/internal/repository/dao"
)

var (
	ErrMarketNotFound  = dao.ErrMarketNotFound
	ErrMarketNotActive = dao.ErrMarketNotActive
	ErrDuplicatedVote  = dao.ErrDuplicatedVote
	ErrCoinNotEnough   = dao.ErrCoinNotEnough
	ErrRecordNotFound  = dao.ErrRecordNotFound
)

type VoteRepository interface {
	Create(ctx context.Context, vote domain.Vote, cost int64, costBiz string) (domain.Vote, int64, error)
	FindByClaimAndUID(ctx context.Context, claimId, uid int64) (domain.Vote, error)
	FindDue(ctx context.Context, deadline time.Time, limit int) ([]domain.Vote, error)
	MarkRevealed(ctx context.Context, ids []int64) error
}

type voteRepository struct {
	dao dao.VoteDAO
}

func NewVoteRepository(dao dao.VoteDAO) VoteRepository {
	return &voteRepository{dao: dao}
}

func (r *voteRepository) Create(ctx context.Context, vote domain.Vote, cost int64, costBiz string) (domain.Vote, int64, error) {
	entity, balance, err := r.dao.Create(ctx, dao.ClaimVote{
		ClaimId:  vote.ClaimID,
		Uid:      vote.Uid,
		Side:     string(vote.Side),
		RevealAt: vote.RevealAt.UnixMilli(),
	}, cost, costBiz)
	if err != nil {
		return domain.Vote{}, 0, err
	}
	return r.toDomain(entity), balance, nil
}

func (r *voteRepository) FindByClaimAndUID(ctx context.Context, claimId, uid int64) (domain.Vote, error) {
	entity, err := r.dao.FindByClaimAndUID(ctx, claimId, uid)
	if err != nil {
		return domain.Vote{}, err
	}
	return r.toDomain(entity), nil
}

func (r *voteRepository) FindDue(ctx context.Context, deadline time.Time, limit int) ([]domain.Vote, error) {
	votes, err := r.dao.FindDue(ctx, deadline.UnixMilli(), limit)
	return slice.Map(votes, func(idx int, src dao.ClaimVote) domain.Vote {
		return r.toDomain(src)
	}), err
}

func (r *voteRepository) MarkRevealed(ctx context.Context, ids []int64) error {
	return r.dao.MarkRevealed(ctx, ids)
}

func (r *voteRepository) toDomain(v dao.ClaimVote) domain.Vote {
	return domain.Vote{
		ID:       v.Id,
		ClaimID:  v.ClaimId,
		Uid:      v.Uid,
		Side:     domain.Side(v.Side),
		VotedAt:  time.UnixMilli(v.Ctime),
		RevealAt: time.UnixMilli(v.RevealAt),
		Revealed: v.Revealed,
	}
}
