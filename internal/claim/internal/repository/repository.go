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
	"database/sql"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/healthproof/healthproof/internal/claim/internal/domain"
	"github.com/healthproof/healthproof/internal/claim/internal/repository/dao"
)

var ErrRecordNotFound = dao.ErrRecordNotFound

type ClaimRepository interface {
	Create(ctx context.Context, c domain.Claim) (int64, error)
	FindById(ctx context.Context, id int64) (domain.Claim, error)
	List(ctx context.Context, offset, limit int) ([]domain.Claim, error)
	EvidenceList(ctx context.Context, claimId int64, stance domain.Stance, sort domain.EvidenceSort, offset, limit int) ([]domain.Evidence, int64, error)
	CreateEvidence(ctx context.Context, e domain.Evidence) (int64, error)
	AdminList(ctx context.Context, status domain.MarketStatus, offset, limit int) ([]domain.ClaimSummary, int64, error)
	ActivateMarket(ctx context.Context, claimId int64) error
}

type claimRepository struct {
	dao dao.ClaimDAO
}

func NewClaimRepository(dao dao.ClaimDAO) ClaimRepository {
	return &claimRepository{dao: dao}
}

func (r *claimRepository) Create(ctx context.Context, c domain.Claim) (int64, error) {
	return r.dao.Create(ctx, dao.Claim{
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  string(c.Difficulty),
	}, dao.Market{
		Status: string(domain.MarketStatusResearching),
	})
}

func (r *claimRepository) FindById(ctx context.Context, id int64) (domain.Claim, error) {
	c, m, err := r.dao.FindById(ctx, id)
	if err != nil {
		return domain.Claim{}, err
	}
	return r.toDomain(c, m), nil
}

func (r *claimRepository) List(ctx context.Context, offset, limit int) ([]domain.Claim, error) {
	claims, err := r.dao.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return r.attachMarkets(ctx, claims)
}

func (r *claimRepository) attachMarkets(ctx context.Context, claims []dao.Claim) ([]domain.Claim, error) {
	if len(claims) == 0 {
		return []domain.Claim{}, nil
	}
	ids := slice.Map(claims, func(idx int, src dao.Claim) int64 {
		return src.Id
	})
	markets, err := r.dao.FindMarketsByClaimIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byClaim := make(map[int64]dao.Market, len(markets))
	for _, m := range markets {
		byClaim[m.ClaimId] = m
	}
	return slice.Map(claims, func(idx int, src dao.Claim) domain.Claim {
		return r.toDomain(src, byClaim[src.Id])
	}), nil
}

func (r *claimRepository) EvidenceList(ctx context.Context, claimId int64, stance domain.Stance, sort domain.EvidenceSort, offset, limit int) ([]domain.Evidence, int64, error) {
	orderBy := "confidence_score DESC"
	if sort == domain.SortRecency {
		orderBy = "ctime DESC"
	}
	links, papers, err := r.dao.EvidenceList(ctx, claimId, string(stance), orderBy, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.dao.CountEvidence(ctx, claimId, string(stance))
	if err != nil {
		return nil, 0, err
	}
	byId := make(map[int64]dao.Paper, len(papers))
	for _, p := range papers {
		byId[p.Id] = p
	}
	res := slice.Map(links, func(idx int, src dao.ClaimPaper) domain.Evidence {
		return r.toEvidence(src, byId[src.PaperId])
	})
	return res, total, nil
}

func (r *claimRepository) CreateEvidence(ctx context.Context, e domain.Evidence) (int64, error) {
	return r.dao.CreateEvidence(ctx, dao.Paper{
		Title:   e.Paper.Title,
		Authors: e.Paper.Authors,
		Journal: e.Paper.Journal,
		Year:    e.Paper.Year,
		Doi:     e.Paper.DOI,
		Url:     e.Paper.URL,
	}, dao.ClaimPaper{
		ClaimId:         e.ClaimID,
		Stance:          sql.NullString{String: string(e.Stance), Valid: e.Stance != ""},
		StudyType:       e.StudyType,
		AiSummary:       e.AISummary,
		SampleSize:      e.SampleSize,
		ConfidenceScore: e.ConfidenceScore,
	})
}

func (r *claimRepository) AdminList(ctx context.Context, status domain.MarketStatus, offset, limit int) ([]domain.ClaimSummary, int64, error) {
	claims, err := r.dao.AdminList(ctx, string(status), offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.dao.AdminCount(ctx, string(status))
	if err != nil {
		return nil, 0, err
	}
	withMarkets, err := r.attachMarkets(ctx, claims)
	if err != nil {
		return nil, 0, err
	}
	if len(claims) == 0 {
		return []domain.ClaimSummary{}, total, nil
	}
	ids := slice.Map(claims, func(idx int, src dao.Claim) int64 {
		return src.Id
	})
	evidenceCounts, err := r.dao.EvidenceCounts(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	voteCounts, err := r.dao.VoteCounts(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	jobCounts, err := r.dao.JobCounts(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	res := slice.Map(withMarkets, func(idx int, src domain.Claim) domain.ClaimSummary {
		return domain.ClaimSummary{
			Claim:         src,
			EvidenceCount: evidenceCounts[src.ID],
			VoteCount:     voteCounts[src.ID],
			JobCount:      jobCounts[src.ID],
		}
	})
	return res, total, nil
}

func (r *claimRepository) ActivateMarket(ctx context.Context, claimId int64) error {
	return r.dao.UpdateMarketStatus(ctx, claimId, string(domain.MarketStatusActive))
}

func (r *claimRepository) toDomain(c dao.Claim, m dao.Market) domain.Claim {
	res := domain.Claim{
		ID:          c.Id,
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  domain.Difficulty(c.Difficulty),
		Ctime:       time.UnixMilli(c.Ctime),
		Market: domain.Market{
			ID:               m.Id,
			ClaimID:          m.ClaimId,
			Status:           domain.MarketStatus(m.Status),
			YesVotes:         m.YesVotes,
			NoVotes:          m.NoVotes,
			TotalVotes:       m.TotalVotes,
			AIVerdict:        m.AiVerdict.String,
			AIConfidence:     m.AiConfidence.Float64,
			ConsensusSummary: m.ConsensusSummary.String,
		},
	}
	if m.ResolvedAt.Valid {
		res.Market.ResolvedAt = time.UnixMilli(m.ResolvedAt.Int64)
	}
	return res
}

func (r *claimRepository) toEvidence(cp dao.ClaimPaper, p dao.Paper) domain.Evidence {
	return domain.Evidence{
		ID:              cp.Id,
		ClaimID:         cp.ClaimId,
		Stance:          domain.Stance(cp.Stance.String),
		StudyType:       cp.StudyType,
		AISummary:       cp.AiSummary,
		SampleSize:      cp.SampleSize,
		ConfidenceScore: cp.ConfidenceScore,
		Ctime:           time.UnixMilli(cp.Ctime),
		Paper: domain.Paper{
			ID:      p.Id,
			Title:   p.Title,
			Authors: p.Authors,
			Journal: p.Journal,
			Year:    p.Year,
			DOI:     p.Doi,
			URL:     p.Url,
		},
	}
}
