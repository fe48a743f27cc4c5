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

package dao

import (
	"context"
	"database/sql"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

type ClaimDAO interface {
	// Create 同一个事务里建出命题和它的市场
	Create(ctx context.Context, c Claim, m Market) (int64, error)
	FindById(ctx context.Context, id int64) (Claim, Market, error)
	// List 只返回开放投票的命题，给 C 端用
	List(ctx context.Context, offset, limit int) ([]Claim, error)
	FindMarketsByClaimIds(ctx context.Context, ids []int64) ([]Market, error)

	EvidenceList(ctx context.Context, claimId int64, stance string, orderBy string, offset, limit int) ([]ClaimPaper, []Paper, error)
	CountEvidence(ctx context.Context, claimId int64, stance string) (int64, error)
	CreateEvidence(ctx context.Context, p Paper, cp ClaimPaper) (int64, error)

	// AdminList 管理端列表，status 为空表示不过滤
	AdminList(ctx context.Context, status string, offset, limit int) ([]Claim, error)
	AdminCount(ctx context.Context, status string) (int64, error)
	EvidenceCounts(ctx context.Context, claimIds []int64) (map[int64]int64, error)
	VoteCounts(ctx context.Context, claimIds []int64) (map[int64]int64, error)
	JobCounts(ctx context.Context, claimIds []int64) (map[int64]int64, error)
	UpdateMarketStatus(ctx context.Context, claimId int64, status string) error
}

type claimDAO struct {
	db *egorm.Component
}

func NewClaimGORMDAO(db *egorm.Component) ClaimDAO {
	return &claimDAO{db: db}
}

func (g *claimDAO) Create(ctx context.Context, c Claim, m Market) (int64, error) {
	var id int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		c.Ctime, c.Utime = now, now
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		id = c.Id
		m.ClaimId = id
		m.Ctime, m.Utime = now, now
		return tx.Create(&m).Error
	})
	return id, err
}

func (g *claimDAO) FindById(ctx context.Context, id int64) (Claim, Market, error) {
	var c Claim
	err := g.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return Claim{}, Market{}, err
	}
	var m Market
	err = g.db.WithContext(ctx).First(&m, "claim_id = ?", id).Error
	return c, m, err
}

func (g *claimDAO) List(ctx context.Context, offset, limit int) ([]Claim, error) {
	claims := make([]Claim, 0, limit)
	err := g.db.WithContext(ctx).
		Joins("JOIN markets ON markets.claim_id = claims.id").
		Where("markets.status = ?", "active").
		Order("claims.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&claims).Error
	return claims, err
}

func (g *claimDAO) FindMarketsByClaimIds(ctx context.Context, ids []int64) ([]Market, error) {
	var markets []Market
	err := g.db.WithContext(ctx).
		Where("claim_id IN ?", ids).
		Find(&markets).Error
	return markets, err
}

func (g *claimDAO) EvidenceList(ctx context.Context, claimId int64, stance string, orderBy string, offset, limit int) ([]ClaimPaper, []Paper, error) {
	links := make([]ClaimPaper, 0, limit)
	query := g.db.WithContext(ctx).Model(&ClaimPaper{}).Where("claim_id = ?", claimId)
	if stance != "" {
		query = query.Where("stance = ?", stance)
	}
	err := query.Order(orderBy).Offset(offset).Limit(limit).Find(&links).Error
	if err != nil {
		return nil, nil, err
	}
	if len(links) == 0 {
		return links, nil, nil
	}
	paperIds := make([]int64, 0, len(links))
	for _, link := range links {
		paperIds = append(paperIds, link.PaperId)
	}
	var papers []Paper
	err = g.db.WithContext(ctx).Where("id IN ?", paperIds).Find(&papers).Error
	return links, papers, err
}

func (g *claimDAO) CountEvidence(ctx context.Context, claimId int64, stance string) (int64, error) {
	var res int64
	query := g.db.WithContext(ctx).Model(&ClaimPaper{}).Where("claim_id = ?", claimId)
	if stance != "" {
		query = query.Where("stance = ?", stance)
	}
	err := query.Count(&res).Error
	return res, err
}

func (g *claimDAO) CreateEvidence(ctx context.Context, p Paper, cp ClaimPaper) (int64, error) {
	var id int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		p.Ctime, p.Utime = now, now
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		cp.PaperId = p.Id
		cp.Ctime, cp.Utime = now, now
		if err := tx.Create(&cp).Error; err != nil {
			return err
		}
		id = cp.Id
		return nil
	})
	return id, err
}

func (g *claimDAO) AdminList(ctx context.Context, status string, offset, limit int) ([]Claim, error) {
	claims := make([]Claim, 0, limit)
	query := g.db.WithContext(ctx).Model(&Claim{})
	if status != "" {
		query = query.
			Joins("JOIN markets ON markets.claim_id = claims.id").
			Where("markets.status = ?", status)
	}
	err := query.Order("claims.id DESC").Offset(offset).Limit(limit).Find(&claims).Error
	return claims, err
}

func (g *claimDAO) AdminCount(ctx context.Context, status string) (int64, error) {
	var res int64
	query := g.db.WithContext(ctx).Model(&Claim{})
	if status != "" {
		query = query.
			Joins("JOIN markets ON markets.claim_id = claims.id").
			Where("markets.status = ?", status)
	}
	err := query.Count(&res).Error
	return res, err
}

func (g *claimDAO) EvidenceCounts(ctx context.Context, claimIds []int64) (map[int64]int64, error) {
	return g.countGrouped(ctx, &ClaimPaper{}, claimIds)
}

func (g *claimDAO) VoteCounts(ctx context.Context, claimIds []int64) (map[int64]int64, error) {
	return g.countGrouped(ctx, &claimVote{}, claimIds)
}

func (g *claimDAO) JobCounts(ctx context.Context, claimIds []int64) (map[int64]int64, error) {
	return g.countGrouped(ctx, &dossierJob{}, claimIds)
}

func (g *claimDAO) countGrouped(ctx context.Context, model any, claimIds []int64) (map[int64]int64, error) {
	type row struct {
		ClaimId int64
		Cnt     int64
	}
	var rows []row
	err := g.db.WithContext(ctx).Model(model).
		Select("claim_id, COUNT(*) AS cnt").
		Where("claim_id IN ?", claimIds).
		Group("claim_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make(map[int64]int64, len(rows))
	for _, r := range rows {
		res[r.ClaimId] = r.Cnt
	}
	return res, nil
}

func (g *claimDAO) UpdateMarketStatus(ctx context.Context, claimId int64, status string) error {
	res := g.db.WithContext(ctx).Model(&Market{}).
		Where("claim_id = ?", claimId).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return ErrRecordNotFound
	}
	return nil
}

type Claim struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:命题自增ID"`
	Title       string `gorm:"type:varchar(512);not null;comment:命题标题"`
	Description string `gorm:"type:text;comment:命题描述"`
	Difficulty  string `gorm:"type:varchar(16);not null;comment:难度 easy/medium/hard"`
	Ctime       int64
	Utime       int64
}

type Market struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:市场自增ID"`
	ClaimId int64  `gorm:"not null;uniqueIndex:unq_claim_id;comment:命题ID,一一对应"`
	Status  string `gorm:"type:varchar(16);not null;index:idx_status;comment:researching/active/resolved"`
	// 三个计数是投票表的冗余，只在投票事务里累加
	YesVotes         int64           `gorm:"not null;default:0"`
	NoVotes          int64           `gorm:"not null;default:0"`
	TotalVotes       int64           `gorm:"not null;default:0"`
	AiVerdict        sql.NullString  `gorm:"type:varchar(8);comment:YES或NO"`
	AiConfidence     sql.NullFloat64 `gorm:"comment:置信度(0,1]"`
	ConsensusSummary sql.NullString  `gorm:"type:text;comment:共识摘要"`
	ResolvedAt       sql.NullInt64   `gorm:"comment:定论时间"`
	Ctime            int64
	Utime            int64
}

type Paper struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:论文自增ID"`
	Title   string `gorm:"type:varchar(1024);not null"`
	Authors string `gorm:"type:varchar(1024)"`
	Journal string `gorm:"type:varchar(512)"`
	Year    int    `gorm:"comment:发表年份"`
	Doi     string `gorm:"type:varchar(256)"`
	Url     string `gorm:"type:varchar(1024)"`
	Ctime   int64
	Utime   int64
}

type ClaimPaper struct {
	Id      int64 `gorm:"primaryKey;autoIncrement;comment:证据自增ID"`
	ClaimId int64 `gorm:"not null;index:idx_claim_id;comment:命题ID"`
	PaperId int64 `gorm:"not null;index:idx_paper_id;comment:论文ID"`
	// Stance 可以为空，表示立场不明
	Stance          sql.NullString `gorm:"type:varchar(16);comment:SUPPORTS或REFUTES"`
	StudyType       string         `gorm:"type:varchar(64);comment:研究类型"`
	AiSummary       string         `gorm:"type:text;comment:AI摘要"`
	SampleSize      int64          `gorm:"comment:样本量"`
	ConfidenceScore float64        `gorm:"not null;default:0;comment:置信度0..1"`
	Ctime           int64
	Utime           int64
}

// claimVote 统计用，表结构归 vote 模块管
type claimVote struct {
	Id      int64
	ClaimId int64
}

func (claimVote) TableName() string {
	return "claim_votes"
}

// dossierJob 统计用，表结构归 dossier 模块管
type dossierJob struct {
	Id      int64
	ClaimId int64
}

func (dossierJob) TableName() string {
	return "dossier_jobs"
}
