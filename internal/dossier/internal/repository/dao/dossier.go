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
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrJobRunning 同一命题已经有在跑的任务
	ErrJobRunning     = errors.New("任务进行中")
	ErrMarketNotFound = errors.New("市场不存在")
)

const (
	jobStatusRunning = "running"
	jobStatusSuccess = "success"
	jobStatusFailed  = "failed"
)

type DossierJobDAO interface {
	// Acquire 占住一个命题的生成任务。
	// 同一命题最多只有一个 running 的任务，重复入队直接报 ErrJobRunning
	Acquire(ctx context.Context, claimId int64) error
	MarkSuccess(ctx context.Context, claimId int64) error
	MarkFailed(ctx context.Context, claimId int64) error
	// ResolveMarket 把研判结果落到市场上
	ResolveMarket(ctx context.Context, claimId int64, verdict string, confidence float64, summary string) error
}

type dossierJobDAO struct {
	db *egorm.Component
}

func NewDossierJobGORMDAO(db *egorm.Component) DossierJobDAO {
	return &dossierJobDAO{db: db}
}

func (g *dossierJobDAO) Acquire(ctx context.Context, claimId int64) error {
	now := time.Now().UnixMilli()
	err := g.db.WithContext(ctx).Create(&DossierJob{
		ClaimId:  claimId,
		Status:   jobStatusRunning,
		Attempts: 1,
		Ctime:    now,
		Utime:    now,
	}).Error
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	const uniqueIndexErrNo uint16 = 1062
	if !errors.As(err, &me) || me.Number != uniqueIndexErrNo {
		return err
	}
	// 已经有历史任务，只有不在 running 的时候才能重新占住
	res := g.db.WithContext(ctx).Model(&DossierJob{}).
		Where("claim_id = ? AND status <> ?", claimId, jobStatusRunning).
		Updates(map[string]any{
			"status":   jobStatusRunning,
			"attempts": gorm.Expr("attempts + 1"),
			"utime":    now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return ErrJobRunning
	}
	return nil
}

func (g *dossierJobDAO) MarkSuccess(ctx context.Context, claimId int64) error {
	return g.markStatus(ctx, claimId, jobStatusSuccess)
}

func (g *dossierJobDAO) MarkFailed(ctx context.Context, claimId int64) error {
	return g.markStatus(ctx, claimId, jobStatusFailed)
}

func (g *dossierJobDAO) markStatus(ctx context.Context, claimId int64, status string) error {
	return g.db.WithContext(ctx).Model(&DossierJob{}).
		Where("claim_id = ?", claimId).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

func (g *dossierJobDAO) ResolveMarket(ctx context.Context, claimId int64, verdict string, confidence float64, summary string) error {
	now := time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&Market{}).
		Where("claim_id = ?", claimId).
		Updates(map[string]any{
			"status":            "resolved",
			"ai_verdict":        verdict,
			"ai_confidence":     confidence,
			"consensus_summary": summary,
			"resolved_at":       now,
			"utime":             now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < 1 {
		return ErrMarketNotFound
	}
	return nil
}

type DossierJob struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:任务自增ID"`
	ClaimId  int64  `gorm:"not null;uniqueIndex:unq_claim_id;comment:命题ID"`
	Status   string `gorm:"type:varchar(16);not null;comment:running/success/failed"`
	Attempts int64  `gorm:"not null;default:0"`
	Ctime    int64
	Utime    int64
}

// Market 只为落研判结果，表结构归 claim 模块管
type Market struct {
	Id      int64
	ClaimId int64
}

func (Market) TableName() string {
	return "markets"
}
