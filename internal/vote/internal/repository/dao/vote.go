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
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrMarketNotFound 命题不存在
	ErrMarketNotFound = errors.New("命题不存在")
	// ErrMarketNotActive 命题未开放投票
	ErrMarketNotActive = errors.New("命题未开放投票")
	// ErrDuplicatedVote 同一个用户对同一个命题只能投一票
	ErrDuplicatedVote = errors.New("已经投过票了")
	// ErrCoinNotEnough 余额不足
	ErrCoinNotEnough = errors.New("金币不足")
)

const marketStatusActive = "active"

type VoteDAO interface {
	// Create 扣费、写入投票、累加市场计数，三者同一个事务。
	// 任何一步失败整体回滚，不会留下半截状态
	Create(ctx context.Context, v ClaimVote, cost int64, costBiz string) (ClaimVote, int64, error)
	FindByClaimAndUID(ctx context.Context, claimId, uid int64) (ClaimVote, error)
	// FindDue 找出到了揭示时间但还没揭示的投票
	FindDue(ctx context.Context, deadline int64, limit int) ([]ClaimVote, error)
	MarkRevealed(ctx context.Context, ids []int64) error
}

type voteDAO struct {
	db *egorm.Component
}

func NewVoteGORMDAO(db *egorm.Component) VoteDAO {
	return &voteDAO{db: db}
}

func (g *voteDAO) Create(ctx context.Context, v ClaimVote, cost int64, costBiz string) (ClaimVote, int64, error) {
	var balance int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var market Market
		err := tx.First(&market, "claim_id = ?", v.ClaimId).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: claim_id = %d", ErrMarketNotFound, v.ClaimId)
		}
		if err != nil {
			return err
		}
		if market.Status != marketStatusActive {
			return fmt.Errorf("%w: claim_id = %d, status = %s", ErrMarketNotActive, v.ClaimId, market.Status)
		}
		var existing ClaimVote
		err = tx.Where("claim_id = ? AND uid = ?", v.ClaimId, v.Uid).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w", ErrDuplicatedVote)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UnixMilli()

		// 扣费。条件更新挡住并发下的超扣
		res := tx.Model(&CoinAccount{}).
			Where("uid = ? AND balance >= ?", v.Uid, cost).
			Updates(map[string]any{
				"balance": gorm.Expr("`balance` - ?", cost),
				"utime":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected < 1 {
			return fmt.Errorf("%w", ErrCoinNotEnough)
		}
		var account CoinAccount
		if err = tx.First(&account, "uid = ?", v.Uid).Error; err != nil {
			return err
		}
		balance = account.Balance
		if err = tx.Create(&CoinLog{
			Uid:     v.Uid,
			Amount:  -cost,
			Balance: balance,
			Biz:     costBiz,
			Ctime:   now,
			Utime:   now,
		}).Error; err != nil {
			return err
		}

		v.Ctime, v.Utime = now, now
		if err = tx.Create(&v).Error; err != nil {
			// 两个请求同时过了上面的查重，唯一索引兜底
			var me *mysql.MySQLError
			if errors.As(err, &me) {
				const uniqueIndexErrNo uint16 = 1062
				if me.Number == uniqueIndexErrNo {
					return fmt.Errorf("%w", ErrDuplicatedVote)
				}
			}
			return err
		}

		sideColumn := "yes_votes"
		if v.Side == "no" {
			sideColumn = "no_votes"
		}
		return tx.Model(&Market{}).
			Where("claim_id = ?", v.ClaimId).
			Updates(map[string]any{
				"total_votes": gorm.Expr("`total_votes` + 1"),
				sideColumn:    gorm.Expr(fmt.Sprintf("`%s` + 1", sideColumn)),
				"utime":       now,
			}).Error
	})
	if err != nil {
		return ClaimVote{}, 0, err
	}
	return v, balance, nil
}

func (g *voteDAO) FindByClaimAndUID(ctx context.Context, claimId, uid int64) (ClaimVote, error) {
	var res ClaimVote
	err := g.db.WithContext(ctx).
		Where("claim_id = ? AND uid = ?", claimId, uid).
		First(&res).Error
	return res, err
}

func (g *voteDAO) FindDue(ctx context.Context, deadline int64, limit int) ([]ClaimVote, error) {
	votes := make([]ClaimVote, 0, limit)
	err := g.db.WithContext(ctx).
		Where("revealed = ? AND reveal_at <= ?", false, deadline).
		Order("id ASC").
		Limit(limit).
		Find(&votes).Error
	return votes, err
}

func (g *voteDAO) MarkRevealed(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Model(&ClaimVote{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"revealed": true,
			"utime":    time.Now().UnixMilli(),
		}).Error
}

type ClaimVote struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:投票自增ID"`
	ClaimId int64  `gorm:"not null;uniqueIndex:unq_claim_uid;comment:命题ID"`
	Uid     int64  `gorm:"not null;uniqueIndex:unq_claim_uid;index:idx_uid;comment:用户ID"`
	Side    string `gorm:"type:varchar(8);not null;comment:yes或no"`
	// VotedAt 即 Ctime，RevealAt = VotedAt + 6h
	RevealAt int64 `gorm:"not null;index:idx_reveal;comment:可揭示时间"`
	Revealed bool  `gorm:"not null;default:false;index:idx_reveal;comment:是否已揭示"`
	Ctime    int64
	Utime    int64
}

// Market 投票只负责累加计数，表结构归 claim 模块管
type Market struct {
	Id         int64  `gorm:"primaryKey;autoIncrement"`
	ClaimId    int64  `gorm:"uniqueIndex:unq_claim_id"`
	Status     string `gorm:"type:varchar(16)"`
	YesVotes   int64
	NoVotes    int64
	TotalVotes int64
	Utime      int64
}

func (Market) TableName() string {
	return "markets"
}

// CoinAccount 投票扣费直接走金币表，表结构归 coin 模块管
type CoinAccount struct {
	Id      int64 `gorm:"primaryKey;autoIncrement"`
	Uid     int64 `gorm:"uniqueIndex:unq_uid"`
	Balance int64
	Utime   int64
}

func (CoinAccount) TableName() string {
	return "coin_accounts"
}

type CoinLog struct {
	Id      int64 `gorm:"primaryKey;autoIncrement"`
	Uid     int64
	Amount  int64
	Balance int64
	Biz     string `gorm:"type:varchar(32)"`
	Ctime   int64
	Utime   int64
}

func (CoinLog) TableName() string {
	return "coin_logs"
}
