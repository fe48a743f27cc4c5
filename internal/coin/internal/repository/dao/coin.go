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
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrDuplicatedCoinLog 幂等键冲突，说明这笔奖励已经发过了
	ErrDuplicatedCoinLog = errors.New("金币流水重复")
	// ErrCoinNotEnough 余额不足
	ErrCoinNotEnough = errors.New("金币不足")
)

type CoinDAO interface {
	FindAccountByUID(ctx context.Context, uid int64) (CoinAccount, error)
	// Credit 入账。l.Key 非空时借助唯一索引保证幂等
	Credit(ctx context.Context, l CoinLog) (int64, error)
	// Debit 出账。余额不足返回 ErrCoinNotEnough，不会产生任何写入
	Debit(ctx context.Context, l CoinLog) (int64, error)
	FindLogsByUID(ctx context.Context, uid int64, biz string, offset, limit int) ([]CoinLog, error)
	CountLogsByUID(ctx context.Context, uid int64, biz string) (int64, error)
}

type coinDAO struct {
	db *egorm.Component
}

func NewCoinGORMDAO(db *egorm.Component) CoinDAO {
	return &coinDAO{db: db}
}

func (g *coinDAO) FindAccountByUID(ctx context.Context, uid int64) (CoinAccount, error) {
	var res CoinAccount
	err := g.db.WithContext(ctx).First(&res, "uid = ?", uid).Error
	return res, err
}

func (g *coinDAO) Credit(ctx context.Context, l CoinLog) (int64, error) {
	var balance int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		// 账户可能还不存在，第一笔入账时顺手建出来
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "uid"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance": gorm.Expr("`balance` + ?", l.Amount),
				"utime":   now,
			}),
		}).Create(&CoinAccount{
			Uid:     l.Uid,
			Balance: l.Amount,
			Ctime:   now,
			Utime:   now,
		}).Error
		if err != nil {
			return err
		}
		var account CoinAccount
		if err = tx.First(&account, "uid = ?", l.Uid).Error; err != nil {
			return err
		}
		balance = account.Balance
		l.Balance = balance
		l.Ctime, l.Utime = now, now
		if err = tx.Create(&l).Error; err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) {
				const uniqueIndexErrNo uint16 = 1062
				if me.Number == uniqueIndexErrNo {
					// 回滚账户变更
					return fmt.Errorf("%w", ErrDuplicatedCoinLog)
				}
			}
			return err
		}
		return nil
	})
	return balance, err
}

func (g *coinDAO) Debit(ctx context.Context, l CoinLog) (int64, error) {
	var balance int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		// 条件更新挡住并发场景下的超扣
		res := tx.Model(&CoinAccount{}).
			Where("uid = ? AND balance >= ?", l.Uid, -l.Amount).
			Updates(map[string]any{
				"balance": gorm.Expr("`balance` + ?", l.Amount),
				"utime":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected < 1 {
			return fmt.Errorf("%w", ErrCoinNotEnough)
		}
		var account CoinAccount
		if err := tx.First(&account, "uid = ?", l.Uid).Error; err != nil {
			return err
		}
		balance = account.Balance
		l.Balance = balance
		l.Ctime, l.Utime = now, now
		return tx.Create(&l).Error
	})
	return balance, err
}

func (g *coinDAO) FindLogsByUID(ctx context.Context, uid int64, biz string, offset, limit int) ([]CoinLog, error) {
	logs := make([]CoinLog, 0, limit)
	query := g.db.WithContext(ctx).Model(&CoinLog{}).Where("uid = ?", uid)
	if biz != "" {
		query = query.Where("biz = ?", biz)
	}
	err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, err
}

func (g *coinDAO) CountLogsByUID(ctx context.Context, uid int64, biz string) (int64, error) {
	var res int64
	query := g.db.WithContext(ctx).Model(&CoinLog{}).Where("uid = ?", uid)
	if biz != "" {
		query = query.Where("biz = ?", biz)
	}
	err := query.Count(&res).Error
	return res, err
}

type CoinAccount struct {
	Id      int64 `gorm:"primaryKey;autoIncrement;comment:金币账户自增ID"`
	Uid     int64 `gorm:"not null;uniqueIndex:unq_uid;comment:用户ID"`
	Balance int64 `gorm:"not null;default:0;comment:当前余额,流水累加的缓存"`
	Ctime   int64
	Utime   int64
}

type CoinLog struct {
	Id  int64 `gorm:"primaryKey;autoIncrement;comment:金币流水自增ID"`
	Uid int64 `gorm:"not null;index:idx_uid;comment:用户ID"`
	// 正数为入账，负数为出账
	Amount int64 `gorm:"not null;comment:变动数量"`
	// 变动之后的余额
	Balance int64          `gorm:"not null;comment:变动后余额"`
	Biz     string         `gorm:"type:varchar(32);not null;comment:业务类型"`
	Key     sql.NullString `gorm:"type:varchar(128);uniqueIndex:unq_key;comment:幂等键"`
	Ctime   int64
	Utime   int64
}
