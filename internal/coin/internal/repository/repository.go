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
	"github.com/healthproof/healthproof/internal/coin/internal/domain"
	"github.com/healthproof/healthproof/internal/coin/internal/repository/dao"
)

var (
	ErrDuplicatedCoinLog = dao.ErrDuplicatedCoinLog
	ErrCoinNotEnough     = dao.ErrCoinNotEnough
	ErrRecordNotFound    = dao.ErrRecordNotFound
)

type CoinRepository interface {
	// Credit key 非空时幂等，重复发放返回 ErrDuplicatedCoinLog
	Credit(ctx context.Context, uid, amount int64, biz, key string) (int64, error)
	Debit(ctx context.Context, uid, amount int64, biz string) (int64, error)
	GetAccountByUID(ctx context.Context, uid int64) (domain.Account, error)
	ListTransactions(ctx context.Context, uid int64, biz string, offset, limit int) ([]domain.Transaction, int64, error)
}

type coinRepository struct {
	dao dao.CoinDAO
}

func NewCoinRepository(dao dao.CoinDAO) CoinRepository {
	return &coinRepository{dao: dao}
}

func (r *coinRepository) Credit(ctx context.Context, uid, amount int64, biz, key string) (int64, error) {
	return r.dao.Credit(ctx, dao.CoinLog{
		Uid:    uid,
		Amount: amount,
		Biz:    biz,
		Key:    sql.NullString{String: key, Valid: key != ""},
	})
}

func (r *coinRepository) Debit(ctx context.Context, uid, amount int64, biz string) (int64, error) {
	return r.dao.Debit(ctx, dao.CoinLog{
		Uid:    uid,
		Amount: -amount,
		Biz:    biz,
	})
}

func (r *coinRepository) GetAccountByUID(ctx context.Context, uid int64) (domain.Account, error) {
	account, err := r.dao.FindAccountByUID(ctx, uid)
	if err != nil {
		return domain.Account{}, err
	}
	return domain.Account{
		Uid:     account.Uid,
		Balance: account.Balance,
	}, nil
}

func (r *coinRepository) ListTransactions(ctx context.Context, uid int64, biz string, offset, limit int) ([]domain.Transaction, int64, error) {
	logs, err := r.dao.FindLogsByUID(ctx, uid, biz, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.dao.CountLogsByUID(ctx, uid, biz)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(logs, func(idx int, src dao.CoinLog) domain.Transaction {
		return domain.Transaction{
			ID:      src.Id,
			Uid:     src.Uid,
			Biz:     src.Biz,
			Amount:  src.Amount,
			Balance: src.Balance,
			Key:     src.Key.String,
			Ctime:   time.UnixMilli(src.Ctime),
		}
	}), total, nil
}
