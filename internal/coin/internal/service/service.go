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

	"github.com/healthproof/healthproof/internal/coin/internal/domain"
	"github.com/healthproof/healthproof/internal/coin/internal/repository"
)

var (
	ErrCoinNotEnough     = repository.ErrCoinNotEnough
	ErrDuplicatedCoinLog = repository.ErrDuplicatedCoinLog
	ErrInvalidAmount     = errors.New("非法的金币数量")
)

const (
	dailyBonusAmount      = 10
	signupBonusAmount     = 100
	newsletterBonusAmount = 50
)

type Service interface {
	Credit(ctx context.Context, uid, amount int64, biz, key string) (int64, error)
	Debit(ctx context.Context, uid, amount int64, biz string) (int64, error)
	// DailyBonus 发放每日登录奖励。当天已经领过时 granted 为 false，余额不变
	DailyBonus(ctx context.Context, uid int64) (newBalance int64, granted bool, err error)
	SignupBonus(ctx context.Context, uid int64) error
	// NewsletterBonus 订阅奖励，一个用户只发一次
	NewsletterBonus(ctx context.Context, uid int64) (newBalance int64, granted bool, err error)
	Balance(ctx context.Context, uid int64) (int64, error)
	History(ctx context.Context, uid int64, biz string, offset, limit int) ([]domain.Transaction, int64, error)
}

type service struct {
	repo repository.CoinRepository
}

func NewCoinService(repo repository.CoinRepository) Service {
	return &service{repo: repo}
}

func (s *service) Credit(ctx context.Context, uid, amount int64, biz, key string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	return s.repo.Credit(ctx, uid, amount, biz, key)
}

func (s *service) Debit(ctx context.Context, uid, amount int64, biz string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	return s.repo.Debit(ctx, uid, amount, biz)
}

func (s *service) DailyBonus(ctx context.Context, uid int64) (int64, bool, error) {
	key := domain.DailyLoginKey(uid, time.Now())
	balance, err := s.repo.Credit(ctx, uid, dailyBonusAmount, domain.BizDailyLogin, key)
	if errors.Is(err, ErrDuplicatedCoinLog) {
		// 今天已经领过，把当前余额带回去
		balance, err = s.Balance(ctx, uid)
		return balance, false, err
	}
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

func (s *service) SignupBonus(ctx context.Context, uid int64) error {
	_, err := s.repo.Credit(ctx, uid, signupBonusAmount, domain.BizSignupBonus, domain.SignupKey(uid))
	if errors.Is(err, ErrDuplicatedCoinLog) {
		// 注册事件重复投递，忽略
		return nil
	}
	return err
}

func (s *service) NewsletterBonus(ctx context.Context, uid int64) (int64, bool, error) {
	balance, err := s.repo.Credit(ctx, uid, newsletterBonusAmount, domain.BizNewsletterBonus, domain.NewsletterKey(uid))
	if errors.Is(err, ErrDuplicatedCoinLog) {
		balance, err = s.Balance(ctx, uid)
		return balance, false, err
	}
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

func (s *service) Balance(ctx context.Context, uid int64) (int64, error) {
	account, err := s.repo.GetAccountByUID(ctx, uid)
	if errors.Is(err, repository.ErrRecordNotFound) {
		// 还没有任何流水
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (s *service) History(ctx context.Context, uid int64, biz string, offset, limit int) ([]domain.Transaction, int64, error) {
	const maxLimit = 100
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListTransactions(ctx, uid, biz, offset, limit)
}
