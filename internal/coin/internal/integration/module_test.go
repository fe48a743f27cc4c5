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

//go:build e2e

package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/healthproof/healthproof/internal/coin"
	"github.com/healthproof/healthproof/internal/coin/internal/domain"
	"github.com/healthproof/healthproof/internal/coin/internal/event"
	"github.com/healthproof/healthproof/internal/coin/internal/service"
	testioc "github.com/healthproof/healthproof/internal/test/ioc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ModuleTestSuite struct {
	suite.Suite
	db  *egorm.Component
	mq  mq.MQ
	svc coin.Service
}

func TestModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.mq = testioc.InitMQ()
	module, err := coin.InitModule(s.db, s.mq)
	require.NoError(s.T(), err)
	s.svc = module.Svc
}

func (s *ModuleTestSuite) TearDownSuite() {
	err := s.db.Exec("DROP TABLE `coin_accounts`").Error
	s.NoError(err)
	err = s.db.Exec("DROP TABLE `coin_logs`").Error
	s.NoError(err)
}

func (s *ModuleTestSuite) TearDownTest() {
	err := s.db.Exec("TRUNCATE TABLE `coin_accounts`").Error
	s.NoError(err)
	err = s.db.Exec("TRUNCATE TABLE `coin_logs`").Error
	s.NoError(err)
}

func (s *ModuleTestSuite) TestConsumer_ConsumeRegistrationEvent() {
	t := s.T()
	producer, err := s.mq.Producer("user_registration_events")
	require.NoError(t, err)

	consumer, err := event.NewSignupBonusConsumer(s.svc, s.mq)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = consumer.Stop(context.Background())
	})

	const uid int64 = 2991
	evt := event.RegistrationEvent{Uid: uid}
	body, err := json.Marshal(evt)
	require.NoError(t, err)

	// 事件重复投递，奖励只应发一次
	for i := 0; i < 2; i++ {
		_, err = producer.Produce(context.Background(), &mq.Message{Value: body})
		require.NoError(t, err)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = consumer.Consume(ctx)
		cancel()
		require.NoError(t, err)
	}

	balance, err := s.svc.Balance(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	logs, total, err := s.svc.History(context.Background(), uid, domain.BizSignupBonus, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(100), logs[0].Amount)
}

func (s *ModuleTestSuite) TestCredit() {
	t := s.T()
	testCases := []struct {
		name    string
		before  func(t *testing.T, uid int64)
		uid     int64
		amount  int64
		key     string
		wantErr error
		after   func(t *testing.T, uid int64)
	}{
		{
			name:   "首笔入账顺带建账户",
			before: func(t *testing.T, uid int64) {},
			uid:    3001,
			amount: 50,
			after: func(t *testing.T, uid int64) {
				balance, err := s.svc.Balance(context.Background(), uid)
				require.NoError(t, err)
				assert.Equal(t, int64(50), balance)
			},
		},
		{
			name: "重复幂等键只记一次",
			before: func(t *testing.T, uid int64) {
				_, err := s.svc.Credit(context.Background(), uid, 30, domain.BizNewsletterBonus, "dup-key")
				require.NoError(t, err)
			},
			uid:     3002,
			amount:  30,
			key:     "dup-key",
			wantErr: coin.ErrDuplicatedCoinLog,
			after: func(t *testing.T, uid int64) {
				balance, err := s.svc.Balance(context.Background(), uid)
				require.NoError(t, err)
				assert.Equal(t, int64(30), balance)
			},
		},
		{
			name:    "非法金额",
			before:  func(t *testing.T, uid int64) {},
			uid:     3003,
			amount:  0,
			wantErr: service.ErrInvalidAmount,
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.before(t, tc.uid)
			_, err := s.svc.Credit(context.Background(), tc.uid, tc.amount, domain.BizNewsletterBonus, tc.key)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if tc.after != nil {
				tc.after(t, tc.uid)
			}
		})
	}
}

func (s *ModuleTestSuite) TestDebit() {
	t := s.T()
	const uid int64 = 3101
	_, err := s.svc.Credit(context.Background(), uid, 20, domain.BizDailyLogin, "")
	require.NoError(t, err)

	balance, err := s.svc.Debit(context.Background(), uid, 15, coin.BizVoteSpend)
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)

	// 余额不足，账户不动
	_, err = s.svc.Debit(context.Background(), uid, 6, coin.BizVoteSpend)
	assert.ErrorIs(t, err, coin.ErrCoinNotEnough)
	balance, err = s.svc.Balance(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)
}

func (s *ModuleTestSuite) TestDailyBonus() {
	t := s.T()
	const uid int64 = 3201
	balance, granted, err := s.svc.DailyBonus(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, int64(10), balance)

	// 当天第二次领不到，余额不变
	balance, granted, err = s.svc.DailyBonus(context.Background(), uid)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Equal(t, int64(10), balance)
}

func (s *ModuleTestSuite) TestNewsletterBonus() {
	t := s.T()
	const uid int64 = 3301
	balance, granted, err := s.svc.NewsletterBonus(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, int64(50), balance)

	balance, granted, err = s.svc.NewsletterBonus(context.Background(), uid)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Equal(t, int64(50), balance)
}

// 余额永远等于全部流水之和
func (s *ModuleTestSuite) TestBalanceMatchesLogs() {
	t := s.T()
	const uid int64 = 3401
	_, err := s.svc.Credit(context.Background(), uid, 100, domain.BizSignupBonus, domain.SignupKey(uid))
	require.NoError(t, err)
	_, err = s.svc.Credit(context.Background(), uid, 10, domain.BizDailyLogin, "")
	require.NoError(t, err)
	_, err = s.svc.Debit(context.Background(), uid, 37, coin.BizVoteSpend)
	require.NoError(t, err)

	balance, err := s.svc.Balance(context.Background(), uid)
	require.NoError(t, err)

	var sum int64
	err = s.db.Raw("SELECT COALESCE(SUM(amount), 0) FROM `coin_logs` WHERE uid = ?", uid).Scan(&sum).Error
	require.NoError(t, err)
	assert.Equal(t, sum, balance)
	assert.Equal(t, int64(73), balance)
}

func (s *ModuleTestSuite) TestHistory() {
	t := s.T()
	const uid int64 = 3501
	for i := 0; i < 3; i++ {
		_, err := s.svc.Credit(context.Background(), uid, int64(i+1), domain.BizDailyLogin, "")
		require.NoError(t, err)
	}
	_, err := s.svc.Debit(context.Background(), uid, 2, coin.BizVoteSpend)
	require.NoError(t, err)

	// 不过滤业务类型
	logs, total, err := s.svc.History(context.Background(), uid, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, logs, 4)
	// 按时间倒序
	assert.Equal(t, int64(-2), logs[0].Amount)

	// 按业务类型过滤加分页
	logs, total, err = s.svc.History(context.Background(), uid, domain.BizDailyLogin, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
}
