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
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/healthproof/healthproof/internal/test"
	testioc "github.com/healthproof/healthproof/internal/test/ioc"
	"github.com/healthproof/healthproof/internal/vote"
	"github.com/healthproof/healthproof/internal/vote/internal/domain"
	"github.com/healthproof/healthproof/internal/vote/internal/repository/dao"
	"github.com/healthproof/healthproof/internal/vote/internal/service"
	"github.com/healthproof/healthproof/internal/vote/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ModuleTestSuite struct {
	suite.Suite
	db  *egorm.Component
	svc vote.Service
	hdl *vote.Handler
}

func TestModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	// markets 和金币表归别的模块管，测试里按本模块的映射自己建出来
	require.NoError(s.T(), s.db.AutoMigrate(&dao.Market{}, &dao.CoinAccount{}, &dao.CoinLog{}))
	module, err := vote.InitModule(s.db)
	require.NoError(s.T(), err)
	s.svc = module.Svc
	s.hdl = module.Hdl
}

func (s *ModuleTestSuite) TearDownSuite() {
	for _, table := range []string{"claim_votes", "markets", "coin_accounts", "coin_logs"} {
		err := s.db.Exec("DROP TABLE `" + table + "`").Error
		s.NoError(err)
	}
}

func (s *ModuleTestSuite) TearDownTest() {
	for _, table := range []string{"claim_votes", "markets", "coin_accounts", "coin_logs"} {
		err := s.db.Exec("TRUNCATE TABLE `" + table + "`").Error
		s.NoError(err)
	}
}

func (s *ModuleTestSuite) seedMarket(claimId int64, status string) {
	s.T().Helper()
	err := s.db.Create(&dao.Market{
		ClaimId: claimId,
		Status:  status,
		Utime:   time.Now().UnixMilli(),
	}).Error
	require.NoError(s.T(), err)
}

func (s *ModuleTestSuite) seedBalance(uid, balance int64) {
	s.T().Helper()
	now := time.Now().UnixMilli()
	err := s.db.Create(&dao.CoinAccount{
		Uid:     uid,
		Balance: balance,
		Utime:   now,
	}).Error
	require.NoError(s.T(), err)
}

func (s *ModuleTestSuite) TestVote() {
	testCases := []struct {
		name    string
		before  func(t *testing.T)
		uid     int64
		claimId int64
		side    domain.Side
		wantErr error
		after   func(t *testing.T)
	}{
		{
			name: "投YES成功",
			before: func(t *testing.T) {
				s.seedMarket(101, "active")
				s.seedBalance(1001, 10)
			},
			uid:     1001,
			claimId: 101,
			side:    vote.SideYes,
			after: func(t *testing.T) {
				var market dao.Market
				require.NoError(t, s.db.First(&market, "claim_id = ?", 101).Error)
				assert.Equal(t, int64(1), market.YesVotes)
				assert.Equal(t, int64(0), market.NoVotes)
				assert.Equal(t, int64(1), market.TotalVotes)
				var account dao.CoinAccount
				require.NoError(t, s.db.First(&account, "uid = ?", 1001).Error)
				assert.Equal(t, int64(9), account.Balance)
				var log dao.CoinLog
				require.NoError(t, s.db.First(&log, "uid = ?", 1001).Error)
				assert.Equal(t, int64(-1), log.Amount)
				assert.Equal(t, "vote_spend", log.Biz)
			},
		},
		{
			name: "命题不存在",
			before: func(t *testing.T) {
				s.seedBalance(1002, 10)
			},
			uid:     1002,
			claimId: 999,
			side:    vote.SideYes,
			wantErr: service.ErrMarketNotFound,
		},
		{
			name: "命题未开放投票",
			before: func(t *testing.T) {
				s.seedMarket(103, "resolved")
				s.seedBalance(1003, 10)
			},
			uid:     1003,
			claimId: 103,
			side:    vote.SideNo,
			wantErr: service.ErrMarketNotActive,
		},
		{
			name: "重复投票",
			before: func(t *testing.T) {
				s.seedMarket(104, "active")
				s.seedBalance(1004, 10)
				_, _, err := s.svc.Vote(context.Background(), 1004, 104, vote.SideYes)
				require.NoError(t, err)
			},
			uid:     1004,
			claimId: 104,
			side:    vote.SideNo,
			wantErr: service.ErrDuplicatedVote,
			after: func(t *testing.T) {
				// 第二票没扣钱
				var account dao.CoinAccount
				require.NoError(t, s.db.First(&account, "uid = ?", 1004).Error)
				assert.Equal(t, int64(9), account.Balance)
			},
		},
		{
			name: "余额不足",
			before: func(t *testing.T) {
				s.seedMarket(105, "active")
				s.seedBalance(1005, 0)
			},
			uid:     1005,
			claimId: 105,
			side:    vote.SideYes,
			wantErr: service.ErrCoinNotEnough,
			after: func(t *testing.T) {
				// 整体回滚，计数不动
				var market dao.Market
				require.NoError(t, s.db.First(&market, "claim_id = ?", 105).Error)
				assert.Equal(t, int64(0), market.TotalVotes)
			},
		},
		{
			name: "没有金币账户",
			before: func(t *testing.T) {
				s.seedMarket(106, "active")
			},
			uid:     1006,
			claimId: 106,
			side:    vote.SideYes,
			wantErr: service.ErrCoinNotEnough,
		},
		{
			name:    "非法方向",
			before:  func(t *testing.T) {},
			uid:     1007,
			claimId: 107,
			side:    domain.Side("maybe"),
			wantErr: service.ErrInvalidSide,
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			t := s.T()
			tc.before(t)
			v, balance, err := s.svc.Vote(context.Background(), tc.uid, tc.claimId, tc.side)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.side, v.Side)
				assert.Equal(t, int64(9), balance)
				assert.WithinDuration(t, v.VotedAt.Add(domain.RevealDelay), v.RevealAt, time.Second)
			}
			if tc.after != nil {
				tc.after(t)
			}
		})
	}
}

// 任何时刻 total_votes 都等于 yes_votes + no_votes
func (s *ModuleTestSuite) TestVoteCounters() {
	t := s.T()
	s.seedMarket(201, "active")
	sides := []domain.Side{vote.SideYes, vote.SideYes, vote.SideNo}
	for i, side := range sides {
		uid := int64(2001 + i)
		s.seedBalance(uid, 5)
		_, _, err := s.svc.Vote(context.Background(), uid, 201, side)
		require.NoError(t, err)
	}
	var market dao.Market
	require.NoError(t, s.db.First(&market, "claim_id = ?", 201).Error)
	assert.Equal(t, int64(2), market.YesVotes)
	assert.Equal(t, int64(1), market.NoVotes)
	assert.Equal(t, market.YesVotes+market.NoVotes, market.TotalVotes)
}

func (s *ModuleTestSuite) TestVoteOf() {
	t := s.T()
	s.seedMarket(301, "active")
	s.seedBalance(3001, 5)
	_, _, err := s.svc.Vote(context.Background(), 3001, 301, vote.SideNo)
	require.NoError(t, err)

	v, err := s.svc.VoteOf(context.Background(), 3001, 301)
	require.NoError(t, err)
	assert.Equal(t, vote.SideNo, v.Side)

	_, err = s.svc.VoteOf(context.Background(), 3001, 999)
	assert.ErrorIs(t, err, vote.ErrRecordNotFound)
}

// 线上协议里写的是 YES/NO，web 层大小写不敏感
func (s *ModuleTestSuite) TestVoteHandler_UppercaseSide() {
	t := s.T()
	s.seedMarket(501, "active")
	s.seedBalance(5001, 3)

	econf.Set("server", map[string]any{"debug": true})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{Uid: 5001}))
	})
	s.hdl.PrivateRoutes(server.Engine)

	req, err := http.NewRequest(http.MethodPost,
		"/claim/vote", iox.NewJSONReader(web.VoteReq{ClaimId: 501, Side: "YES"}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.VoteResp]()
	server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	res := recorder.MustScan()
	assert.Equal(t, 0, res.Code)
	assert.Equal(t, "yes", res.Data.Vote.Side)
}

func (s *ModuleTestSuite) TestRevealDue() {
	t := s.T()
	now := time.Now().UnixMilli()
	votes := []dao.ClaimVote{
		{ClaimId: 401, Uid: 4001, Side: "yes", RevealAt: now - 1000, Ctime: now, Utime: now},
		{ClaimId: 401, Uid: 4002, Side: "no", RevealAt: now - 1000, Ctime: now, Utime: now},
		// 还没到揭示时间
		{ClaimId: 401, Uid: 4003, Side: "yes", RevealAt: now + int64(time.Hour/time.Millisecond), Ctime: now, Utime: now},
	}
	for i := range votes {
		require.NoError(t, s.db.Create(&votes[i]).Error)
	}

	cnt, err := s.svc.RevealDue(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, cnt)

	var revealed int64
	require.NoError(t, s.db.Model(&dao.ClaimVote{}).Where("revealed = ?", true).Count(&revealed).Error)
	assert.Equal(t, int64(2), revealed)

	// 再跑一遍没有新的可揭示
	cnt, err = s.svc.RevealDue(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, cnt)
}
