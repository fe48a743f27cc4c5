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
	"github.com/healthproof/healthproof/internal/claim"
	"github.com/healthproof/healthproof/internal/claim/internal/domain"
	"github.com/healthproof/healthproof/internal/claim/internal/event"
	"github.com/healthproof/healthproof/internal/claim/internal/service"
	testioc "github.com/healthproof/healthproof/internal/test/ioc"
	"github.com/healthproof/healthproof/internal/vote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// 投票表和任务表归别的模块管，测试里只拿来塞统计素材
type claimVote struct {
	Id       int64 `gorm:"primaryKey;autoIncrement"`
	ClaimId  int64
	Uid      int64
	Side     string `gorm:"type:varchar(8)"`
	RevealAt int64
	Revealed bool
	Ctime    int64
	Utime    int64
}

func (claimVote) TableName() string {
	return "claim_votes"
}

type dossierJob struct {
	Id       int64 `gorm:"primaryKey;autoIncrement"`
	ClaimId  int64
	Status   string `gorm:"type:varchar(16)"`
	Attempts int64
	Ctime    int64
	Utime    int64
}

func (dossierJob) TableName() string {
	return "dossier_jobs"
}

type ModuleTestSuite struct {
	suite.Suite
	db       *egorm.Component
	mq       mq.MQ
	svc      claim.Service
	adminSvc claim.AdminService
}

func TestModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.mq = testioc.InitMQ()
	voteModule, err := vote.InitModule(s.db)
	require.NoError(s.T(), err)
	// 管理端列表要数 dossier_jobs，表归 dossier 模块管，测试里自己建出来
	require.NoError(s.T(), s.db.AutoMigrate(&dossierJob{}))
	module, err := claim.InitModule(s.db, s.mq, voteModule)
	require.NoError(s.T(), err)
	s.svc = module.Svc
	s.adminSvc = module.AdminSvc
}

func (s *ModuleTestSuite) TearDownSuite() {
	for _, table := range []string{"claims", "markets", "papers", "claim_papers", "claim_votes", "dossier_jobs"} {
		err := s.db.Exec("DROP TABLE `" + table + "`").Error
		s.NoError(err)
	}
}

func (s *ModuleTestSuite) TearDownTest() {
	for _, table := range []string{"claims", "markets", "papers", "claim_papers", "claim_votes", "dossier_jobs"} {
		err := s.db.Exec("TRUNCATE TABLE `" + table + "`").Error
		s.NoError(err)
	}
}

func (s *ModuleTestSuite) createClaim(title string) int64 {
	s.T().Helper()
	id, err := s.adminSvc.Create(context.Background(), domain.Claim{
		Title:       title,
		Description: "说明",
		Difficulty:  domain.DifficultyMedium,
	})
	require.NoError(s.T(), err)
	return id
}

func (s *ModuleTestSuite) attachEvidence(claimId int64, stance domain.Stance, confidence float64) int64 {
	s.T().Helper()
	id, err := s.adminSvc.AttachEvidence(context.Background(), domain.Evidence{
		ClaimID: claimId,
		Paper: domain.Paper{
			Title:   "某论文",
			Journal: "某期刊",
			Year:    2021,
		},
		Stance:          stance,
		StudyType:       "RCT",
		AISummary:       "摘要",
		ConfidenceScore: confidence,
	})
	require.NoError(s.T(), err)
	return id
}

func (s *ModuleTestSuite) TestCreateAndDetail() {
	t := s.T()
	id := s.createClaim("每天八杯水有益健康")

	c, evidence, err := s.svc.Detail(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "每天八杯水有益健康", c.Title)
	// 新建的命题处于研究中，票数全零
	assert.Equal(t, domain.MarketStatusResearching, c.Market.Status)
	assert.Equal(t, int64(0), c.Market.TotalVotes)
	assert.Empty(t, evidence)

	_, _, err = s.svc.Detail(context.Background(), id+100)
	assert.ErrorIs(t, err, claim.ErrRecordNotFound)
}

func (s *ModuleTestSuite) TestCreate_Invalid() {
	t := s.T()
	_, err := s.adminSvc.Create(context.Background(), domain.Claim{
		Difficulty: domain.DifficultyEasy,
	})
	assert.ErrorIs(t, err, service.ErrInvalidClaim)

	_, err = s.adminSvc.Create(context.Background(), domain.Claim{
		Title:      "标题",
		Difficulty: domain.Difficulty("insane"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidClaim)
}

func (s *ModuleTestSuite) TestList() {
	t := s.T()
	ids := make([]int64, 0, 3)
	for _, title := range []string{"命题一", "命题二", "命题三"} {
		ids = append(ids, s.createClaim(title))
	}
	claims, err := s.svc.List(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	// 每一项都带市场
	for _, c := range claims {
		assert.Equal(t, c.ID, c.Market.ClaimID)
		assert.Equal(t, domain.MarketStatusResearching, c.Market.Status)
	}
	claims, err = s.svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	_ = ids
}

func (s *ModuleTestSuite) TestDetail_TopEvidence() {
	t := s.T()
	id := s.createClaim("维生素C预防感冒")
	scores := []float64{0.3, 0.9, 0.5, 0.7, 0.2, 0.8}
	for _, score := range scores {
		s.attachEvidence(id, domain.StanceSupports, score)
	}
	_, evidence, err := s.svc.Detail(context.Background(), id)
	require.NoError(t, err)
	// 详情页只带置信度最高的五条
	require.Len(t, evidence, 5)
	for i := 1; i < len(evidence); i++ {
		assert.GreaterOrEqual(t, evidence[i-1].ConfidenceScore, evidence[i].ConfidenceScore)
	}
	assert.Equal(t, 0.9, evidence[0].ConfidenceScore)
}

func (s *ModuleTestSuite) TestEvidenceList() {
	t := s.T()
	id := s.createClaim("深蹲伤膝盖")
	s.attachEvidence(id, domain.StanceSupports, 0.4)
	s.attachEvidence(id, domain.StanceRefutes, 0.8)
	s.attachEvidence(id, domain.StanceRefutes, 0.6)

	testCases := []struct {
		name      string
		stance    domain.Stance
		sort      domain.EvidenceSort
		offset    int
		limit     int
		wantTotal int64
		wantLen   int
		wantErr   error
		check     func(t *testing.T, evidence []domain.Evidence)
	}{
		{
			name:      "默认按置信度",
			wantTotal: 3,
			wantLen:   3,
			check: func(t *testing.T, evidence []domain.Evidence) {
				assert.Equal(t, 0.8, evidence[0].ConfidenceScore)
			},
		},
		{
			name:      "按立场过滤",
			stance:    domain.StanceRefutes,
			wantTotal: 2,
			wantLen:   2,
		},
		{
			name:      "按收录时间",
			sort:      domain.SortRecency,
			wantTotal: 3,
			wantLen:   3,
		},
		{
			name:      "分页",
			offset:    2,
			limit:     2,
			wantTotal: 3,
			wantLen:   1,
		},
		{
			name:    "非法立场不碰数据库",
			stance:  domain.Stance("NEUTRAL"),
			wantErr: service.ErrInvalidStance,
		},
		{
			name:    "非法排序",
			sort:    domain.EvidenceSort("hotness"),
			wantErr: service.ErrInvalidSort,
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			t := s.T()
			evidence, total, err := s.svc.EvidenceList(context.Background(), id, tc.stance, tc.sort, tc.offset, tc.limit)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, total)
			assert.Len(t, evidence, tc.wantLen)
			if tc.check != nil {
				tc.check(t, evidence)
			}
		})
	}
}

func (s *ModuleTestSuite) TestAttachEvidence_Invalid() {
	t := s.T()
	id := s.createClaim("咖啡致癌")
	_, err := s.adminSvc.AttachEvidence(context.Background(), domain.Evidence{
		ClaimID: id,
		Stance:  domain.Stance("NEUTRAL"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidStance)

	_, err = s.adminSvc.AttachEvidence(context.Background(), domain.Evidence{
		ClaimID: id + 100,
		Stance:  domain.StanceSupports,
	})
	assert.ErrorIs(t, err, claim.ErrRecordNotFound)
}

func (s *ModuleTestSuite) TestActivate() {
	t := s.T()
	id := s.createClaim("冥想降血压")
	require.NoError(t, s.adminSvc.Activate(context.Background(), id))

	c, _, err := s.svc.Detail(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.MarketStatusActive, c.Market.Status)

	err = s.adminSvc.Activate(context.Background(), id+100)
	assert.ErrorIs(t, err, claim.ErrRecordNotFound)
}

func (s *ModuleTestSuite) TestAdminList() {
	t := s.T()
	first := s.createClaim("命题A")
	second := s.createClaim("命题B")
	require.NoError(t, s.adminSvc.Activate(context.Background(), second))
	s.attachEvidence(first, domain.StanceSupports, 0.5)
	s.attachEvidence(first, domain.StanceRefutes, 0.6)

	now := time.Now().UnixMilli()
	// 往投票表和任务表里塞统计素材
	require.NoError(t, s.db.Create(&claimVote{
		ClaimId: second, Uid: 9001, Side: "yes",
		RevealAt: now, Ctime: now, Utime: now,
	}).Error)
	require.NoError(t, s.db.Create(&dossierJob{
		ClaimId: second, Status: "success", Attempts: 1,
		Ctime: now, Utime: now,
	}).Error)

	res, err := s.adminSvc.List(context.Background(), "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, int64(1), res.TotalPages)
	require.Len(t, res.Claims, 2)

	byID := make(map[int64]domain.ClaimSummary, len(res.Claims))
	for _, summary := range res.Claims {
		byID[summary.Claim.ID] = summary
	}
	assert.Equal(t, int64(2), byID[first].EvidenceCount)
	assert.Equal(t, int64(0), byID[first].VoteCount)
	assert.Equal(t, int64(1), byID[second].VoteCount)
	assert.Equal(t, int64(1), byID[second].JobCount)

	// 按状态过滤
	res, err = s.adminSvc.List(context.Background(), domain.MarketStatusActive, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Claims, 1)
	assert.Equal(t, second, res.Claims[0].Claim.ID)

	// 分页取整
	res, err = s.adminSvc.List(context.Background(), "", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, int64(2), res.TotalPages)
	require.Len(t, res.Claims, 1)

	// 非法状态
	_, err = s.adminSvc.List(context.Background(), domain.MarketStatus("archived"), 1, 20)
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func (s *ModuleTestSuite) TestGenerateDossier() {
	t := s.T()
	id := s.createClaim("生酮饮食逆转糖尿病")

	consumer, err := s.mq.Consumer("dossier_events", "test-dossier")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = consumer.Close()
	})

	require.NoError(t, s.adminSvc.GenerateDossier(context.Background(), id))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	msg, err := consumer.Consume(ctx)
	require.NoError(t, err)
	var evt event.DossierEvent
	require.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, id, evt.ClaimId)

	// 命题不存在直接报错，不发事件
	err = s.adminSvc.GenerateDossier(context.Background(), id+100)
	assert.ErrorIs(t, err, claim.ErrRecordNotFound)
}
