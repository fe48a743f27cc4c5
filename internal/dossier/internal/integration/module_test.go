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
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ego-component/egorm"
	"github.com/healthproof/healthproof/internal/claim"
	"github.com/healthproof/healthproof/internal/dossier/internal/domain"
	"github.com/healthproof/healthproof/internal/dossier/internal/repository"
	"github.com/healthproof/healthproof/internal/dossier/internal/repository/dao"
	"github.com/healthproof/healthproof/internal/dossier/internal/service"
	testioc "github.com/healthproof/healthproof/internal/test/ioc"
	"github.com/healthproof/healthproof/internal/vote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// stubLLM 按预设回复生成档案，不出门
type stubLLM struct {
	dossier domain.Dossier
	err     error
	calls   atomic.Int64
}

func (s *stubLLM) Generate(ctx context.Context, prompt string) (domain.Dossier, error) {
	s.calls.Add(1)
	if s.err != nil {
		return domain.Dossier{}, s.err
	}
	return s.dossier, nil
}

type ModuleTestSuite struct {
	suite.Suite
	db       *egorm.Component
	claimSvc claim.AdminService
	querySvc claim.Service
	llm      *stubLLM
	svc      service.Service
}

func TestModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	q := testioc.InitMQ()
	voteModule, err := vote.InitModule(s.db)
	require.NoError(s.T(), err)
	claimModule, err := claim.InitModule(s.db, q, voteModule)
	require.NoError(s.T(), err)
	s.claimSvc = claimModule.AdminSvc
	s.querySvc = claimModule.Svc

	require.NoError(s.T(), dao.InitTables(s.db))
	s.llm = &stubLLM{}
	s.svc = service.NewService(
		repository.NewDossierRepository(dao.NewDossierJobGORMDAO(s.db)),
		claimModule.Svc,
		s.llm,
	)
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
	s.llm.err = nil
	s.llm.dossier = domain.Dossier{}
}

func (s *ModuleTestSuite) createClaim() int64 {
	s.T().Helper()
	id, err := s.claimSvc.Create(context.Background(), claim.Claim{
		Title:      "断食延长寿命",
		Difficulty: claim.DifficultyHard,
	})
	require.NoError(s.T(), err)
	return id
}

func (s *ModuleTestSuite) TestGenerate() {
	t := s.T()
	id := s.createClaim()
	s.llm.dossier = domain.Dossier{
		Verdict:    "YES",
		Confidence: 0.72,
		Summary:    "动物实验一致，人体证据有限。",
	}

	require.NoError(t, s.svc.Generate(context.Background(), id))

	// 市场定论
	c, _, err := s.querySvc.Detail(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, claim.MarketStatusResolved, c.Market.Status)
	assert.Equal(t, "YES", c.Market.AIVerdict)
	assert.InDelta(t, 0.72, c.Market.AIConfidence, 1e-9)
	assert.Equal(t, "动物实验一致，人体证据有限。", c.Market.ConsensusSummary)
	assert.False(t, c.Market.ResolvedAt.IsZero())

	// 任务落了成功态
	var job dao.DossierJob
	require.NoError(t, s.db.First(&job, "claim_id = ?", id).Error)
	assert.Equal(t, "success", job.Status)
	assert.Equal(t, int64(1), job.Attempts)
}

func (s *ModuleTestSuite) TestGenerate_LLMFailed() {
	t := s.T()
	id := s.createClaim()
	s.llm.err = errors.New("模型超时")

	err := s.svc.Generate(context.Background(), id)
	assert.Error(t, err)

	// 失败不动市场
	c, _, err := s.querySvc.Detail(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, claim.MarketStatusResearching, c.Market.Status)
	assert.Empty(t, c.Market.AIVerdict)

	var job dao.DossierJob
	require.NoError(t, s.db.First(&job, "claim_id = ?", id).Error)
	assert.Equal(t, "failed", job.Status)

	// 失败之后可以重试，attempts 累加
	s.llm.err = nil
	s.llm.dossier = domain.Dossier{Verdict: "NO", Confidence: 0.6, Summary: "证据不足。"}
	require.NoError(t, s.svc.Generate(context.Background(), id))
	require.NoError(t, s.db.First(&job, "claim_id = ?", id).Error)
	assert.Equal(t, "success", job.Status)
	assert.Equal(t, int64(2), job.Attempts)
}

func (s *ModuleTestSuite) TestGenerate_AlreadyRunning() {
	t := s.T()
	id := s.createClaim()
	// 手工放一个在跑的任务
	require.NoError(t, s.db.Create(&dao.DossierJob{
		ClaimId:  id,
		Status:   "running",
		Attempts: 1,
	}).Error)

	err := s.svc.Generate(context.Background(), id)
	assert.ErrorIs(t, err, service.ErrJobRunning)
	// 没去打模型
	assert.Equal(t, int64(0), s.llm.calls.Load())
}

func (s *ModuleTestSuite) TestGenerate_ClaimMissing() {
	t := s.T()
	err := s.svc.Generate(context.Background(), 99999)
	assert.ErrorIs(t, err, claim.ErrRecordNotFound)

	// 拿不到命题算失败
	var job dao.DossierJob
	require.NoError(t, s.db.First(&job, "claim_id = ?", 99999).Error)
	assert.Equal(t, "failed", job.Status)
}
