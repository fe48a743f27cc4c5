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
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/healthproof/healthproof/internal/coin"
	"github.com/healthproof/healthproof/internal/test"
	testioc "github.com/healthproof/healthproof/internal/test/ioc"
	"github.com/healthproof/healthproof/internal/user"
	"github.com/healthproof/healthproof/internal/user/internal/errs"
	userevt "github.com/healthproof/healthproof/internal/user/internal/event"
	"github.com/healthproof/healthproof/internal/user/internal/repository/dao"
	"github.com/healthproof/healthproof/internal/user/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testUID int64 = 123

// coinAccount 金币表归 coin 模块管，测试里只用来预置余额
type coinAccount struct {
	Id      int64 `gorm:"primaryKey;autoIncrement"`
	Uid     int64
	Balance int64
	Ctime   int64
	Utime   int64
}

func (coinAccount) TableName() string {
	return "coin_accounts"
}

type HandlerTestSuite struct {
	suite.Suite
	db     *egorm.Component
	cache  ecache.Cache
	mq     mq.MQ
	server *egin.Component
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.cache = testioc.InitCache()
	s.mq = testioc.InitMQ()
	coinModule, err := coin.InitModule(s.db, s.mq)
	require.NoError(s.T(), err)
	module, err := user.InitModule(s.db, s.cache, s.mq, coinModule)
	require.NoError(s.T(), err)

	econf.Set("server", map[string]any{"debug": true})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: testUID,
		}))
	})
	module.Hdl.PublicRoutes(server.Engine)
	module.Hdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *HandlerTestSuite) TearDownTest() {
	err := s.db.Exec("TRUNCATE TABLE `users`").Error
	s.NoError(err)
	err = s.db.Exec("TRUNCATE TABLE `coin_accounts`").Error
	s.NoError(err)
	err = s.db.Exec("TRUNCATE TABLE `coin_logs`").Error
	s.NoError(err)
}

// storedCode 从缓存里捞出刚发出去的验证码
func (s *HandlerTestSuite) storedCode(email string) string {
	s.T().Helper()
	val := s.cache.Get(context.Background(), "email_code:"+email)
	require.NoError(s.T(), val.Err)
	code, err := val.String()
	require.NoError(s.T(), err)
	return code
}

func (s *HandlerTestSuite) sendCode(email string) {
	s.T().Helper()
	req, err := http.NewRequest(http.MethodPost,
		"/users/code", iox.NewJSONReader(web.SendCodeReq{Email: email}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(s.T(), 200, recorder.Code)
	require.Equal(s.T(), "OK", recorder.MustScan().Msg)
}

func (s *HandlerTestSuite) login(email, code string) (int, test.Result[web.Profile]) {
	s.T().Helper()
	req, err := http.NewRequest(http.MethodPost,
		"/users/login", iox.NewJSONReader(web.LoginReq{Email: email, Code: code}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.Profile]()
	s.server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.MustScan()
}

func (s *HandlerTestSuite) TestLogin() {
	t := s.T()
	const email = "tester@healthproof.icu"

	consumer, err := s.mq.Consumer("user_registration_events", "test-user")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = consumer.Close()
	})

	s.sendCode(email)
	code := s.storedCode(email)

	httpCode, res := s.login(email, code)
	require.Equal(t, 200, httpCode)
	assert.Equal(t, 0, res.Code)
	assert.Equal(t, email, res.Data.Email)
	// 昵称默认取邮箱前缀
	assert.Equal(t, "tester", res.Data.Nickname)
	assert.False(t, res.Data.IsAdmin)
	assert.True(t, res.Data.Id > 0)

	var u dao.User
	require.NoError(t, s.db.Where("email = ?", email).First(&u).Error)
	assert.NotEmpty(t, u.SN)
	assert.Equal(t, time.Now().Format(time.DateOnly), u.LastLoginDate)

	// 注册事件发出去了，金币模块靠它发注册奖励
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	msg, err := consumer.Consume(ctx)
	require.NoError(t, err)
	var evt userevt.RegistrationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, u.Id, evt.Uid)

	// 二次登录是同一个用户
	s.sendCode(email)
	httpCode, res = s.login(email, s.storedCode(email))
	require.Equal(t, 200, httpCode)
	assert.Equal(t, u.Id, res.Data.Id)
}

func (s *HandlerTestSuite) TestLogin_CodeMismatch() {
	t := s.T()
	const email = "mismatch@healthproof.icu"
	s.sendCode(email)

	httpCode, res := s.login(email, "000000x")
	require.Equal(t, 200, httpCode)
	assert.Equal(t, errs.CodeMismatch.Code, res.Code)

	// 验证码用过一次就作废
	code := s.storedCode(email)
	httpCode, res = s.login(email, code)
	require.Equal(t, 200, httpCode)
	assert.Equal(t, 0, res.Code)
	httpCode, res = s.login(email, code)
	require.Equal(t, 200, httpCode)
	assert.Equal(t, errs.CodeMismatch.Code, res.Code)
}

// 从没发过验证码也按验证码不对处理，不能落成系统错误
func (s *HandlerTestSuite) TestLogin_CodeNeverSent() {
	t := s.T()
	httpCode, res := s.login("nocode@healthproof.icu", "123456")
	require.Equal(t, 200, httpCode)
	assert.Equal(t, errs.CodeMismatch.Code, res.Code)
}

func (s *HandlerTestSuite) TestLogin_InvalidEmail() {
	t := s.T()
	for _, email := range []string{"", "no-at-sign", "@nothing", "trailing@", "white space@x.com"} {
		httpCode, res := s.login(email, "123456")
		require.Equal(t, 200, httpCode)
		assert.Equal(t, errs.InvalidEmail.Code, res.Code, email)
	}
}

func (s *HandlerTestSuite) TestProfile() {
	t := s.T()
	now := time.Now().UnixMilli()
	require.NoError(t, s.db.Create(&dao.User{
		Id:            testUID,
		SN:            "sn-123",
		Email:         "profile@healthproof.icu",
		Nickname:      "老用户",
		LastLoginDate: "2026-08-29",
		Ctime:         now,
		Utime:         now,
	}).Error)
	// 预置一点余额
	require.NoError(t, s.db.Create(&coinAccount{
		Uid:     testUID,
		Balance: 110,
		Ctime:   now,
		Utime:   now,
	}).Error)

	req, err := http.NewRequest(http.MethodGet, "/users/profile", nil)
	require.NoError(t, err)
	recorder := test.NewJSONResponseRecorder[web.Profile]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	res := recorder.MustScan()
	assert.Equal(t, web.Profile{
		Id:            testUID,
		Nickname:      "老用户",
		Email:         "profile@healthproof.icu",
		Balance:       110,
		LastLoginDate: "2026-08-29",
	}, res.Data)
}

func (s *HandlerTestSuite) TestEditProfile() {
	t := s.T()
	now := time.Now().UnixMilli()
	require.NoError(t, s.db.Create(&dao.User{
		Id:       testUID,
		SN:       "sn-123",
		Email:    "edit@healthproof.icu",
		Nickname: "旧昵称",
		Ctime:    now,
		Utime:    now,
	}).Error)

	req, err := http.NewRequest(http.MethodPost,
		"/users/profile", iox.NewJSONReader(web.EditReq{Nickname: "新昵称"}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	assert.Equal(t, "OK", recorder.MustScan().Msg)

	var u dao.User
	require.NoError(t, s.db.Where("id = ?", testUID).First(&u).Error)
	assert.Equal(t, "新昵称", u.Nickname)
	// 改昵称不许顺带改邮箱
	assert.Equal(t, "edit@healthproof.icu", u.Email)
}
