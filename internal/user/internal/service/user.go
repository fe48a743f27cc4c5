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
	"strings"
	"time"

	"github.com/healthproof/healthproof/internal/user/internal/event"
	"github.com/lithammer/shortuuid/v4"

	"github.com/gotomicro/ego/core/elog"
	"github.com/healthproof/healthproof/internal/user/internal/domain"
	"github.com/healthproof/healthproof/internal/user/internal/repository"
)

type UserService interface {
	Profile(ctx context.Context, id int64) (domain.User, error)
	// FindOrCreateByEmail 查找或者初始化，
	// 初始化成功会发注册事件，金币模块靠它发注册奖励
	FindOrCreateByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateNonSensitiveInfo 更新非敏感数据
	UpdateNonSensitiveInfo(ctx context.Context, user domain.User) error

	// TouchLastLogin 记录最近登录日期，只做展示
	TouchLastLogin(ctx context.Context, id int64) error
}

type userService struct {
	repo     repository.UserRepository
	producer *event.RegistrationEventProducer
	logger   *elog.Component
}

func NewUserService(repo repository.UserRepository, p *event.RegistrationEventProducer) UserService {
	return &userService{
		repo:     repo,
		producer: p,
		logger:   elog.DefaultLogger,
	}
}

func (svc *userService) UpdateNonSensitiveInfo(ctx context.Context, user domain.User) error {
	// 不让修改序列号和邮箱
	user.SN = ""
	user.Email = ""
	return svc.repo.Update(ctx, user)
}

func (svc *userService) FindOrCreateByEmail(ctx context.Context,
	email string) (domain.User, error) {
	// 大部分人只是登录，数据在我们这里是有的
	u, err := svc.repo.FindByEmail(ctx, email)
	if !errors.Is(err, repository.ErrUserNotFound) {
		return u, err
	}
	nickname := email
	if idx := strings.IndexByte(email, '@'); idx > 0 {
		nickname = email[:idx]
	}
	id, err := svc.repo.Create(ctx, domain.User{
		Email:    email,
		SN:       shortuuid.New(),
		Nickname: nickname,
	})
	if errors.Is(err, repository.ErrUserDuplicate) {
		// 并发注册，另一个请求先写进去了
		return svc.repo.FindByEmail(ctx, email)
	}
	if err != nil {
		return domain.User{}, err
	}

	// 发送注册成功消息
	evt := event.RegistrationEvent{Uid: id}
	if e := svc.producer.Produce(ctx, evt); e != nil {
		svc.logger.Error("发送注册成功消息失败",
			elog.FieldErr(e),
			elog.FieldKey("event"),
			elog.FieldValueAny(evt),
		)
	}

	return domain.User{
		Id:       id,
		Email:    email,
		Nickname: nickname,
	}, nil
}

func (svc *userService) TouchLastLogin(ctx context.Context, id int64) error {
	return svc.repo.TouchLastLogin(ctx, id, time.Now().Format(time.DateOnly))
}

func (svc *userService) Profile(ctx context.Context,
	id int64) (domain.User, error) {
	// 在系统内部，基本上都是用 ID 的
	return svc.repo.FindById(ctx, id)
}
