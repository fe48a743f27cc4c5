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

package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
	"github.com/healthproof/healthproof/internal/coin/internal/service"
)

// SignupBonusConsumer 消费注册事件，给新用户发注册奖励。
// 事件可能重复投递，靠流水幂等键兜底
type SignupBonusConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewSignupBonusConsumer(svc service.Service, q mq.MQ) (*SignupBonusConsumer, error) {
	groupID := "coin"
	consumer, err := q.Consumer(userRegistrationEvents, groupID)
	if err != nil {
		return nil, err
	}
	return &SignupBonusConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

// Start 后面要考虑借助 ctx 来优雅退出
func (c *SignupBonusConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费注册事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *SignupBonusConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	var evt RegistrationEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	err = c.svc.SignupBonus(ctx, evt.Uid)
	if err != nil {
		c.logger.Error("发放注册奖励失败",
			elog.FieldErr(err),
			elog.Any("事件", evt),
		)
	}
	return nil
}

func (c *SignupBonusConsumer) Stop(_ context.Context) error {
	return c.consumer.Close()
}
