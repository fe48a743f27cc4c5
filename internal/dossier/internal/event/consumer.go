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
	"errors"
	"fmt"

	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
	"github.com/healthproof/healthproof/internal/dossier/internal/service"
)

const dossierEvents = "dossier_events"

type DossierEvent struct {
	ClaimId int64 `json:"claimId"`
}

// DossierEventConsumer 消费档案生成事件。
// 事件可能重复投递，靠任务表的唯一键兜底
type DossierEventConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewDossierEventConsumer(svc service.Service, q mq.MQ) (*DossierEventConsumer, error) {
	groupID := "dossier"
	consumer, err := q.Consumer(dossierEvents, groupID)
	if err != nil {
		return nil, err
	}
	return &DossierEventConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

// Start 后面要考虑借助 ctx 来优雅退出
func (c *DossierEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费档案生成事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *DossierEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	var evt DossierEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	err = c.svc.Generate(ctx, evt.ClaimId)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrJobRunning):
		// 重复入队，不算错
		c.logger.Info("任务已在进行中", elog.Int64("claimId", evt.ClaimId))
	default:
		c.logger.Error("生成研判档案失败",
			elog.FieldErr(err),
			elog.Any("事件", evt),
		)
	}
	return nil
}

func (c *DossierEventConsumer) Stop(_ context.Context) error {
	return c.consumer.Close()
}
