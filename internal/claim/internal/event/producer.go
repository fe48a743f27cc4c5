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
	"strconv"

	"github.com/ecodeclub/mq-api"
)

type DossierEventProducer interface {
	Produce(ctx context.Context, evt DossierEvent) error
}

type dossierEventProducer struct {
	producer mq.Producer
}

func NewDossierEventProducer(q mq.MQ) (DossierEventProducer, error) {
	p, err := q.Producer(DossierTopic)
	if err != nil {
		return nil, err
	}
	return &dossierEventProducer{producer: p}, nil
}

func (s *dossierEventProducer) Produce(ctx context.Context, evt DossierEvent) error {
	data, err := json.Marshal(&evt)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	// 按命题分区，同一命题的事件有序
	_, err = s.producer.Produce(ctx, &mq.Message{
		Key:   []byte(strconv.FormatInt(evt.ClaimId, 10)),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("发送档案生成消息失败: %w", err)
	}
	return nil
}
