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

	"github.com/healthproof/healthproof/internal/dossier/internal/domain"
	"github.com/yankeguo/zhipu"
)

var ErrEmptyCompletion = errors.New("模型没有返回内容")

type LLMService interface {
	Generate(ctx context.Context, prompt string) (domain.Dossier, error)
}

// zhipuService 如果后续有不同的实现，就提供不同的实现
type zhipuService struct {
	client       *zhipu.Client
	model        string
	systemPrompt string
	temperature  float64
}

func NewZhipuService(apikey, model, systemPrompt string, temperature float64) (LLMService, error) {
	client, err := zhipu.NewClient(zhipu.WithAPIKey(apikey))
	if err != nil {
		return nil, err
	}
	return &zhipuService{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
		temperature:  temperature,
	}, nil
}

func (s *zhipuService) Generate(ctx context.Context, prompt string) (domain.Dossier, error) {
	chatReq := s.client.ChatCompletion(s.model).
		AddMessage(zhipu.ChatCompletionMessage{
			Role:    zhipu.RoleUser,
			Content: prompt,
		})
	if s.temperature > 0 {
		chatReq = chatReq.SetTemperature(s.temperature)
	}
	if s.systemPrompt != "" {
		chatReq = chatReq.AddMessage(zhipu.ChatCompletionMessage{
			Role:    zhipu.RoleSystem,
			Content: s.systemPrompt,
		})
	}
	completion, err := chatReq.Do(ctx)
	if err != nil {
		return domain.Dossier{}, err
	}
	if len(completion.Choices) == 0 {
		return domain.Dossier{}, ErrEmptyCompletion
	}
	return ParseDossier(completion.Choices[0].Message.Content)
}
