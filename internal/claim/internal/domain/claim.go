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

package domain

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

type MarketStatus string

const (
	MarketStatusResearching MarketStatus = "researching"
	MarketStatusActive      MarketStatus = "active"
	MarketStatusResolved    MarketStatus = "resolved"
)

func (s MarketStatus) Valid() bool {
	switch s {
	case MarketStatusResearching, MarketStatusActive, MarketStatusResolved:
		return true
	default:
		return false
	}
}

type Stance string

const (
	StanceSupports Stance = "SUPPORTS"
	StanceRefutes  Stance = "REFUTES"
)

func (s Stance) Valid() bool {
	return s == StanceSupports || s == StanceRefutes
}

type EvidenceSort string

const (
	// SortRelevance 按置信度倒序，默认
	SortRelevance EvidenceSort = "relevance"
	// SortRecency 按收录时间倒序
	SortRecency EvidenceSort = "recency"
)

func (s EvidenceSort) Valid() bool {
	return s == SortRelevance || s == SortRecency
}

// Claim 一个健康命题，和 Market 一一对应
type Claim struct {
	ID          int64
	Title       string
	Description string
	Difficulty  Difficulty
	Market      Market
	Ctime       time.Time
}

type Market struct {
	ID      int64
	ClaimID int64
	Status  MarketStatus
	// 计数是投票表的冗余，任何时刻 TotalVotes == YesVotes + NoVotes
	YesVotes   int64
	NoVotes    int64
	TotalVotes int64
	// 以下字段在 resolved 之后才有
	AIVerdict        string
	AIConfidence     float64
	ConsensusSummary string
	ResolvedAt       time.Time
}

// Evidence 一篇论文和命题的关联，带 AI 摘要
type Evidence struct {
	ID              int64
	ClaimID         int64
	Paper           Paper
	Stance          Stance
	StudyType       string
	AISummary       string
	SampleSize      int64
	ConfidenceScore float64
	Ctime           time.Time
}

type Paper struct {
	ID      int64
	Title   string
	Authors string
	Journal string
	Year    int
	DOI     string
	URL     string
}

// ClaimSummary 管理端列表里的一行
type ClaimSummary struct {
	Claim         Claim
	EvidenceCount int64
	VoteCount     int64
	JobCount      int64
}
