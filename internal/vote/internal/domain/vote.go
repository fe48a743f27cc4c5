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

type Side string

const (
	SideYes Side = "yes"
	SideNo  Side = "no"
)

func (s Side) Valid() bool {
	return s == SideYes || s == SideNo
}

// RevealDelay 投票之后多久可以揭示
const RevealDelay = 6 * time.Hour

type Vote struct {
	ID       int64
	ClaimID  int64
	Uid      int64
	Side     Side
	VotedAt  time.Time
	RevealAt time.Time
	Revealed bool
}
