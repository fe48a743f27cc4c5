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

import (
	"fmt"
	"time"
)

const (
	// BizVoteSpend 投票扣费
	BizVoteSpend = "vote_spend"
	// BizDailyLogin 每日登录奖励
	BizDailyLogin = "daily_login"
	// BizSignupBonus 注册奖励
	BizSignupBonus = "signup_bonus"
	// BizNewsletterBonus 订阅奖励
	BizNewsletterBonus = "newsletter_bonus"
	// BizUnlockSpend 解锁报告扣费
	BizUnlockSpend = "unlock_spend"
)

// Account 金币账户。Balance 只是流水累加的缓存，
// 任何时刻都应该等于该用户全部流水的总和
type Account struct {
	Uid     int64
	Balance int64
}

type Transaction struct {
	ID      int64
	Uid     int64
	Biz     string
	// Amount 正数为入账，负数为出账
	Amount  int64
	// Balance 该笔流水入账之后的余额
	Balance int64
	// Key 幂等键，只有一次性或按天发放的奖励才有
	Key   string
	Ctime time.Time
}

// DailyLoginKey 每日登录奖励的幂等键，按自然日唯一
func DailyLoginKey(uid int64, day time.Time) string {
	return fmt.Sprintf("%s:%d:%s", BizDailyLogin, uid, day.Format(time.DateOnly))
}

// SignupKey 注册奖励的幂等键，一个用户只有一次
func SignupKey(uid int64) string {
	return fmt.Sprintf("%s:%d", BizSignupBonus, uid)
}

// NewsletterKey 订阅奖励的幂等键，一个用户只有一次
func NewsletterKey(uid int64) string {
	return fmt.Sprintf("%s:%d", BizNewsletterBonus, uid)
}
