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

package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"
)

// RatelimitBuilder redis 固定窗口限流。
// 按 IP + 路由类别计数，超限直接 429，不进业务逻辑。
// 限流器挂了放行，不拿可用性换精确
type RatelimitBuilder struct {
	cmd redis.Cmdable
	// category 路由类别，read/action/admin 之类
	category string
	limit    int64
	window   time.Duration
	logger   *elog.Component
}

func NewRatelimitBuilder(cmd redis.Cmdable, category string, limit int64, window time.Duration) *RatelimitBuilder {
	return &RatelimitBuilder{
		cmd:      cmd,
		category: category,
		limit:    limit,
		window:   window,
		logger:   elog.DefaultLogger,
	}
}

func (b *RatelimitBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		window := time.Now().UnixMilli() / b.window.Milliseconds()
		key := fmt.Sprintf("ratelimit:%s:%s:%d", b.category, ctx.ClientIP(), window)
		cnt, err := b.cmd.Incr(ctx.Request.Context(), key).Result()
		if err != nil {
			b.logger.Error("限流计数失败", elog.FieldErr(err))
			return
		}
		if cnt == 1 {
			_ = b.cmd.Expire(ctx.Request.Context(), key, b.window).Err()
		}
		if cnt > b.limit {
			ctx.AbortWithStatus(http.StatusTooManyRequests)
		}
	}
}
