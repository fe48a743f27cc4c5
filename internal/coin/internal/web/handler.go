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

package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/healthproof/healthproof/internal/coin/internal/domain"
	"github.com/healthproof/healthproof/internal/coin/internal/errs"
	"github.com/healthproof/healthproof/internal/coin/internal/service"
)

var systemErrorResult = ginx.Result{
	Code: errs.SystemError.Code,
	Msg:  errs.SystemError.Msg,
}

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/coins")
	g.POST("/detail", ginx.S(h.Detail))
	g.POST("/daily-login", ginx.S(h.DailyLogin))
	g.POST("/newsletter", ginx.S(h.Newsletter))
	g.POST("/history", ginx.BS[HistoryReq](h.History))
}

func (h *Handler) PublicRoutes(server *gin.Engine) {}

func (h *Handler) Detail(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	balance, err := h.svc.Balance(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: Account{Balance: balance},
	}, nil
}

func (h *Handler) DailyLogin(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	balance, granted, err := h.svc.DailyBonus(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	// 已领取也返回成功，方便前端无脑调用
	return ginx.Result{
		Data: BonusResp{Granted: granted, Balance: balance},
	}, nil
}

func (h *Handler) Newsletter(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	balance, granted, err := h.svc.NewsletterBonus(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: BonusResp{Granted: granted, Balance: balance},
	}, nil
}

func (h *Handler) History(ctx *ginx.Context, req HistoryReq, sess session.Session) (ginx.Result, error) {
	txs, total, err := h.svc.History(ctx.Request.Context(), sess.Claims().Uid, req.Biz, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: HistoryResp{
			Total: total,
			Transactions: slice.Map(txs, func(idx int, src domain.Transaction) Transaction {
				return newTransaction(src)
			}),
		},
	}, nil
}
