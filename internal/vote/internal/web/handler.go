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
	"errors"
	"strings"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/healthproof/healthproof/internal/vote/internal/domain"
	"github.com/healthproof/healthproof/internal/vote/internal/errs"
	"github.com/healthproof/healthproof/internal/vote/internal/service"
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
	g := server.Group("/claim")
	g.POST("/vote", ginx.BS[VoteReq](h.Vote))
	g.POST("/vote/detail", ginx.BS[ClaimId](h.Detail))
}

func (h *Handler) PublicRoutes(server *gin.Engine) {}

func (h *Handler) Vote(ctx *ginx.Context, req VoteReq, sess session.Session) (ginx.Result, error) {
	// 线上协议里写的是 YES/NO，大小写都收
	side := domain.Side(strings.ToLower(req.Side))
	vote, balance, err := h.svc.Vote(ctx.Request.Context(), sess.Claims().Uid, req.ClaimId, side)
	switch {
	case err == nil:
		return ginx.Result{
			Data: VoteResp{Vote: newVote(vote), Balance: balance},
		}, nil
	case errors.Is(err, service.ErrInvalidSide):
		return ginx.Result{Code: errs.InvalidSide.Code, Msg: errs.InvalidSide.Msg}, nil
	case errors.Is(err, service.ErrMarketNotFound):
		return ginx.Result{Code: errs.ClaimNotFound.Code, Msg: errs.ClaimNotFound.Msg}, nil
	case errors.Is(err, service.ErrMarketNotActive):
		return ginx.Result{Code: errs.MarketNotActive.Code, Msg: errs.MarketNotActive.Msg}, nil
	case errors.Is(err, service.ErrDuplicatedVote):
		return ginx.Result{Code: errs.AlreadyVoted.Code, Msg: errs.AlreadyVoted.Msg}, nil
	case errors.Is(err, service.ErrCoinNotEnough):
		return ginx.Result{Code: errs.CoinNotEnough.Code, Msg: errs.CoinNotEnough.Msg}, nil
	default:
		return systemErrorResult, err
	}
}

func (h *Handler) Detail(ctx *ginx.Context, req ClaimId, sess session.Session) (ginx.Result, error) {
	vote, err := h.svc.VoteOf(ctx.Request.Context(), sess.Claims().Uid, req.ClaimId)
	if errors.Is(err, service.ErrRecordNotFound) {
		// 没投过，返回空
		return ginx.Result{Data: Vote{}}, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	// 自己的投票始终可见，revealed 只控制对外展示
	return ginx.Result{Data: newVote(vote)}, nil
}
