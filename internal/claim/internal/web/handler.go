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
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/healthproof/healthproof/internal/claim/internal/domain"
	"github.com/healthproof/healthproof/internal/claim/internal/errs"
	"github.com/healthproof/healthproof/internal/claim/internal/service"
	"github.com/healthproof/healthproof/internal/vote"
	"golang.org/x/sync/errgroup"
)

var systemErrorResult = ginx.Result{
	Code: errs.SystemError.Code,
	Msg:  errs.SystemError.Msg,
}

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc     service.Service
	voteSvc vote.Service
}

func NewHandler(svc service.Service, voteSvc vote.Service) *Handler {
	return &Handler{
		svc:     svc,
		voteSvc: voteSvc,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/claim")
	g.POST("/list", ginx.B[Page](h.List))
	g.POST("/detail", ginx.B[ClaimId](h.Detail))
	g.POST("/evidence/list", ginx.B[EvidenceListReq](h.EvidenceList))
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {}

func (h *Handler) List(ctx *ginx.Context, req Page) (ginx.Result, error) {
	claims, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ClaimList{
			Claims: slice.Map(claims, func(idx int, src domain.Claim) Claim {
				return newClaim(src)
			}),
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req ClaimId) (ginx.Result, error) {
	var (
		claim    domain.Claim
		evidence []domain.Evidence
		myVote   vote.Vote
		voted    bool
		eg       errgroup.Group
	)
	eg.Go(func() error {
		var err error
		claim, evidence, err = h.svc.Detail(ctx.Request.Context(), req.ClaimId)
		return err
	})
	// 登录用户顺带查自己的投票
	if sess, err := session.Get(ctx); err == nil {
		uid := sess.Claims().Uid
		eg.Go(func() error {
			v, verr := h.voteSvc.VoteOf(ctx.Request.Context(), uid, req.ClaimId)
			switch {
			case verr == nil:
				myVote, voted = v, true
				return nil
			case errors.Is(verr, vote.ErrRecordNotFound):
				return nil
			default:
				return verr
			}
		})
	}
	if err := eg.Wait(); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return ginx.Result{Code: errs.ClaimNotFound.Code, Msg: errs.ClaimNotFound.Msg}, nil
		}
		return systemErrorResult, err
	}
	resp := ClaimDetailResp{
		Claim: newClaim(claim),
		Evidence: slice.Map(evidence, func(idx int, src domain.Evidence) Evidence {
			return newEvidence(src)
		}),
	}
	if voted {
		resp.MyVote = &MyVote{
			Side:    string(myVote.Side),
			VotedAt: myVote.VotedAt.Format(time.DateTime),
		}
	}
	return ginx.Result{Data: resp}, nil
}

func (h *Handler) EvidenceList(ctx *ginx.Context, req EvidenceListReq) (ginx.Result, error) {
	evidence, total, err := h.svc.EvidenceList(ctx.Request.Context(),
		req.ClaimId,
		domain.Stance(req.Stance),
		domain.EvidenceSort(req.Sort),
		req.Offset, req.Limit)
	switch {
	case err == nil:
		return ginx.Result{
			Data: EvidenceList{
				Total: total,
				Evidence: slice.Map(evidence, func(idx int, src domain.Evidence) Evidence {
					return newEvidence(src)
				}),
			},
		}, nil
	case errors.Is(err, service.ErrInvalidStance), errors.Is(err, service.ErrInvalidSort):
		return ginx.Result{Code: errs.InvalidInput.Code, Msg: errs.InvalidInput.Msg}, nil
	default:
		return systemErrorResult, err
	}
}
