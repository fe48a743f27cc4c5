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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/healthproof/healthproof/internal/claim/internal/domain"
	"github.com/healthproof/healthproof/internal/claim/internal/errs"
	"github.com/healthproof/healthproof/internal/claim/internal/service"
)

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	server.POST("/claims/list", ginx.B[AdminListReq](h.List))
	server.POST("/claims/create", ginx.B[CreateClaimReq](h.Create))
	server.POST("/claims/evidence/attach", ginx.B[AttachEvidenceReq](h.AttachEvidence))
	server.POST("/claims/activate", ginx.B[ClaimId](h.Activate))
	server.POST("/claims/dossier", ginx.B[ClaimId](h.GenerateDossier))
}

func (h *AdminHandler) PublicRoutes(server *gin.Engine) {}

func (h *AdminHandler) List(ctx *ginx.Context, req AdminListReq) (ginx.Result, error) {
	res, err := h.svc.List(ctx.Request.Context(), domain.MarketStatus(req.Status), req.Page, req.Limit)
	switch {
	case err == nil:
		return ginx.Result{
			Data: AdminClaimList{
				Total:      res.Total,
				TotalPages: res.TotalPages,
				Claims: slice.Map(res.Claims, func(idx int, src domain.ClaimSummary) ClaimSummary {
					return ClaimSummary{
						Claim:         newClaim(src.Claim),
						EvidenceCount: src.EvidenceCount,
						VoteCount:     src.VoteCount,
						JobCount:      src.JobCount,
					}
				}),
			},
		}, nil
	case errors.Is(err, service.ErrInvalidStatus):
		return ginx.Result{Code: errs.InvalidInput.Code, Msg: errs.InvalidInput.Msg}, nil
	default:
		return systemErrorResult, err
	}
}

func (h *AdminHandler) Create(ctx *ginx.Context, req CreateClaimReq) (ginx.Result, error) {
	id, err := h.svc.Create(ctx.Request.Context(), domain.Claim{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  domain.Difficulty(req.Difficulty),
	})
	switch {
	case err == nil:
		return ginx.Result{Data: id}, nil
	case errors.Is(err, service.ErrInvalidClaim):
		return ginx.Result{Code: errs.InvalidInput.Code, Msg: errs.InvalidInput.Msg}, nil
	default:
		return systemErrorResult, err
	}
}

func (h *AdminHandler) AttachEvidence(ctx *ginx.Context, req AttachEvidenceReq) (ginx.Result, error) {
	id, err := h.svc.AttachEvidence(ctx.Request.Context(), req.toDomain())
	switch {
	case err == nil:
		return ginx.Result{Data: id}, nil
	case errors.Is(err, service.ErrInvalidStance):
		return ginx.Result{Code: errs.InvalidInput.Code, Msg: errs.InvalidInput.Msg}, nil
	case errors.Is(err, service.ErrRecordNotFound):
		return ginx.Result{Code: errs.ClaimNotFound.Code, Msg: errs.ClaimNotFound.Msg}, nil
	default:
		return systemErrorResult, err
	}
}

func (h *AdminHandler) Activate(ctx *ginx.Context, req ClaimId) (ginx.Result, error) {
	err := h.svc.Activate(ctx.Request.Context(), req.ClaimId)
	switch {
	case err == nil:
		return ginx.Result{}, nil
	case errors.Is(err, service.ErrRecordNotFound):
		return ginx.Result{Code: errs.ClaimNotFound.Code, Msg: errs.ClaimNotFound.Msg}, nil
	default:
		return systemErrorResult, err
	}
}

func (h *AdminHandler) GenerateDossier(ctx *ginx.Context, req ClaimId) (ginx.Result, error) {
	err := h.svc.GenerateDossier(ctx.Request.Context(), req.ClaimId)
	switch {
	case err == nil:
		return ginx.Result{}, nil
	case errors.Is(err, service.ErrRecordNotFound):
		return ginx.Result{Code: errs.ClaimNotFound.Code, Msg: errs.ClaimNotFound.Msg}, nil
	default:
		return systemErrorResult, err
	}
}
